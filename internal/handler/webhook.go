package handler

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/okvist/rota/internal/command"
)

type WebhookHandler struct {
	interpreter *command.Interpreter
	logger      *slog.Logger
}

func NewWebhookHandler(interpreter *command.Interpreter, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{interpreter: interpreter, logger: logger}
}

// Receive handles Twilio's inbound-message webhook (form-encoded Body and
// From) and answers with a TwiML envelope containing the reply text.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Error("parse webhook form", "error", err)
		writeTwiML(w, "Sorry, there was an error processing your request.")
		return
	}

	reply := h.interpreter.Reply(r.FormValue("Body"), r.FormValue("From"))
	writeTwiML(w, reply)
}

func writeTwiML(w http.ResponseWriter, message string) {
	var escaped bytes.Buffer
	xml.EscapeText(&escaped, []byte(message))

	w.Header().Set("Content-Type", "application/xml")
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Response><Message>%s</Message></Response>`, escaped.String())
}
