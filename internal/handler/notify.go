package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/okvist/rota/internal/notify"
)

type NotifyHandler struct {
	dispatcher *notify.Dispatcher
	logger     *slog.Logger
}

func NewNotifyHandler(dispatcher *notify.Dispatcher, logger *slog.Logger) *NotifyHandler {
	return &NotifyHandler{dispatcher: dispatcher, logger: logger}
}

// NotifyAll sends a reminder for every incomplete assignment and reports
// the deliveries that succeeded.
func (h *NotifyHandler) NotifyAll(w http.ResponseWriter, r *http.Request) {
	sent, err := h.dispatcher.NotifyAll()
	if err != nil {
		if errors.Is(err, notify.ErrNotifierUnavailable) {
			writeError(w, http.StatusInternalServerError, "Twilio client not configured")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info("notifications sent", "count", len(sent))
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "success",
		"notifications_sent": sent,
	})
}

// NotifyMember sends one member a summary of their active assignments.
func (h *NotifyHandler) NotifyMember(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dispatcher.NotifyMember(r.PathValue("member_id"))
	if err != nil {
		if errors.Is(err, notify.ErrNotifierUnavailable) {
			writeError(w, http.StatusInternalServerError, "Twilio client not configured")
			return
		}
		writeDomainError(w, err)
		return
	}

	if summary.TasksCount == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "success",
			"message": "No active assignments found for this member",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"message_sid": summary.MessageSID,
		"member":      summary.Member,
		"tasks_count": summary.TasksCount,
	})
}
