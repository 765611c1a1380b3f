package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/okvist/rota/internal/rota"
)

type MemberHandler struct {
	service *rota.Service
	logger  *slog.Logger
}

func NewMemberHandler(service *rota.Service, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{service: service, logger: logger}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Members())
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Name and phone number required")
		return
	}

	member, err := h.service.AddMember(req.Name, req.Phone)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("member added", "id", member.ID, "name", member.Name)
	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"member": member,
	})
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.DeleteMember(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("member removed", "id", removed.ID, "name", removed.Name)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"removed": removed,
	})
}
