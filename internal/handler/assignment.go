package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/okvist/rota/internal/rota"
)

type AssignmentHandler struct {
	service *rota.Service
	logger  *slog.Logger
}

func NewAssignmentHandler(service *rota.Service, logger *slog.Logger) *AssignmentHandler {
	return &AssignmentHandler{service: service, logger: logger}
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListAssignments())
}

func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"member_id"`
		TaskID   string `json:"task_id"`
		DueDate  string `json:"due_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Member ID and Task ID required")
		return
	}

	result, err := h.service.Assign(req.MemberID, req.TaskID, req.DueDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("assignment created",
		"id", result.Assignment.ID,
		"member", result.MemberName,
		"task", result.TaskName,
		"due", result.Assignment.DueDate)
	writeJSON(w, http.StatusCreated, map[string]any{
		"status":      "success",
		"assignment":  result.Assignment,
		"member_name": result.MemberName,
		"task_name":   result.TaskName,
	})
}

func (h *AssignmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.service.Complete(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("assignment completed", "id", assignment.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"assignment": assignment,
	})
}
