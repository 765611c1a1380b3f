package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/okvist/rota/internal/rota"
)

type TaskHandler struct {
	service *rota.Service
	logger  *slog.Logger
}

func NewTaskHandler(service *rota.Service, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{service: service, logger: logger}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Tasks())
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Frequency   string `json:"frequency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Task name required")
		return
	}

	task, err := h.service.AddTask(req.Name, req.Description, req.Frequency)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("task added", "id", task.ID, "name", task.Name)
	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"task":   task,
	})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.DeleteTask(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("task removed", "id", removed.ID, "name", removed.Name)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"removed": removed,
	})
}
