package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/okvist/rota/internal/command"
	"github.com/okvist/rota/internal/handler"
	"github.com/okvist/rota/internal/middleware"
	"github.com/okvist/rota/internal/model"
	"github.com/okvist/rota/internal/notify"
	"github.com/okvist/rota/internal/rota"
	"github.com/okvist/rota/internal/store"
	ws "github.com/okvist/rota/internal/websocket"
)

type Server struct {
	service     *rota.Service
	notifier    notify.Notifier
	dispatcher  *notify.Dispatcher
	scheduler   *notify.Scheduler
	hub         *ws.Hub
	memberH     *handler.MemberHandler
	taskH       *handler.TaskHandler
	assignmentH *handler.AssignmentHandler
	notifyH     *handler.NotifyHandler
	webhookH    *handler.WebhookHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// New wires the domain service, dispatcher, scheduler, and handlers on top
// of the given snapshot store and notifier.
func New(st store.Store, notifier notify.Notifier, dueCheckInterval time.Duration, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	service := rota.NewService(st, logger.With("component", "rota"),
		rota.WithEventFunc(func(e rota.Event) {
			hub.Broadcast(ws.NewMessage(e.Entity, e.Action, e.ID, nil))
		}))

	dispatcher := notify.NewDispatcher(service, notifier, logger.With("component", "notify"))
	scheduler := notify.NewScheduler(dispatcher, dueCheckInterval)
	interpreter := command.New(service, logger.With("component", "command"))

	return &Server{
		service:     service,
		notifier:    notifier,
		dispatcher:  dispatcher,
		scheduler:   scheduler,
		hub:         hub,
		memberH:     handler.NewMemberHandler(service, logger.With("component", "member")),
		taskH:       handler.NewTaskHandler(service, logger.With("component", "task")),
		assignmentH: handler.NewAssignmentHandler(service, logger.With("component", "assignment")),
		notifyH:     handler.NewNotifyHandler(dispatcher, logger.With("component", "notify_handler")),
		webhookH:    handler.NewWebhookHandler(interpreter, logger.With("component", "webhook")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// Service returns the domain service, for the backup snapshot source.
func (s *Server) Service() *rota.Service {
	return s.service
}

// Scheduler returns the due-check scheduler for lifecycle management.
func (s *Server) Scheduler() *notify.Scheduler {
	return s.scheduler
}

// Hub returns the websocket hub, for out-of-band broadcasts.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", handler.Docs)
	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("GET /api/members", s.memberH.List)
	mux.HandleFunc("POST /api/members", s.memberH.Create)
	mux.HandleFunc("DELETE /api/members/{id}", s.memberH.Delete)

	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)

	mux.HandleFunc("GET /api/assignments", s.assignmentH.List)
	mux.HandleFunc("POST /api/assign", s.assignmentH.Assign)
	mux.HandleFunc("POST /api/assignments/{id}/complete", s.assignmentH.Complete)

	mux.HandleFunc("POST /api/notify", s.notifyH.NotifyAll)
	mux.HandleFunc("POST /api/notify/{member_id}", s.notifyH.NotifyMember)

	// The webhook is the one unauthenticated mutating endpoint, so it gets
	// a per-IP rate limit.
	mux.HandleFunc("POST /webhook", s.rateLimitedHandler(s.webhookH.Receive))

	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	members, tasks, assignments := s.service.Counts()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":              "healthy",
		"timestamp":           time.Now().Format(model.TimestampLayout),
		"notifier_configured": s.notifier.Configured(),
		"members_count":       members,
		"tasks_count":         tasks,
		"assignments_count":   assignments,
	})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 30, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
