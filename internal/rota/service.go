// Package rota owns the in-memory rota dataset and the rules around it:
// validation, referential integrity, the one-assignment-per-pair rule, and
// the completion transition. Every operation runs under a single mutex and
// persists the whole dataset on success.
package rota

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okvist/rota/internal/model"
	"github.com/okvist/rota/internal/store"
)

// Event describes a successful mutation, for the live change feed.
type Event struct {
	Entity string
	Action string
	ID     string
}

// EventFunc is called after each successful mutation.
type EventFunc func(Event)

// Service serializes all dataset access behind one mutex.
type Service struct {
	mu      sync.Mutex
	data    *model.Dataset
	store   store.Store
	logger  *slog.Logger
	onEvent EventFunc
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithEventFunc registers a callback invoked after each successful mutation.
func WithEventFunc(fn EventFunc) Option {
	return func(s *Service) {
		s.onEvent = fn
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService loads the persisted snapshot. A missing snapshot seeds the two
// default cleaning tasks and persists them; a load failure is logged and
// falls back to an empty dataset rather than failing startup.
func NewService(st store.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := st.Load()
	switch {
	case err != nil:
		logger.Error("load snapshot failed, starting with empty dataset", "error", err)
		s.data = model.NewDataset()
	case data == nil:
		s.data = s.seedDataset()
		s.save()
		logger.Info("no snapshot found, seeded default tasks")
	default:
		s.data = data
		logger.Info("snapshot loaded",
			"members", len(data.Members),
			"tasks", len(data.Tasks),
			"assignments", len(data.Assignments))
	}
	return s
}

func (s *Service) seedDataset() *model.Dataset {
	data := model.NewDataset()
	data.Tasks = []model.Task{
		{
			ID:          uuid.NewString(),
			Name:        "Kitchen cleaning",
			Description: "Clean kitchen surfaces and floor",
			Frequency:   model.FrequencyWeekly,
			DateAdded:   s.timestamp(),
		},
		{
			ID:          uuid.NewString(),
			Name:        "Bathroom cleaning",
			Description: "Clean bathroom, including shower, toilet and sink",
			Frequency:   model.FrequencyWeekly,
			DateAdded:   s.timestamp(),
		},
	}
	return data
}

func (s *Service) timestamp() string {
	return s.now().Format(model.TimestampLayout)
}

// save persists the dataset. Failures are logged, not surfaced: the
// in-memory mutation stands even when the durable write fails.
func (s *Service) save() {
	if err := s.store.Save(s.data); err != nil {
		s.logger.Error("save snapshot failed", "error", err)
	}
}

func (s *Service) emit(entity, action, id string) {
	if s.onEvent != nil {
		s.onEvent(Event{Entity: entity, Action: action, ID: id})
	}
}

// AddMember validates and appends a member.
func (s *Service) AddMember(name, phone string) (model.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" || phone == "" {
		return model.Member{}, validationErr("Name and phone number required")
	}
	if !strings.HasPrefix(phone, "+") {
		return model.Member{}, validationErr("Phone number must be in international format (starting with +)")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	member := model.Member{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		DateAdded: s.timestamp(),
	}
	s.data.Members = append(s.data.Members, member)
	s.save()
	s.emit("member", "created", member.ID)
	return member, nil
}

// DeleteMember removes the member and every assignment referencing it.
func (s *Service) DeleteMember(id string) (model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, m := range s.data.Members {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Member{}, notFoundErr("Member", id)
	}

	removed := s.data.Members[idx]
	s.data.Members = append(s.data.Members[:idx], s.data.Members[idx+1:]...)

	kept := s.data.Assignments[:0]
	for _, a := range s.data.Assignments {
		if a.MemberID != id {
			kept = append(kept, a)
		}
	}
	s.data.Assignments = kept

	s.save()
	s.emit("member", "deleted", id)
	return removed, nil
}

// Members returns a copy of all members.
func (s *Service) Members() []model.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Member, len(s.data.Members))
	copy(out, s.data.Members)
	return out
}

// AddTask validates and appends a task. Description defaults to empty,
// frequency to weekly.
func (s *Service) AddTask(name, description, frequency string) (model.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Task{}, validationErr("Task name required")
	}
	freq := model.FrequencyWeekly
	if frequency != "" {
		freq = model.Frequency(frequency)
		if !freq.Valid() {
			return model.Task{}, validationErr("Frequency must be one of: daily, weekly, biweekly, monthly")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := model.Task{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Frequency:   freq,
		DateAdded:   s.timestamp(),
	}
	s.data.Tasks = append(s.data.Tasks, task)
	s.save()
	s.emit("task", "created", task.ID)
	return task, nil
}

// DeleteTask removes the task and every assignment referencing it.
func (s *Service) DeleteTask(id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.data.Tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Task{}, notFoundErr("Task", id)
	}

	removed := s.data.Tasks[idx]
	s.data.Tasks = append(s.data.Tasks[:idx], s.data.Tasks[idx+1:]...)

	kept := s.data.Assignments[:0]
	for _, a := range s.data.Assignments {
		if a.TaskID != id {
			kept = append(kept, a)
		}
	}
	s.data.Assignments = kept

	s.save()
	s.emit("task", "deleted", id)
	return removed, nil
}

// Tasks returns a copy of all tasks.
func (s *Service) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.data.Tasks))
	copy(out, s.data.Tasks)
	return out
}

// AssignResult is a created assignment with the member and task names
// denormalized for the API response.
type AssignResult struct {
	Assignment model.Assignment
	MemberName string
	TaskName   string
}

// Assign creates an assignment. The due date defaults to seven days out
// when not supplied. Duplicate (member, task) pairs are rejected whatever
// the completion state of the existing assignment.
func (s *Service) Assign(memberID, taskID, dueDate string) (AssignResult, error) {
	if memberID == "" || taskID == "" {
		return AssignResult{}, validationErr("Member ID and Task ID required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	member, ok := s.memberByID(memberID)
	if !ok {
		return AssignResult{}, notFoundErr("Member", memberID)
	}
	task, ok := s.taskByID(taskID)
	if !ok {
		return AssignResult{}, notFoundErr("Task", taskID)
	}

	for _, a := range s.data.Assignments {
		if a.MemberID == memberID && a.TaskID == taskID {
			return AssignResult{}, ErrDuplicateAssignment
		}
	}

	if dueDate == "" {
		dueDate = s.now().AddDate(0, 0, 7).Format(model.DateLayout)
	}

	assignment := model.Assignment{
		ID:           uuid.NewString(),
		MemberID:     memberID,
		TaskID:       taskID,
		AssignedDate: s.timestamp(),
		DueDate:      dueDate,
	}
	s.data.Assignments = append(s.data.Assignments, assignment)
	s.save()
	s.emit("assignment", "created", assignment.ID)
	return AssignResult{Assignment: assignment, MemberName: member.Name, TaskName: task.Name}, nil
}

// Complete marks an assignment completed and stamps the completion date.
// Completing an already-completed assignment re-stamps the date; there is
// no uncomplete transition.
func (s *Service) Complete(id string) (model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Assignments {
		if s.data.Assignments[i].ID == id {
			stamp := s.timestamp()
			s.data.Assignments[i].Completed = true
			s.data.Assignments[i].CompletionDate = &stamp
			s.save()
			s.emit("assignment", "completed", id)
			return s.data.Assignments[i], nil
		}
	}
	return model.Assignment{}, notFoundErr("Assignment", id)
}

// CompleteTaskByName completes the first active assignment of the member
// whose task name matches case-insensitively. The second return is false
// when no active assignment matches.
func (s *Service) CompleteTaskByName(memberID, taskName string) (model.Assignment, bool) {
	want := strings.ToLower(strings.TrimSpace(taskName))

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Assignments {
		a := &s.data.Assignments[i]
		if a.MemberID != memberID || a.Completed {
			continue
		}
		task, ok := s.taskByID(a.TaskID)
		if !ok || strings.ToLower(task.Name) != want {
			continue
		}
		stamp := s.timestamp()
		a.Completed = true
		a.CompletionDate = &stamp
		s.save()
		s.emit("assignment", "completed", a.ID)
		return *a, true
	}
	return model.Assignment{}, false
}

// ListAssignments returns every assignment enriched with member and task
// details. Enrichment fields stay empty when a referenced entity is gone.
func (s *Service) ListAssignments() []model.EnrichedAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enrichAll(s.data.Assignments)
}

// ActiveAssignmentsForMember returns the member's incomplete assignments,
// enriched, in stored order.
func (s *Service) ActiveAssignmentsForMember(memberID string) []model.EnrichedAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active []model.Assignment
	for _, a := range s.data.Assignments {
		if a.MemberID == memberID && !a.Completed {
			active = append(active, a)
		}
	}
	return s.enrichAll(active)
}

func (s *Service) enrichAll(assignments []model.Assignment) []model.EnrichedAssignment {
	out := make([]model.EnrichedAssignment, 0, len(assignments))
	for _, a := range assignments {
		e := model.EnrichedAssignment{Assignment: a}
		if m, ok := s.memberByID(a.MemberID); ok {
			e.MemberName = m.Name
			e.MemberPhone = m.Phone
		}
		if t, ok := s.taskByID(a.TaskID); ok {
			e.TaskName = t.Name
			e.TaskDescription = t.Description
			e.TaskFrequency = t.Frequency
		}
		out = append(out, e)
	}
	return out
}

// MemberByID looks up a member by id.
func (s *Service) MemberByID(id string) (model.Member, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memberByID(id)
}

// MemberByPhone looks up a member by exact phone match.
func (s *Service) MemberByPhone(phone string) (model.Member, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.data.Members {
		if m.Phone == phone {
			return m, true
		}
	}
	return model.Member{}, false
}

// Counts returns entity counts for the health endpoint.
func (s *Service) Counts() (members, tasks, assignments int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.Members), len(s.data.Tasks), len(s.data.Assignments)
}

// SnapshotJSON serializes the dataset for backup.
func (s *Service) SnapshotJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.MarshalIndent(s.data, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return raw, nil
}

// memberByID and taskByID require s.mu held.

func (s *Service) memberByID(id string) (model.Member, bool) {
	for _, m := range s.data.Members {
		if m.ID == id {
			return m, true
		}
	}
	return model.Member{}, false
}

func (s *Service) taskByID(id string) (model.Task, bool) {
	for _, t := range s.data.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
