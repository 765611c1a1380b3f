// Package notify composes reminder messages from assignment/member/task
// joins and delivers them through the Notifier, including the daily
// due-date check.
package notify

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/okvist/rota/internal/model"
	"github.com/okvist/rota/internal/rota"
)

// ErrNotifierUnavailable is returned when the messaging channel is not
// configured. CRUD endpoints are unaffected; only sending fails.
var ErrNotifierUnavailable = errors.New("notifier not configured")

// Notifier delivers a text message to a phone-number address.
type Notifier interface {
	Configured() bool
	SendWhatsApp(to, body string) (string, error)
}

// Sent records one successful delivery for the notify-all report.
type Sent struct {
	Member     string `json:"member"`
	Task       string `json:"task"`
	MessageSID string `json:"message_sid"`
}

// MemberSummary is the result of notifying a single member.
type MemberSummary struct {
	MessageSID string
	Member     string
	TasksCount int
}

// Dispatcher joins assignments to members and tasks and sends reminders.
type Dispatcher struct {
	service  *rota.Service
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

func NewDispatcher(service *rota.Service, notifier Notifier, logger *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		service:  service,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NotifyAll sends one reminder per incomplete assignment. Assignments whose
// member or task is gone are skipped silently; per-send failures are logged
// and left out of the report without aborting the rest.
func (d *Dispatcher) NotifyAll() ([]Sent, error) {
	if !d.notifier.Configured() {
		return nil, ErrNotifierUnavailable
	}

	sent := []Sent{}
	for _, a := range d.service.ListAssignments() {
		if a.Completed || a.MemberName == "" || a.TaskName == "" {
			continue
		}

		body := fmt.Sprintf("Hi %s! This is a reminder about your cleaning task: %s", a.MemberName, a.TaskName)
		if a.TaskDescription != "" {
			body += fmt.Sprintf("\nDetails: %s", a.TaskDescription)
		}
		body += fmt.Sprintf("\nDue date: %s", a.DueDate)

		sid, err := d.notifier.SendWhatsApp(a.MemberPhone, body)
		if err != nil {
			d.logger.Error("send reminder failed", "member", a.MemberName, "task", a.TaskName, "error", err)
			continue
		}
		sent = append(sent, Sent{Member: a.MemberName, Task: a.TaskName, MessageSID: sid})
	}
	return sent, nil
}

// NotifyMember sends the member a single numbered summary of their active
// assignments. With no active assignments it succeeds without contacting
// the notifier; TasksCount is zero in that case.
func (d *Dispatcher) NotifyMember(memberID string) (MemberSummary, error) {
	if !d.notifier.Configured() {
		return MemberSummary{}, ErrNotifierUnavailable
	}

	member, ok := d.service.MemberByID(memberID)
	if !ok {
		return MemberSummary{}, &rota.NotFoundError{Resource: "Member", ID: memberID}
	}

	active := d.service.ActiveAssignmentsForMember(memberID)
	if len(active) == 0 {
		return MemberSummary{Member: member.Name}, nil
	}

	var tasks strings.Builder
	for idx, a := range active {
		if a.TaskName == "" {
			continue
		}
		fmt.Fprintf(&tasks, "%d. %s - Due: %s\n", idx+1, a.TaskName, a.DueDate)
		if a.TaskDescription != "" {
			fmt.Fprintf(&tasks, "   %s\n", a.TaskDescription)
		}
	}

	body := fmt.Sprintf("Hi %s! Here are your cleaning tasks:\n\n%s", member.Name, tasks.String())
	body += "\nReply with 'done [task name]' when you complete a task."

	sid, err := d.notifier.SendWhatsApp(member.Phone, body)
	if err != nil {
		return MemberSummary{}, fmt.Errorf("send summary: %w", err)
	}
	return MemberSummary{MessageSID: sid, Member: member.Name, TasksCount: len(active)}, nil
}

// CheckDue sends an urgency-qualified reminder for every incomplete
// assignment due today or tomorrow. The whole check is skipped with a
// warning when the notifier is not configured; nothing propagates.
func (d *Dispatcher) CheckDue() {
	if !d.notifier.Configured() {
		d.logger.Warn("notifier not configured, skipping due task check")
		return
	}

	d.logger.Info("checking for due tasks")
	now := d.now()

	for _, a := range d.service.ListAssignments() {
		if a.Completed || a.MemberName == "" || a.TaskName == "" {
			continue
		}
		urgency, due := dueUrgency(a.DueDate, now)
		if !due {
			continue
		}

		body := fmt.Sprintf("Hi %s! Reminder: Your cleaning task '%s' is %s.", a.MemberName, a.TaskName, urgency)
		if a.TaskDescription != "" {
			body += fmt.Sprintf("\nDetails: %s", a.TaskDescription)
		}

		if _, err := d.notifier.SendWhatsApp(a.MemberPhone, body); err != nil {
			d.logger.Error("send due reminder failed", "member", a.MemberName, "task", a.TaskName, "error", err)
			continue
		}
		d.logger.Info("sent due reminder", "member", a.MemberName, "task", a.TaskName, "urgency", urgency)
	}
}

// dueUrgency compares a stored due date against the local calendar at day
// granularity. It reports "due today"/"due tomorrow" and whether the
// assignment falls in that window at all.
func dueUrgency(dueDate string, now time.Time) (string, bool) {
	switch dueDate {
	case now.Format(model.DateLayout):
		return "due today", true
	case now.AddDate(0, 0, 1).Format(model.DateLayout):
		return "due tomorrow", true
	}
	return "", false
}
