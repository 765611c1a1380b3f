package notify

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okvist/rota/internal/model"
	"github.com/okvist/rota/internal/rota"
	"github.com/okvist/rota/internal/store"
)

type sentMessage struct {
	to   string
	body string
}

type fakeNotifier struct {
	configured bool
	failFor    string // phone number whose sends fail
	sent       []sentMessage
}

func (f *fakeNotifier) Configured() bool { return f.configured }

func (f *fakeNotifier) SendWhatsApp(to, body string) (string, error) {
	if to == f.failFor {
		return "", errors.New("delivery failed")
	}
	f.sent = append(f.sent, sentMessage{to: to, body: body})
	return fmt.Sprintf("SM%04d", len(f.sent)), nil
}

func setupDispatcher(t *testing.T, notifier Notifier, opts ...Option) (*Dispatcher, *rota.Service) {
	t.Helper()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "rota.json"))
	svc := rota.NewService(st, slog.Default())
	return NewDispatcher(svc, notifier, slog.Default(), opts...), svc
}

func TestNotifyAllUnconfigured(t *testing.T) {
	d, _ := setupDispatcher(t, &fakeNotifier{configured: false})

	if _, err := d.NotifyAll(); !errors.Is(err, ErrNotifierUnavailable) {
		t.Fatalf("got %v, want ErrNotifierUnavailable", err)
	}
}

func TestNotifyAllSkipsCompletedAndContinuesOnFailure(t *testing.T) {
	notifier := &fakeNotifier{configured: true, failFor: "+15550000002"}
	d, svc := setupDispatcher(t, notifier)

	ana, _ := svc.AddMember("Ana", "+15550000001")
	bob, _ := svc.AddMember("Bob", "+15550000002")
	cleo, _ := svc.AddMember("Cleo", "+15550000003")
	tasks := svc.Tasks()

	done, _ := svc.Assign(ana.ID, tasks[0].ID, "")
	svc.Complete(done.Assignment.ID)
	svc.Assign(bob.ID, tasks[0].ID, "")  // send will fail
	svc.Assign(cleo.ID, tasks[1].ID, "") // send succeeds

	sent, err := d.NotifyAll()
	if err != nil {
		t.Fatalf("notify all: %v", err)
	}
	if len(sent) != 1 {
		t.Fatalf("report has %d entries, want 1", len(sent))
	}
	if sent[0].Member != "Cleo" || sent[0].Task != "Bathroom cleaning" {
		t.Errorf("report entry = %+v", sent[0])
	}
	if sent[0].MessageSID == "" {
		t.Error("report entry missing message sid")
	}
	if len(notifier.sent) != 1 || notifier.sent[0].to != "+15550000003" {
		t.Errorf("deliveries = %+v", notifier.sent)
	}
	if !strings.Contains(notifier.sent[0].body, "reminder about your cleaning task: Bathroom cleaning") {
		t.Errorf("body = %q", notifier.sent[0].body)
	}
}

func TestNotifyMember(t *testing.T) {
	notifier := &fakeNotifier{configured: true}
	d, svc := setupDispatcher(t, notifier)

	ana, _ := svc.AddMember("Ana", "+15551234567")
	tasks := svc.Tasks()
	svc.Assign(ana.ID, tasks[0].ID, "2026-09-01")
	svc.Assign(ana.ID, tasks[1].ID, "2026-09-02")

	summary, err := d.NotifyMember(ana.ID)
	if err != nil {
		t.Fatalf("notify member: %v", err)
	}
	if summary.TasksCount != 2 || summary.Member != "Ana" {
		t.Errorf("summary = %+v", summary)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected a single combined message, got %d", len(notifier.sent))
	}
	body := notifier.sent[0].body
	if !strings.Contains(body, "1. Kitchen cleaning - Due: 2026-09-01") ||
		!strings.Contains(body, "2. Bathroom cleaning - Due: 2026-09-02") {
		t.Errorf("body = %q", body)
	}
	if !strings.Contains(body, "Reply with 'done [task name]'") {
		t.Errorf("body missing completion hint: %q", body)
	}
}

func TestNotifyMemberNoActive(t *testing.T) {
	notifier := &fakeNotifier{configured: true}
	d, svc := setupDispatcher(t, notifier)

	ana, _ := svc.AddMember("Ana", "+15551234567")

	summary, err := d.NotifyMember(ana.ID)
	if err != nil {
		t.Fatalf("notify member: %v", err)
	}
	if summary.TasksCount != 0 {
		t.Errorf("tasks count = %d, want 0", summary.TasksCount)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("notifier contacted despite no active assignments: %+v", notifier.sent)
	}
}

func TestNotifyMemberUnknown(t *testing.T) {
	d, _ := setupDispatcher(t, &fakeNotifier{configured: true})

	if _, err := d.NotifyMember("nope"); !errors.Is(err, rota.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCheckDueTodayAndTomorrow(t *testing.T) {
	now := time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)
	notifier := &fakeNotifier{configured: true}
	d, svc := setupDispatcher(t, notifier, WithClock(func() time.Time { return now }))

	ana, _ := svc.AddMember("Ana", "+15550000001")
	bob, _ := svc.AddMember("Bob", "+15550000002")
	cleo, _ := svc.AddMember("Cleo", "+15550000003")
	tasks := svc.Tasks()

	svc.Assign(ana.ID, tasks[0].ID, "2026-08-28")  // today
	svc.Assign(bob.ID, tasks[0].ID, "2026-08-29")  // tomorrow
	svc.Assign(cleo.ID, tasks[0].ID, "2026-09-15") // out of window

	d.CheckDue()

	if len(notifier.sent) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(notifier.sent))
	}
	if !strings.Contains(notifier.sent[0].body, "is due today.") {
		t.Errorf("today reminder body = %q", notifier.sent[0].body)
	}
	if !strings.Contains(notifier.sent[1].body, "is due tomorrow.") {
		t.Errorf("tomorrow reminder body = %q", notifier.sent[1].body)
	}
}

func TestCheckDueSkipsWhenUnconfigured(t *testing.T) {
	notifier := &fakeNotifier{configured: false}
	d, svc := setupDispatcher(t, notifier)

	ana, _ := svc.AddMember("Ana", "+15551234567")
	task := svc.Tasks()[0]
	svc.Assign(ana.ID, task.ID, time.Now().Format(model.DateLayout))

	// Must not panic or send.
	d.CheckDue()
	if len(notifier.sent) != 0 {
		t.Errorf("deliveries = %+v, want none", notifier.sent)
	}
}

func TestDueUrgency(t *testing.T) {
	now := time.Date(2026, 8, 28, 23, 30, 0, 0, time.UTC)

	cases := []struct {
		dueDate string
		urgency string
		due     bool
	}{
		{"2026-08-28", "due today", true},
		{"2026-08-29", "due tomorrow", true},
		{"2026-08-27", "", false},
		{"2026-08-30", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		urgency, due := dueUrgency(tc.dueDate, now)
		if urgency != tc.urgency || due != tc.due {
			t.Errorf("dueUrgency(%q) = %q/%v, want %q/%v", tc.dueDate, urgency, due, tc.urgency, tc.due)
		}
	}
}
