package notify

import (
	"context"
	"testing"
	"time"

	"github.com/okvist/rota/internal/model"
)

func TestSchedulerRunsDueCheck(t *testing.T) {
	notifier := &fakeNotifier{configured: true}
	d, svc := setupDispatcher(t, notifier)

	ana, _ := svc.AddMember("Ana", "+15551234567")
	task := svc.Tasks()[0]
	svc.Assign(ana.ID, task.ID, time.Now().Format(model.DateLayout))

	s := NewScheduler(d, 10*time.Millisecond)
	s.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if len(notifier.sent) == 0 {
		t.Fatal("scheduler never ran the due check")
	}
	// Stop must be idempotent enough for a second call not to hang.
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second Stop call hung")
	}
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	d, _ := setupDispatcher(t, &fakeNotifier{})
	s := NewScheduler(d, time.Hour)

	// Must not panic or block.
	s.Stop()
}
