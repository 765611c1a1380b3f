// Package command maps free-text inbound WhatsApp messages to rota
// operations and composes the reply.
package command

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/okvist/rota/internal/rota"
)

const notRegisteredReply = "Sorry, your number is not registered in our system. Please contact the administrator."

// Interpreter resolves the sender to a member and dispatches on the
// message body. Matching is case-insensitive but exact/prefix-based.
type Interpreter struct {
	service *rota.Service
	logger  *slog.Logger
}

func New(service *rota.Service, logger *slog.Logger) *Interpreter {
	return &Interpreter{service: service, logger: logger}
}

// Reply processes one inbound message and returns the reply text. Unknown
// senders get a fixed reply and cause no mutation.
func (i *Interpreter) Reply(body, sender string) string {
	sender = strings.TrimPrefix(sender, "whatsapp:")

	i.logger.Info("inbound message", "from", sender, "body", body)

	member, ok := i.service.MemberByPhone(sender)
	if !ok {
		return notRegisteredReply
	}

	msg := strings.ToLower(strings.TrimSpace(body))

	switch {
	case msg == "tasks":
		return i.listTasks(member.ID, member.Name)
	case strings.HasPrefix(msg, "done "):
		return i.completeTask(member.ID, member.Name, strings.TrimPrefix(msg, "done "))
	case msg == "help":
		return fmt.Sprintf("Hi %s! Here are the available commands:\n\n"+
			"• tasks - Get a list of your current tasks\n"+
			"• done [task name] - Mark a task as complete\n"+
			"• help - Show this help message", member.Name)
	default:
		return fmt.Sprintf("Hi %s! I didn't understand that command. Send 'help' to see available commands.", member.Name)
	}
}

func (i *Interpreter) listTasks(memberID, memberName string) string {
	active := i.service.ActiveAssignmentsForMember(memberID)
	if len(active) == 0 {
		return fmt.Sprintf("Hi %s! You don't have any active cleaning tasks.", memberName)
	}

	var b strings.Builder
	for idx, a := range active {
		if a.TaskName == "" {
			continue
		}
		fmt.Fprintf(&b, "%d. %s - Due: %s\n", idx+1, a.TaskName, a.DueDate)
	}
	return fmt.Sprintf("Hi %s! Here are your cleaning tasks:\n\n%s", memberName, b.String())
}

func (i *Interpreter) completeTask(memberID, memberName, taskName string) string {
	taskName = strings.TrimSpace(taskName)
	if _, ok := i.service.CompleteTaskByName(memberID, taskName); ok {
		return fmt.Sprintf("Great job %s! The task '%s' has been marked as complete.", memberName, taskName)
	}
	return fmt.Sprintf("Sorry %s, I couldn't find an active task named '%s' assigned to you.", memberName, taskName)
}
