// Package events provides a small in-process publish/subscribe bus used to
// decouple domain services from their collaborators (notifications, logging).
package events

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/stackboard/stackboard/pkg/logger"
)

// Topic names published by the application.
const (
	WorkspaceCreated = "workspace.created"
	TaskAssigned     = "task.assigned"
	MemberInvited    = "member.invited"
)

// WorkspaceCreatedPayload carries the data promised to collaborators when a
// workspace is created.
type WorkspaceCreatedPayload struct {
	WorkspaceID   string `json:"workspace_id"`
	WorkspaceName string `json:"workspace_name"`
	OwnerID       string `json:"owner_id"`
	OwnerEmail    string `json:"owner_email"`
}

// TaskAssignedPayload describes a task newly assigned to a user.
type TaskAssignedPayload struct {
	TaskID        string `json:"task_id"`
	TaskTitle     string `json:"task_title"`
	ProjectID     string `json:"project_id"`
	AssigneeEmail string `json:"assignee_email"`
	ActorEmail    string `json:"actor_email"`
}

// MemberInvitedPayload describes a pending workspace invitation.
type MemberInvitedPayload struct {
	InvitationID  string `json:"invitation_id"`
	WorkspaceID   string `json:"workspace_id"`
	WorkspaceName string `json:"workspace_name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	InviterID     string `json:"inviter_id"`
}

// Handler consumes a published event. Handlers run synchronously on the
// publisher's goroutine; anything slow must offload itself.
type Handler func(ctx context.Context, payload any)

// Bus is a minimal topic-keyed dispatcher.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for the topic.
func (b *Bus) Subscribe(topic string, handler Handler) {
	if handler == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish dispatches the payload to every subscriber of the topic. Handler
// panics are contained so one bad subscriber cannot break the publisher.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[topic]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.WithModule("events").Error("event handler panic",
						zap.String("topic", topic),
						zap.Any("error", r),
					)
				}
			}()
			handler(ctx, payload)
		}()
	}
}
