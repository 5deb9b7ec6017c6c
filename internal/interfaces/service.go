package interfaces

import (
	"context"
	"strings"

	"order-relay/internal/domain"
)

// RegisterAdminCommand claims the issuing conversation as the admin
// conversation. The router needs it to bootstrap routing before any admin
// conversation exists.
const RegisterAdminCommand = "admin"

// IsRegisterAdminCommand reports whether text is the registration command.
func IsRegisterAdminCommand(text string) bool {
	return strings.TrimSpace(text) == RegisterAdminCommand
}

// Service contracts (business logic).

// EventRouter classifies one inbound event and dispatches it.
type EventRouter interface {
	Route(ctx context.Context, event domain.Event) error
}

// OrderService runs the seat-selection and order-capture flow for
// individual conversations.
type OrderService interface {
	HandleMessage(ctx context.Context, event domain.Event) error
}

// AdminService dispatches plain-text commands from the admin conversation.
type AdminService interface {
	HandleCommand(ctx context.Context, event domain.Event) error
}
