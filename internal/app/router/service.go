package router

import (
	"context"

	"order-relay/internal/adapter/logger"
	"order-relay/internal/domain"
	"order-relay/internal/interfaces"
)

// Service classifies inbound events and dispatches them to the order or
// admin flow. Unmatched events are silent no-ops.
type Service struct {
	orders interfaces.OrderService
	admins interfaces.AdminService
	admin  interfaces.AdminConversation
	logger logger.Logger
}

func NewService(
	orders interfaces.OrderService,
	admins interfaces.AdminService,
	admin interfaces.AdminConversation,
	lgr logger.Logger,
) *Service {
	return &Service{
		orders: orders,
		admins: admins,
		admin:  admin,
		logger: lgr,
	}
}

func (s *Service) Route(ctx context.Context, event domain.Event) error {
	if !event.IsMessage() {
		return nil
	}

	adminID, registered := s.admin.AdminConversation()
	sourceID := event.Source.ConversationID()

	// Text commands from the registered admin conversation.
	if registered && sourceID == adminID && event.Source.Type != domain.SourceUser {
		if event.Message.Type != domain.MessageText {
			return nil
		}
		return s.admins.HandleCommand(ctx, event)
	}

	// Orders only come from individual conversations.
	if event.Source.Type == domain.SourceUser {
		if event.Message.Type != domain.MessageText && event.Message.Type != domain.MessageImage {
			return nil
		}
		return s.orders.HandleMessage(ctx, event)
	}

	// Until an admin conversation exists, a group can claim the role from
	// within by issuing the registration command.
	if !registered && event.Message.Type == domain.MessageText &&
		interfaces.IsRegisterAdminCommand(event.Message.Text) &&
		(event.Source.Type == domain.SourceGroup || event.Source.Type == domain.SourceRoom) {
		return s.admins.HandleCommand(ctx, event)
	}

	s.logger.Debug("event_ignored", "No matching disposition", event.WebhookEventID, map[string]any{
		"source_type":  string(event.Source.Type),
		"message_type": string(event.Message.Type),
	})
	return nil
}
