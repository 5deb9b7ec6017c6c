package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"order-relay/internal/adapter/logger"
	"order-relay/internal/domain"
	"order-relay/internal/interfaces"
)

// seatPromptKeyword makes the service offer the seat choices as
// quick-reply buttons.
const seatPromptKeyword = "seats"

// Service runs the order-capture flow for individual conversations:
// seat selection first, then the next message becomes the order.
type Service struct {
	gateway      interfaces.MessageGateway
	sessions     interfaces.SessionStore
	names        interfaces.NameRegistry
	log          interfaces.OrderLog
	admin        interfaces.AdminConversation
	logger       logger.Logger
	rolloverHour int
	now          func() time.Time
}

func NewService(
	gateway interfaces.MessageGateway,
	sessions interfaces.SessionStore,
	names interfaces.NameRegistry,
	log interfaces.OrderLog,
	admin interfaces.AdminConversation,
	lgr logger.Logger,
	rolloverHour int,
) *Service {
	return &Service{
		gateway:      gateway,
		sessions:     sessions,
		names:        names,
		log:          log,
		admin:        admin,
		logger:       lgr,
		rolloverHour: rolloverHour,
		now:          time.Now,
	}
}

func (s *Service) HandleMessage(ctx context.Context, event domain.Event) error {
	userID := event.Source.UserID

	if event.Message.Type == domain.MessageImage {
		s.capture(ctx, event, userID, domain.ItemPhoto)
		return nil
	}

	text := strings.TrimSpace(event.Message.Text)

	if strings.EqualFold(text, seatPromptKeyword) {
		msg := interfaces.NewChoiceText("Pick a seat", domain.Seats)
		s.reply(ctx, event, msg)
		return nil
	}

	if domain.IsSeat(text) {
		s.sessions.SetSeat(userID, text)
		s.reply(ctx, event, interfaces.NewText(fmt.Sprintf("%s noted.", text)))
		return nil
	}

	if text == "" {
		text = domain.ItemNone
	}
	s.capture(ctx, event, userID, text)
	return nil
}

// capture appends one order entry, notifies the admin conversation and
// acknowledges the sender. A pending seat is consumed exactly once.
func (s *Service) capture(ctx context.Context, event domain.Event, userID, item string) {
	seat, _ := s.sessions.ConsumeSeat(userID)
	displayName := s.resolveName(ctx, event.WebhookEventID, userID)

	now := s.now()
	s.log.Append(domain.OrderEntry{
		UserID:       userID,
		DisplayName:  displayName,
		Seat:         seat,
		Item:         item,
		BusinessDate: domain.BusinessDate(now, s.rolloverHour),
		CapturedAt:   now,
	})

	s.logger.Debug("order_captured", "Order appended to shift log", event.WebhookEventID, map[string]any{
		"seat": seat,
		"item": item,
	})

	notice := fmt.Sprintf("%s\n%s", displayName, item)
	if seat != "" {
		notice = fmt.Sprintf("[%s] %s\n%s", seat, displayName, item)
	}
	s.notifyAdmin(ctx, event.WebhookEventID, notice)

	ack := "Order received."
	if seat != "" {
		ack = fmt.Sprintf("%s order received.", seat)
	}
	s.reply(ctx, event, interfaces.NewText(ack))
}

// resolveName prefers the registered name; otherwise it composes one from
// the remote profile. Lookup failures only degrade the name, they never
// surface to the sender.
func (s *Service) resolveName(ctx context.Context, eventID, userID string) string {
	if name, ok := s.names.Resolve(userID); ok {
		return name
	}

	profile, err := s.gateway.GetProfile(ctx, userID)
	if err != nil {
		s.logger.Error("gateway_profile_failed", "Profile lookup failed", eventID, map[string]any{
			"user_id": domain.ShortID(userID),
		}, err)
		return domain.ShortID(userID)
	}
	return domain.ComposeDisplayName(profile.DisplayName, userID)
}

func (s *Service) notifyAdmin(ctx context.Context, eventID, text string) {
	adminID, ok := s.admin.AdminConversation()
	if !ok {
		s.logger.Debug("admin_not_registered", "No admin conversation to notify", eventID, nil)
		return
	}
	if err := s.gateway.Push(ctx, adminID, interfaces.NewText(text)); err != nil {
		s.logger.Error("gateway_push_failed", "Failed to notify admin conversation", eventID, nil, err)
	}
}

func (s *Service) reply(ctx context.Context, event domain.Event, messages ...interfaces.TextMessage) {
	if err := s.gateway.Reply(ctx, event.ReplyToken, messages...); err != nil {
		s.logger.Error("gateway_reply_failed", "Failed to reply to sender", event.WebhookEventID, nil, err)
	}
}
