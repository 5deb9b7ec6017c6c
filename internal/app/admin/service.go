package admin

import (
	"context"
	"fmt"
	"strings"

	"order-relay/internal/adapter/logger"
	"order-relay/internal/app/report"
	"order-relay/internal/domain"
	"order-relay/internal/interfaces"
)

// Command words accepted from the admin conversation. First match wins;
// anything else is a silent no-op.
const (
	cmdAdmin    = interfaces.RegisterAdminCommand
	cmdRegister = "register"
	cmdRename   = "rename"
	cmdNames    = "names"
	cmdCloseout = "closeout"
)

// Service dispatches plain-text management commands issued from the
// designated admin conversation.
type Service struct {
	gateway interfaces.MessageGateway
	names   interfaces.NameRegistry
	log     interfaces.OrderLog
	admin   interfaces.AdminConversation
	logger  logger.Logger
}

func NewService(
	gateway interfaces.MessageGateway,
	names interfaces.NameRegistry,
	log interfaces.OrderLog,
	admin interfaces.AdminConversation,
	lgr logger.Logger,
) *Service {
	return &Service{
		gateway: gateway,
		names:   names,
		log:     log,
		admin:   admin,
		logger:  lgr,
	}
}

func (s *Service) HandleCommand(ctx context.Context, event domain.Event) error {
	text := strings.TrimSpace(event.Message.Text)

	switch {
	case text == cmdAdmin:
		s.registerConversation(ctx, event)
	case strings.HasPrefix(text, cmdRegister):
		s.registerNames(ctx, event, text)
	case strings.HasPrefix(text, cmdRename):
		s.rename(ctx, event, text)
	case text == cmdNames:
		s.listNames(ctx, event)
	case text == cmdCloseout:
		s.closeout(ctx, event)
	}
	return nil
}

// registerConversation points reports at the current conversation,
// replacing any previously registered one.
func (s *Service) registerConversation(ctx context.Context, event domain.Event) {
	id := event.Source.ConversationID()
	s.admin.SetAdminConversation(id)
	s.logger.Info("admin_registered", "Admin conversation registered", event.WebhookEventID, map[string]any{
		"conversation_id": id,
	})
	s.reply(ctx, event, "This conversation will receive order reports.")
}

// registerNames upserts one registration per line. The first line carries
// the command word; every line holds "<id> <name>".
func (s *Service) registerNames(ctx context.Context, event domain.Event, text string) {
	registered := 0
	for i, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if i == 0 {
			fields = fields[1:]
		}
		if len(fields) < 2 {
			continue
		}
		s.names.Register(fields[0], strings.Join(fields[1:], " "))
		registered++
	}

	if registered == 0 {
		s.reply(ctx, event, "Usage: register <id> <name>")
		return
	}
	s.reply(ctx, event, fmt.Sprintf("Registered %d name(s).", registered))
}

// rename updates every registration whose current name matches.
func (s *Service) rename(ctx context.Context, event domain.Event, text string) {
	fields := strings.Fields(text)
	if len(fields) < 3 {
		s.reply(ctx, event, "Usage: rename <old name> <new name>")
		return
	}
	oldName, newName := fields[1], fields[2]

	if updated := s.names.RenameAll(oldName, newName); updated == 0 {
		s.reply(ctx, event, fmt.Sprintf("%s is not registered.", oldName))
		return
	}
	s.reply(ctx, event, fmt.Sprintf("Renamed %s to %s.", oldName, newName))
}

func (s *Service) listNames(ctx context.Context, event domain.Event) {
	regs := s.names.Registrations()
	if len(regs) == 0 {
		s.reply(ctx, event, "No names registered.")
		return
	}

	var b strings.Builder
	b.WriteString("📋 Registered names:\n")
	for _, r := range regs {
		fmt.Fprintf(&b, "%s (%s)\n", r.Name, r.ID)
	}
	s.reply(ctx, event, strings.TrimRight(b.String(), "\n"))
}

// closeout pushes the end-of-shift report to the admin conversation and
// clears the log, opening the next business day.
func (s *Service) closeout(ctx context.Context, event domain.Event) {
	businessDate, entries := s.log.Snapshot()
	if len(entries) == 0 {
		s.reply(ctx, event, "Nothing to summarize today.")
		return
	}

	adminID, ok := s.admin.AdminConversation()
	if !ok {
		// Command arrived from a conversation the router matched, so fall
		// back to it rather than dropping the report.
		adminID = event.Source.ConversationID()
	}

	msg := report.Compose(businessDate, entries)
	if err := s.gateway.Push(ctx, adminID, interfaces.NewText(msg)); err != nil {
		s.logger.Error("gateway_push_failed", "Failed to push shift report", event.WebhookEventID, map[string]any{
			"business_date": businessDate,
		}, err)
	}

	s.log.Reset()
	s.logger.Info("shift_closed", "Order log cleared", event.WebhookEventID, map[string]any{
		"business_date": businessDate,
		"orders":        len(entries),
	})
}

func (s *Service) reply(ctx context.Context, event domain.Event, text string) {
	if err := s.gateway.Reply(ctx, event.ReplyToken, interfaces.NewText(text)); err != nil {
		s.logger.Error("gateway_reply_failed", "Failed to reply to admin", event.WebhookEventID, nil, err)
	}
}
