package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-relay/internal/adapter/logger"
	"order-relay/internal/adapter/memory"
	"order-relay/internal/domain"
)

type recorder struct {
	orders   []domain.Event
	commands []domain.Event
}

func (r *recorder) HandleMessage(_ context.Context, ev domain.Event) error {
	r.orders = append(r.orders, ev)
	return nil
}

func (r *recorder) HandleCommand(_ context.Context, ev domain.Event) error {
	r.commands = append(r.commands, ev)
	return nil
}

func newRouter(t *testing.T, adminID string) (*Service, *recorder, *memory.Store) {
	t.Helper()
	rec := &recorder{}
	store := memory.NewStore()
	if adminID != "" {
		store.SetAdminConversation(adminID)
	}
	return NewService(rec, rec, store, logger.Nop()), rec, store
}

func event(sourceType domain.SourceType, conversationID string, messageType domain.MessageType, text string) domain.Event {
	ev := domain.Event{
		Type:    domain.EventMessage,
		Message: domain.Message{Type: messageType, Text: text},
	}
	switch sourceType {
	case domain.SourceUser:
		ev.Source = domain.Source{Type: domain.SourceUser, UserID: conversationID}
	case domain.SourceGroup:
		ev.Source = domain.Source{Type: domain.SourceGroup, GroupID: conversationID}
	case domain.SourceRoom:
		ev.Source = domain.Source{Type: domain.SourceRoom, RoomID: conversationID}
	}
	return ev
}

func TestNonMessageEventIgnored(t *testing.T) {
	svc, rec, _ := newRouter(t, "G-admin")

	ev := event(domain.SourceUser, "U1", domain.MessageText, "hi")
	ev.Type = "follow"
	require.NoError(t, svc.Route(context.Background(), ev))

	assert.Empty(t, rec.orders)
	assert.Empty(t, rec.commands)
}

func TestUserMessagesGoToOrderFlow(t *testing.T) {
	svc, rec, _ := newRouter(t, "G-admin")

	require.NoError(t, svc.Route(context.Background(), event(domain.SourceUser, "U1", domain.MessageText, "T1")))
	require.NoError(t, svc.Route(context.Background(), event(domain.SourceUser, "U1", domain.MessageImage, "")))

	assert.Len(t, rec.orders, 2)
	assert.Empty(t, rec.commands)
}

func TestUserStickerIgnored(t *testing.T) {
	svc, rec, _ := newRouter(t, "G-admin")

	require.NoError(t, svc.Route(context.Background(), event(domain.SourceUser, "U1", "sticker", "")))

	assert.Empty(t, rec.orders)
}

func TestAdminGroupTextGoesToAdminFlow(t *testing.T) {
	svc, rec, _ := newRouter(t, "G-admin")

	require.NoError(t, svc.Route(context.Background(), event(domain.SourceGroup, "G-admin", domain.MessageText, "names")))

	assert.Len(t, rec.commands, 1)
	assert.Empty(t, rec.orders)
}

func TestAdminGroupImageIgnored(t *testing.T) {
	svc, rec, _ := newRouter(t, "G-admin")

	require.NoError(t, svc.Route(context.Background(), event(domain.SourceGroup, "G-admin", domain.MessageImage, "")))

	assert.Empty(t, rec.commands)
}

func TestOtherGroupIgnoredWhenAdminRegistered(t *testing.T) {
	svc, rec, _ := newRouter(t, "G-admin")

	require.NoError(t, svc.Route(context.Background(), event(domain.SourceGroup, "G-other", domain.MessageText, "closeout")))

	assert.Empty(t, rec.commands)
	assert.Empty(t, rec.orders)
}

func TestUnregisteredGroupCanOnlyClaimAdminRole(t *testing.T) {
	svc, rec, _ := newRouter(t, "")

	require.NoError(t, svc.Route(context.Background(), event(domain.SourceGroup, "G-any", domain.MessageText, "closeout")))
	assert.Empty(t, rec.commands)

	require.NoError(t, svc.Route(context.Background(), event(domain.SourceGroup, "G-any", domain.MessageText, "admin")))
	require.Len(t, rec.commands, 1)
	assert.Equal(t, "admin", rec.commands[0].Message.Text)
}

func TestRoomCanHostAdminConversation(t *testing.T) {
	svc, rec, store := newRouter(t, "")
	store.SetAdminConversation("R-admin")

	require.NoError(t, svc.Route(context.Background(), event(domain.SourceRoom, "R-admin", domain.MessageText, "names")))

	assert.Len(t, rec.commands, 1)
}
