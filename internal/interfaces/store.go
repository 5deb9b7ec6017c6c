package interfaces

import "order-relay/internal/domain"

// In-memory state contracts (Adapter/Memory). All state is owned by the
// running process; nothing survives a restart.

// SessionStore holds the pending seat selection per user.
type SessionStore interface {
	SetSeat(userID, seat string)
	// ConsumeSeat atomically reads and clears the pending seat, so two
	// concurrent orders cannot both claim it.
	ConsumeSeat(userID string) (string, bool)
}

// NameRegistry maps user identifiers to admin-registered display names.
type NameRegistry interface {
	Register(id, name string)
	// Resolve matches the full user id first, then its short fragment,
	// since admins usually register the fragment they see in listings.
	Resolve(userID string) (string, bool)
	// RenameAll updates every registration whose name equals oldName and
	// returns how many were changed.
	RenameAll(oldName, newName string) int
	Registrations() []domain.Registration
}

// OrderLog is the ordered sequence of captures for the open business day.
type OrderLog interface {
	Append(entry domain.OrderEntry)
	// Snapshot returns the current business date and all entries in
	// insertion order.
	Snapshot() (string, []domain.OrderEntry)
	Reset()
}

// AdminConversation tracks the single conversation that receives reports.
type AdminConversation interface {
	SetAdminConversation(id string)
	AdminConversation() (string, bool)
}
