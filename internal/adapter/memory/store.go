package memory

import (
	"sync"

	"order-relay/internal/domain"
)

// Store owns all process-lifetime state: pending seat selections, the name
// registry, the order log for the open business day, and the admin
// conversation id. One mutex serializes every read-modify-write, so
// concurrent webhook batches cannot interleave on the same key.
type Store struct {
	mu sync.Mutex

	seats map[string]string

	names     map[string]string
	nameOrder []string

	entries      []domain.OrderEntry
	businessDate string

	adminID string
}

func NewStore() *Store {
	return &Store{
		seats: make(map[string]string),
		names: make(map[string]string),
	}
}

// --- SessionStore ---

func (s *Store) SetSeat(userID, seat string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seats[userID] = seat
}

func (s *Store) ConsumeSeat(userID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat, ok := s.seats[userID]
	if ok {
		delete(s.seats, userID)
	}
	return seat, ok
}

// --- NameRegistry ---

func (s *Store) Register(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.names[id]; !exists {
		s.nameOrder = append(s.nameOrder, id)
	}
	s.names[id] = name
}

func (s *Store) Resolve(userID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name, ok := s.names[userID]; ok {
		return name, true
	}
	if name, ok := s.names[domain.ShortID(userID)]; ok {
		return name, true
	}
	return "", false
}

func (s *Store) RenameAll(oldName, newName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := 0
	for id, name := range s.names {
		if name == oldName {
			s.names[id] = newName
			updated++
		}
	}
	return updated
}

func (s *Store) Registrations() []domain.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	regs := make([]domain.Registration, 0, len(s.nameOrder))
	for _, id := range s.nameOrder {
		regs = append(regs, domain.Registration{ID: id, Name: s.names[id]})
	}
	return regs
}

// --- OrderLog ---

func (s *Store) Append(entry domain.OrderEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	s.businessDate = entry.BusinessDate
}

func (s *Store) Snapshot() (string, []domain.OrderEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]domain.OrderEntry, len(s.entries))
	copy(entries, s.entries)
	return s.businessDate, entries
}

func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.businessDate = ""
}

// --- AdminConversation ---

func (s *Store) SetAdminConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adminID = id
}

func (s *Store) AdminConversation() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminID, s.adminID != ""
}
