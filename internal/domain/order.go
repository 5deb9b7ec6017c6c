package domain

import (
	"fmt"
	"time"
)

// OrderEntry is one captured order in the shift log.
type OrderEntry struct {
	UserID       string
	DisplayName  string
	Seat         string
	Item         string
	BusinessDate string
	CapturedAt   time.Time
}

// Sentinel items recorded in place of free-text order content.
const (
	ItemPhoto   = "photo"
	ItemNone    = "no order"
	NameUnknown = "unknown"
)

// Seats is the fixed set of selectable seat tokens, in display order.
var Seats = []string{"T1", "T2", "T3", "T4", "T5", "T6", "V1", "V2", "V3"}

// IsSeat reports whether text is exactly one of the seat tokens.
func IsSeat(text string) bool {
	for _, s := range Seats {
		if text == s {
			return true
		}
	}
	return false
}

// shortIDLen is the number of leading user-id characters used as a
// human-readable fragment in names and listings.
const shortIDLen = 6

// ShortID returns the leading fragment of a user identifier.
func ShortID(userID string) string {
	if len(userID) <= shortIDLen {
		return userID
	}
	return userID[:shortIDLen]
}

// ComposeDisplayName builds the display name used when no registration
// exists: the remote profile name plus a short id fragment. An empty
// profile name yields the unknown placeholder.
func ComposeDisplayName(profileName, userID string) string {
	if profileName == "" {
		profileName = NameUnknown
	}
	return fmt.Sprintf("%s (%s)", profileName, ShortID(userID))
}

// Registration maps a user identifier (or its short fragment, as entered
// by the admin) to a display name.
type Registration struct {
	ID   string
	Name string
}

// DefaultRolloverHour is the local hour at which the business day rolls
// over. Activity before it belongs to the previous calendar date.
const DefaultRolloverHour = 6

// BusinessDate returns the business date string (YYYY/M/D, no zero
// padding) for the given capture time.
func BusinessDate(t time.Time, rolloverHour int) string {
	if t.Hour() < rolloverHour {
		t = t.AddDate(0, 0, -1)
	}
	return fmt.Sprintf("%d/%d/%d", t.Year(), int(t.Month()), t.Day())
}
