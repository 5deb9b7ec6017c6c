// Package report aggregates the order log into the end-of-shift text
// blocks. Everything here is a pure function of the entries passed in.
package report

import (
	"fmt"
	"strings"

	"order-relay/internal/domain"
)

// Itemized renders one line per entry in insertion order.
func Itemized(entries []domain.OrderEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s\n", e.DisplayName, e.Item)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Summary renders occurrence counts per distinct (displayName, item)
// pair, in first-seen order. Grouping is exact string equality on the
// composed "displayName item" key; no normalization.
func Summary(entries []domain.OrderEntry) string {
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		key := e.DisplayName + " " + e.Item
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	var b strings.Builder
	for _, key := range order {
		fmt.Fprintf(&b, "%s ×%d\n", key, counts[key])
	}
	return strings.TrimRight(b.String(), "\n")
}

// Compose builds the full end-of-shift message pushed to the admin
// conversation.
func Compose(businessDate string, entries []domain.OrderEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📌 %s summary\n\n", businessDate)
	b.WriteString("--- orders ---\n")
	b.WriteString(Itemized(entries))
	b.WriteString("\n\n--- totals ---\n")
	b.WriteString(Summary(entries))
	return b.String()
}
