package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-relay/internal/domain"
)

func entries() []domain.OrderEntry {
	return []domain.OrderEntry{
		{DisplayName: "Alice", Item: "T1"},
		{DisplayName: "Alice", Item: "T1"},
		{DisplayName: "Bob", Item: "photo"},
	}
}

func TestItemizedKeepsInsertionOrder(t *testing.T) {
	got := Itemized(entries())
	require.Equal(t, []string{"Alice T1", "Alice T1", "Bob photo"}, strings.Split(got, "\n"))
}

func TestSummaryCountsInFirstSeenOrder(t *testing.T) {
	got := Summary(entries())
	require.Equal(t, []string{"Alice T1 ×2", "Bob photo ×1"}, strings.Split(got, "\n"))
}

func TestSummaryDoesNotNormalizeKeys(t *testing.T) {
	got := Summary([]domain.OrderEntry{
		{DisplayName: "Alice", Item: "T1"},
		{DisplayName: "Alice", Item: "T1 "},
	})
	require.Equal(t, []string{"Alice T1 ×1", "Alice T1  ×1"}, strings.Split(got, "\n"))
}

func TestComposeContainsBothBlocks(t *testing.T) {
	got := Compose("2026/8/28", entries())
	assert.Contains(t, got, "📌 2026/8/28 summary")
	assert.Contains(t, got, "--- orders ---\nAlice T1\nAlice T1\nBob photo")
	assert.Contains(t, got, "--- totals ---\nAlice T1 ×2\nBob photo ×1")
}
