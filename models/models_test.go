package models

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairKeyIsDirectional(t *testing.T) {
	assert.Equal(t, "a#b", PairKey("a", "b"))
	assert.Equal(t, "b#a", PairKey("b", "a"))
}

func TestConversationKeyIsUnordered(t *testing.T) {
	assert.Equal(t, ConversationKey("alice", "bob"), ConversationKey("bob", "alice"))
	assert.Equal(t, "alice#bob", ConversationKey("bob", "alice"))
}

func TestEngagementStatusPredicates(t *testing.T) {
	for _, status := range []string{StatusRejected, StatusCompleted, StatusCancelled} {
		e := Engagement{Status: status}
		assert.True(t, e.IsTerminal(), status)
		assert.False(t, e.IsActive(), status)
	}
	for _, status := range []string{StatusPending, StatusAccepted} {
		e := Engagement{Status: status}
		assert.False(t, e.IsTerminal(), status)
		assert.True(t, e.IsActive(), status)
	}
}

func TestStatusesForFilter(t *testing.T) {
	statuses, ok := StatusesForFilter(FilterAll)
	assert.True(t, ok)
	assert.Empty(t, statuses)

	statuses, ok = StatusesForFilter("")
	assert.True(t, ok)
	assert.Empty(t, statuses)

	statuses, ok = StatusesForFilter(FilterActive)
	assert.True(t, ok)
	assert.Equal(t, []string{StatusPending, StatusAccepted}, statuses)

	statuses, ok = StatusesForFilter(FilterCompleted)
	assert.True(t, ok)
	assert.Equal(t, []string{StatusCompleted}, statuses)

	_, ok = StatusesForFilter("bogus")
	assert.False(t, ok)
}

// Stored timestamps are compared as strings, so the layout must sort
// lexicographically in chronological order even across fractional digits.
func TestTimeLayoutSortsLexicographically(t *testing.T) {
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	times := []time.Time{
		base.Add(1200 * time.Millisecond),
		base.Add(100 * time.Millisecond),
		base.Add(2 * time.Second),
		base.Add(10 * time.Nanosecond),
		base,
	}

	stamps := make([]string, len(times))
	for i, ts := range times {
		stamps[i] = ts.Format(TimeLayout)
	}

	sorted := make([]string, len(stamps))
	copy(sorted, stamps)
	sort.Strings(sorted)

	for i, stamp := range sorted {
		parsed, err := time.Parse(TimeLayout, stamp)
		require.NoError(t, err)
		if i > 0 {
			previous, _ := time.Parse(TimeLayout, sorted[i-1])
			assert.False(t, parsed.Before(previous))
		}
	}
}

func TestMessageViewFor(t *testing.T) {
	message := Message{MessageID: "m-1", SenderID: "alice", ReceiverID: "bob", Body: "hi"}

	mine := message.ViewFor("alice")
	assert.True(t, mine.IsMine)

	theirs := message.ViewFor("bob")
	assert.False(t, theirs.IsMine)
	assert.Equal(t, "hi", theirs.Body)
}

func TestProfileSummary(t *testing.T) {
	profile := UserProfile{UserID: "u-1", Name: "Sam", EmailID: "sam@example.com", Role: RoleTradesman, ProfileImage: "img.jpg"}
	summary := profile.Summary()

	assert.Equal(t, "u-1", summary.UserID)
	assert.Equal(t, "Sam", summary.Name)
	assert.Equal(t, RoleTradesman, summary.Role)
	assert.Equal(t, "img.jpg", summary.ProfileImage)
}
