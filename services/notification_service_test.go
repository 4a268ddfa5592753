package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyOnlineUser(t *testing.T) {
	presence := NewPresenceRegistry()
	notifier := NewNotificationService(presence)

	conn := newFakeConn("sock-1")
	presence.Register("alice", conn)

	delivered := notifier.Notify("alice", "hireRequest", map[string]string{"hireId": "h-1"})
	assert.True(t, delivered)

	events := conn.emitted()
	require.Len(t, events, 1)
	assert.Equal(t, "hireRequest", events[0].Event)
}

func TestNotifyOfflineUserIsSilent(t *testing.T) {
	presence := NewPresenceRegistry()
	notifier := NewNotificationService(presence)

	delivered := notifier.Notify("nobody", "hireRequest", nil)
	assert.False(t, delivered)
}

func TestNotifyTargetsOnlyTheAddressee(t *testing.T) {
	presence := NewPresenceRegistry()
	notifier := NewNotificationService(presence)

	alice := newFakeConn("sock-a")
	bob := newFakeConn("sock-b")
	presence.Register("alice", alice)
	presence.Register("bob", bob)

	notifier.Notify("alice", "newMessage", nil)

	assert.Len(t, alice.emitted(), 1)
	assert.Empty(t, bob.emitted())
}
