package services

import "log"

// NotificationService pushes domain events to the counterpart's live
// connection. Delivery is fire-and-forget, at most once: state changes are
// durably persisted before Notify is called, and a user who missed an event
// recovers it by querying, never by replay.
type NotificationService struct {
	Presence *PresenceRegistry
}

func NewNotificationService(presence *PresenceRegistry) *NotificationService {
	return &NotificationService{Presence: presence}
}

// Notify emits the event when the target is online and silently succeeds when
// they are not. Reports whether a live delivery was attempted.
func (ns *NotificationService) Notify(userID, event string, payload interface{}) bool {
	conn, ok := ns.Presence.Lookup(userID)
	if !ok {
		return false
	}
	conn.Emit(event, payload)
	log.Printf("📡 Pushed %s to %s", event, userID)
	return true
}
