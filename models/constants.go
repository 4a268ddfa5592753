package models

import "time"

// Roles supplied by the auth middleware.
const (
	RoleClient    = "client"
	RoleTradesman = "tradesman"
)

// Engagement statuses. Rejected, completed and cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Respond actions.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

// Engagement list filters.
const (
	FilterAll       = "all"
	FilterActive    = "active"
	FilterCompleted = "completed"
)

// Socket event names pushed through the notification dispatcher.
const (
	EventNewMessage        = "newMessage"
	EventHireRequest       = "hireRequest"
	EventHireResponse      = "hireResponse"
	EventCompletionRequest = "completionRequest"
	EventCompletionResult  = "completionResult"
)

// TimeLayout keeps a fixed-width fractional part so stored timestamps sort
// lexicographically in the same order as chronologically.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// NowStamp returns the current UTC time in TimeLayout.
func NowStamp() string {
	return time.Now().UTC().Format(TimeLayout)
}
