package models

import "time"

// QueueEntry links a staff-channel notification message to the customer it
// describes, so a button pressed on that message resolves to the customer.
type QueueEntry struct {
	ID          int64
	CustomerID  int64
	ChannelID   int64
	MessageID   int
	SubmittedAt time.Time
	DecidedAt   *time.Time
	DecidedBy   *int64
}
