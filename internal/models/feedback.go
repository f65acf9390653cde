package models

import "time"

type Feedback struct {
	ID         int64
	CustomerID *int64
	TelegramID int64
	Message    string
	Reply      *string
	RepliedAt  *time.Time
	CreatedAt  time.Time
}
