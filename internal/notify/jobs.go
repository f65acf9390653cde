package notify

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cargobot/internal/chat"
)

// Text builds a job that sends text to chatID.
func Text(m chat.Messenger, chatID int64, text string, markup chat.Markup) Job {
	return Job{
		Name: fmt.Sprintf("text:%d", chatID),
		Run: func(ctx context.Context) error {
			_, err := m.SendText(ctx, chatID, text, markup)
			return err
		},
	}
}
