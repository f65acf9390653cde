// Package chat describes the messaging channel the bot talks through:
// inbound updates, outbound keyboards and the Messenger that sends them.
// internal/chat/telegram adapts it to the Telegram Bot API.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Update is one inbound user action.
type Update struct {
	UserID    int64
	ChatID    int64
	Username  string
	Private   bool
	MessageID int

	Text     string
	Command  string // bot command without the slash, e.g. "start"
	PhotoID  string // largest photo size
	Document *Document
	Callback *Callback
}

type Document struct {
	FileID   string
	FileName string
}

// Callback is an inline button press.
type Callback struct {
	ID        string
	Data      string
	ChatID    int64
	MessageID int
}

// Markup is the keyboard attached to an outgoing message.
type Markup interface {
	isMarkup()
}

// ReplyKeyboard shows button labels under the input field.
type ReplyKeyboard struct {
	Rows [][]string
}

type InlineButton struct {
	Text string
	Data string
}

// InlineKeyboard attaches buttons to the message itself.
type InlineKeyboard struct {
	Rows [][]InlineButton
}

// RemoveKeyboard hides a previously shown reply keyboard.
type RemoveKeyboard struct{}

func (ReplyKeyboard) isMarkup()  {}
func (InlineKeyboard) isMarkup() {}
func (RemoveKeyboard) isMarkup() {}

// Photo references an image either by a platform file id or a local path.
type Photo struct {
	FileID string
	Path   string
}

// Messenger sends messages. Send methods return the id of the sent message.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, markup Markup) (int, error)
	SendPhoto(ctx context.Context, chatID int64, photo Photo, caption string, markup Markup) (int, error)
	SendDocument(ctx context.Context, chatID int64, path, caption string) (int, error)
	AnswerCallback(ctx context.Context, callbackID, text string) error
	ClearInlineKeyboard(ctx context.Context, chatID int64, messageID int) error
	DownloadFile(ctx context.Context, fileID, dst string) error
}

// ErrPermanent marks a delivery failure that repeating the call cannot fix,
// such as a user who blocked the bot or a chat that does not exist.
var ErrPermanent = errors.New("permanent delivery failure")

// IsPermanent reports whether err is a delivery failure not worth retrying.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanent)
}

// Callback actions carried in inline button data.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionReply   = "reply"
)

// CallbackData encodes an action and a record id, e.g. "approve:42".
func CallbackData(action string, id int64) string {
	return fmt.Sprintf("%s:%d", action, id)
}

// ParseCallback decodes data produced by CallbackData.
func ParseCallback(data string) (string, int64, bool) {
	action, raw, ok := strings.Cut(data, ":")
	if !ok || action == "" {
		return "", 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return action, id, true
}
