// Package telegram adapts chat.Messenger and the inbound update stream to the
// Telegram Bot API.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/netx"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const pollTimeout = 60

// botAPI is the part of *tgbotapi.BotAPI the adapter uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot implements chat.Messenger.
type Bot struct {
	api    botAPI
	http   *http.Client
	logger logging.Logger
}

// newBotAPI is a seam for tests.
var newBotAPI = func(token string) (botAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return api, nil
}

func New(token string, logger logging.Logger) (*Bot, error) {
	api, err := newBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return newBot(api, logger), nil
}

func newBot(api botAPI, logger logging.Logger) *Bot {
	return &Bot{api: api, http: http.DefaultClient, logger: logger.With("module", "telegram")}
}

func (b *Bot) SendText(_ context.Context, chatID int64, text string, markup chat.Markup) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = replyMarkup(markup)
	sent, err := b.api.Send(msg)
	if err != nil {
		return 0, classify(err)
	}
	return sent.MessageID, nil
}

func (b *Bot) SendPhoto(_ context.Context, chatID int64, photo chat.Photo, caption string, markup chat.Markup) (int, error) {
	var file tgbotapi.RequestFileData
	if photo.FileID != "" {
		file = tgbotapi.FileID(photo.FileID)
	} else {
		file = tgbotapi.FilePath(photo.Path)
	}

	msg := tgbotapi.NewPhoto(chatID, file)
	msg.Caption = caption
	msg.ReplyMarkup = replyMarkup(markup)
	sent, err := b.api.Send(msg)
	if err != nil {
		return 0, classify(err)
	}
	return sent.MessageID, nil
}

func (b *Bot) SendDocument(_ context.Context, chatID int64, path, caption string) (int, error) {
	msg := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	msg.Caption = caption
	sent, err := b.api.Send(msg)
	if err != nil {
		return 0, classify(err)
	}
	return sent.MessageID, nil
}

func (b *Bot) AnswerCallback(_ context.Context, callbackID, text string) error {
	_, err := b.api.Request(tgbotapi.NewCallback(callbackID, text))
	return classify(err)
}

func (b *Bot) ClearInlineKeyboard(_ context.Context, chatID int64, messageID int) error {
	empty := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	_, err := b.api.Request(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, empty))
	return classify(err)
}

// classify marks Bot API rejections of the request itself as permanent:
// 400 for a missing chat or a malformed message, 403 for a blocked bot.
func classify(err error) error {
	if err == nil {
		return nil
	}
	code := 0
	var ptr *tgbotapi.Error
	var val tgbotapi.Error
	switch {
	case errors.As(err, &ptr):
		code = ptr.Code
	case errors.As(err, &val):
		code = val.Code
	}
	if code == http.StatusBadRequest || code == http.StatusForbidden {
		return fmt.Errorf("%w: %w", chat.ErrPermanent, err)
	}
	return err
}

// DownloadFile stores the file behind fileID at dst.
func (b *Bot) DownloadFile(ctx context.Context, fileID, dst string) error {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return fmt.Errorf("resolve file: %w", err)
	}

	return netx.DownloadToFile(ctx, b.http, url, dst)
}

// Poll delivers updates to handle one at a time until ctx is cancelled.
func (b *Bot) Poll(ctx context.Context, handle func(context.Context, chat.Update)) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(cfg)

	b.logger.Info(ctx, "polling started")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info(ctx, "polling stopped")
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			if update, ok := convertUpdate(u); ok {
				handle(ctx, update)
			}
		}
	}
}

func convertUpdate(u tgbotapi.Update) (chat.Update, bool) {
	if cq := u.CallbackQuery; cq != nil {
		if cq.From == nil {
			return chat.Update{}, false
		}
		out := chat.Update{
			UserID:   cq.From.ID,
			Username: cq.From.UserName,
			Callback: &chat.Callback{ID: cq.ID, Data: cq.Data},
		}
		if cq.Message != nil && cq.Message.Chat != nil {
			out.ChatID = cq.Message.Chat.ID
			out.Private = cq.Message.Chat.IsPrivate()
			out.Callback.ChatID = cq.Message.Chat.ID
			out.Callback.MessageID = cq.Message.MessageID
		}
		return out, true
	}

	m := u.Message
	if m == nil || m.From == nil || m.Chat == nil {
		return chat.Update{}, false
	}

	out := chat.Update{
		UserID:    m.From.ID,
		ChatID:    m.Chat.ID,
		Username:  m.From.UserName,
		Private:   m.Chat.IsPrivate(),
		MessageID: m.MessageID,
		Text:      m.Text,
	}
	if m.IsCommand() {
		out.Command = m.Command()
		out.Text = ""
	}
	if n := len(m.Photo); n > 0 {
		out.PhotoID = m.Photo[n-1].FileID
	}
	if m.Document != nil {
		out.Document = &chat.Document{FileID: m.Document.FileID, FileName: m.Document.FileName}
	}
	return out, true
}

func replyMarkup(markup chat.Markup) any {
	switch m := markup.(type) {
	case chat.ReplyKeyboard:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(m.Rows))
		for _, row := range m.Rows {
			buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, label := range row {
				buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
			}
			rows = append(rows, buttons)
		}
		return tgbotapi.NewReplyKeyboard(rows...)
	case chat.InlineKeyboard:
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(m.Rows))
		for _, row := range m.Rows {
			buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
			for _, b := range row {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
			}
			rows = append(rows, buttons)
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	case chat.RemoveKeyboard:
		return tgbotapi.NewRemoveKeyboard(true)
	}
	return nil
}
