// Package chattest provides an in-memory chat.Messenger that records what the
// bot sends.
package chattest

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/dmitrijs2005/cargobot/internal/chat"
)

// Kind of a recorded message.
type Kind string

const (
	KindText     Kind = "text"
	KindPhoto    Kind = "photo"
	KindDocument Kind = "document"
)

type Sent struct {
	Kind      Kind
	ChatID    int64
	MessageID int
	Text      string // text or caption
	Photo     chat.Photo
	Path      string
	Markup    chat.Markup
}

var ErrSend = errors.New("send failed")

// Recorder is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	nextID  int
	sent    []Sent
	answers []string
	cleared []int

	// FailChats makes every send to the listed chats fail with ErrSend.
	FailChats map[int64]bool
	// FailPhotos makes photo sends fail.
	FailPhotos bool
	// Files maps a file id to the content DownloadFile writes.
	Files map[string][]byte
}

func NewRecorder() *Recorder {
	return &Recorder{nextID: 100, FailChats: map[int64]bool{}, Files: map[string][]byte{}}
}

func (r *Recorder) record(s Sent) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailChats[s.ChatID] || (s.Kind == KindPhoto && r.FailPhotos) {
		return 0, ErrSend
	}
	r.nextID++
	s.MessageID = r.nextID
	r.sent = append(r.sent, s)
	return s.MessageID, nil
}

func (r *Recorder) SendText(_ context.Context, chatID int64, text string, markup chat.Markup) (int, error) {
	return r.record(Sent{Kind: KindText, ChatID: chatID, Text: text, Markup: markup})
}

func (r *Recorder) SendPhoto(_ context.Context, chatID int64, photo chat.Photo, caption string, markup chat.Markup) (int, error) {
	return r.record(Sent{Kind: KindPhoto, ChatID: chatID, Photo: photo, Text: caption, Markup: markup})
}

func (r *Recorder) SendDocument(_ context.Context, chatID int64, path, caption string) (int, error) {
	return r.record(Sent{Kind: KindDocument, ChatID: chatID, Path: path, Text: caption})
}

func (r *Recorder) AnswerCallback(_ context.Context, callbackID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers = append(r.answers, callbackID)
	return nil
}

func (r *Recorder) ClearInlineKeyboard(_ context.Context, chatID int64, messageID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared = append(r.cleared, messageID)
	return nil
}

func (r *Recorder) DownloadFile(_ context.Context, fileID, dst string) error {
	r.mu.Lock()
	data, ok := r.Files[fileID]
	r.mu.Unlock()
	if !ok {
		return ErrSend
	}
	return os.WriteFile(dst, data, 0o600)
}

// Sent returns a copy of everything sent so far.
func (r *Recorder) Sent() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sent(nil), r.sent...)
}

// To returns the messages sent to chatID.
func (r *Recorder) To(chatID int64) []Sent {
	var out []Sent
	for _, s := range r.Sent() {
		if s.ChatID == chatID {
			out = append(out, s)
		}
	}
	return out
}

// Last returns the last message sent to chatID.
func (r *Recorder) Last(chatID int64) (Sent, bool) {
	msgs := r.To(chatID)
	if len(msgs) == 0 {
		return Sent{}, false
	}
	return msgs[len(msgs)-1], true
}

func (r *Recorder) Answers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.answers...)
}

func (r *Recorder) Cleared() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.cleared...)
}

// Reset forgets recorded messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
	r.answers = nil
	r.cleared = nil
}
