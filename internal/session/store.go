// Package session holds the conversational state of one assistant session:
// the ordered message history, the active language, and the loading flag
// shown while remote turns are in flight.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ruralconnect/sahayak/internal/i18n"
)

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry in the conversation history. The ID is unique per
// message and stable for the lifetime of the session.
type Message struct {
	ID        string
	Sender    Sender
	Text      string
	Timestamp time.Time

	// QuickReplies is set only on bot messages that completed a turn
	// successfully. Error turns never carry replies.
	QuickReplies []string
}

// Snapshot is an immutable view of the session state. The Messages and
// Suggestions slices are copies and safe to retain.
type Snapshot struct {
	Messages    []Message
	Suggestions []string
	Loading     bool
	Language    i18n.Language
}

// Store is the single source of truth for session state. Messages are
// append-only; nothing ever mutates or removes an entry once added.
//
// All methods are safe for concurrent use. Subscribers receive a fresh
// Snapshot after every state change.
type Store struct {
	mu          sync.Mutex
	messages    []Message
	suggestions []string
	loading     bool
	language    i18n.Language

	subs   map[int]chan Snapshot
	nextID int

	now func() time.Time
}

// New creates an empty Store with the given active language. If lang is not
// a supported language, the default language is used.
func New(lang i18n.Language) *Store {
	if !lang.IsValid() {
		lang = i18n.Default
	}
	return &Store{
		language: lang,
		subs:     make(map[int]chan Snapshot),
		now:      time.Now,
	}
}

// BeginTurn appends the user's message and raises the loading flag in a
// single state change.
func (s *Store) BeginTurn(text string) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.append(SenderUser, text)
	s.loading = true
	s.publish()
	return msg
}

// EndTurn appends a bot message and, when last is true, clears the loading
// flag in the same state change. The caller passes last only for the final
// outstanding turn so the loading indicator survives overlapping turns.
// Non-nil suggestions are attached to the bot message and become the
// current quick replies; nil leaves the previous replies untouched and the
// message carries none.
func (s *Store) EndTurn(text string, suggestions []string, last bool) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.append(SenderBot, text)
	if suggestions != nil {
		replies := append([]string(nil), suggestions...)
		msg.QuickReplies = replies
		s.messages[len(s.messages)-1].QuickReplies = replies
		s.suggestions = replies
	}
	if last {
		s.loading = false
	}
	s.publish()
	return msg
}

// AppendBot appends a bot message without touching the loading flag. Used
// for the welcome message and local advisories.
func (s *Store) AppendBot(text string) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.append(SenderBot, text)
	s.publish()
	return msg
}

// SetLanguage switches the active language. Invalid values are ignored.
func (s *Store) SetLanguage(lang i18n.Language) {
	if !lang.IsValid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.language == lang {
		return
	}
	s.language = lang
	s.publish()
}

// Language returns the active language.
func (s *Store) Language() i18n.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// Loading reports whether a remote turn is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers for state change notifications. The returned channel
// carries the latest Snapshot; when the subscriber lags, intermediate
// snapshots are dropped in favour of the newest one. The cancel function
// removes the subscription and closes the channel.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// append adds a message to the history. Must be called with s.mu held.
func (s *Store) append(sender Sender, text string) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: s.now(),
	}
	s.messages = append(s.messages, msg)
	return msg
}

// snapshot builds a Snapshot copy. Must be called with s.mu held.
func (s *Store) snapshot() Snapshot {
	msgs := make([]Message, len(s.messages))
	copy(msgs, s.messages)
	return Snapshot{
		Messages:    msgs,
		Suggestions: append([]string(nil), s.suggestions...),
		Loading:     s.loading,
		Language:    s.language,
	}
}

// publish pushes the current snapshot to every subscriber, replacing any
// undelivered one. Must be called with s.mu held.
func (s *Store) publish() {
	snap := s.snapshot()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
