package assistant

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"spotsolve-be/models"
)

// DefaultReplyDelay mimics typing before a reply shows up in the transcript.
const DefaultReplyDelay = 250 * time.Millisecond

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry.
type Message struct {
	ID     string    `json:"id"`
	Role   Role      `json:"role"`
	Text   string    `json:"text"`
	Intent Intent    `json:"intent,omitempty"`
	At     time.Time `json:"at"`
}

// Conversation is a transcript of user messages and assistant replies.
//
// Replies are computed when the user message arrives but only become
// visible once the reply delay has passed. The delay is cosmetic: it never
// changes which reply is produced, and replies surface in submission order.
type Conversation struct {
	mu      sync.Mutex
	delay   time.Duration
	now     func() time.Time
	shown   []Message
	pending []Message
}

// NewConversation starts a transcript with the welcome message.
func NewConversation(delay time.Duration) *Conversation {
	return newConversation(delay, time.Now)
}

func newConversation(delay time.Duration, now func() time.Time) *Conversation {
	c := &Conversation{delay: delay, now: now}
	c.shown = append(c.shown, Message{
		ID:   uuid.NewString(),
		Role: RoleAssistant,
		Text: Welcome,
		At:   now(),
	})
	return c
}

// Send records the user's message and queues the reply. Blank input is
// ignored and reported with ok=false.
func (c *Conversation) Send(text string, issues []models.Issue) (user Message, reply Message, ok bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Message{}, Message{}, false
	}

	answer := Match(trimmed, issues)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	user = Message{ID: uuid.NewString(), Role: RoleUser, Text: trimmed, At: now}
	reply = Message{ID: uuid.NewString(), Role: RoleAssistant, Text: answer.Text, Intent: answer.Intent, At: now.Add(c.delay)}

	c.flushLocked(now)
	c.shown = append(c.shown, user)
	c.pending = append(c.pending, reply)
	c.flushLocked(now)
	return user, reply, true
}

// Messages returns the visible transcript.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.flushLocked(c.now())
	out := make([]Message, len(c.shown))
	copy(out, c.shown)
	return out
}

// flushLocked moves due replies into the visible transcript. Pending replies
// are due in the order they were queued, so a prefix is moved each time.
func (c *Conversation) flushLocked(now time.Time) {
	n := 0
	for n < len(c.pending) && !c.pending[n].At.After(now) {
		n++
	}
	if n == 0 {
		return
	}
	c.shown = append(c.shown, c.pending[:n]...)
	c.pending = append(c.pending[:0], c.pending[n:]...)
}

// Sessions keeps one conversation per user. Conversations idle for longer
// than the idle TTL are dropped; a TTL of 0 keeps them for the life of the
// process.
type Sessions struct {
	mu    sync.Mutex
	delay time.Duration
	idle  time.Duration
	now   func() time.Time
	convs map[string]*session
}

type session struct {
	conv     *Conversation
	lastUsed time.Time
}

func NewSessions(delay, idle time.Duration) *Sessions {
	return newSessions(delay, idle, time.Now)
}

func newSessions(delay, idle time.Duration, now func() time.Time) *Sessions {
	return &Sessions{delay: delay, idle: idle, now: now, convs: make(map[string]*session)}
}

// Get returns the user's conversation, starting one on first use.
func (s *Sessions) Get(userID string) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)

	sess, ok := s.convs[userID]
	if !ok {
		sess = &session{conv: newConversation(s.delay, s.now)}
		s.convs[userID] = sess
	}
	sess.lastUsed = now
	return sess.conv
}

// Reset drops the user's conversation.
func (s *Sessions) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.convs, userID)
}

// Len reports how many conversations are held.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.convs)
}

func (s *Sessions) evictLocked(now time.Time) {
	if s.idle <= 0 {
		return
	}
	for id, sess := range s.convs {
		if now.Sub(sess.lastUsed) > s.idle {
			delete(s.convs, id)
		}
	}
}
