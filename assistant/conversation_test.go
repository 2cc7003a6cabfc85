package assistant

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestConversationStartsWithWelcome(t *testing.T) {
	conv := NewConversation(0)
	msgs := conv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleAssistant, msgs[0].Role)
	assert.Equal(t, Welcome, msgs[0].Text)
}

func TestConversationIgnoresBlankInput(t *testing.T) {
	conv := NewConversation(0)
	_, _, ok := conv.Send("   ", nil)
	assert.False(t, ok)
	assert.Len(t, conv.Messages(), 1)
}

func TestConversationDefersReply(t *testing.T) {
	clock := &fakeClock{t: created}
	conv := newConversation(DefaultReplyDelay, clock.now)

	user, reply, ok := conv.Send("  status  ", nil)
	require.True(t, ok)
	assert.Equal(t, "status", user.Text)
	assert.Equal(t, IntentStatus, reply.Intent)

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[1].Role)

	clock.advance(DefaultReplyDelay)
	msgs = conv.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, reply.ID, msgs[2].ID)
}

func TestConversationKeepsSubmissionOrder(t *testing.T) {
	clock := &fakeClock{t: created}
	conv := newConversation(DefaultReplyDelay, clock.now)

	_, first, _ := conv.Send("status", nil)
	clock.advance(10 * time.Millisecond)
	_, second, _ := conv.Send("asdkjasd", nil)
	clock.advance(time.Second)

	var replies []Message
	for _, m := range conv.Messages() {
		if m.Role == RoleAssistant && m.Text != Welcome {
			replies = append(replies, m)
		}
	}
	require.Len(t, replies, 2)
	assert.Equal(t, first.ID, replies[0].ID)
	assert.Equal(t, second.ID, replies[1].ID)
}

func TestConversationConcurrentSends(t *testing.T) {
	conv := NewConversation(0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv.Send("status", nil)
		}()
	}
	wg.Wait()

	assert.Len(t, conv.Messages(), 41)
}

func TestSessionsArePerUser(t *testing.T) {
	s := NewSessions(0, 0)
	a := s.Get("a")
	assert.Same(t, a, s.Get("a"))
	assert.NotSame(t, a, s.Get("b"))

	s.Reset("a")
	assert.NotSame(t, a, s.Get("a"))
}

func TestSessionsEvictIdleConversations(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	s := newSessions(0, time.Hour, clock.now)

	a := s.Get("a")
	clock.advance(40 * time.Minute)
	s.Get("b")
	clock.advance(40 * time.Minute)

	assert.Same(t, s.Get("b"), s.Get("b"))
	assert.Equal(t, 1, s.Len())
	assert.NotSame(t, a, s.Get("a"))
	assert.Equal(t, 2, s.Len())
}

func TestSessionsWithoutIdleTTLKeepConversations(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	s := newSessions(0, 0, clock.now)

	a := s.Get("a")
	clock.advance(30 * 24 * time.Hour)
	assert.Same(t, a, s.Get("a"))
}
