package notify

import (
	"sync"
	"time"

	"github.com/Varun5711/autocare/internal/logger"
)

type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

// Notifier shows short-lived messages to the user.
type Notifier interface {
	Success(text string)
	Error(text string)
}

type Notice struct {
	ID        uint64
	Kind      Kind
	Text      string
	ExpiresAt time.Time
}

// Board holds notices until their TTL passes. Newest notices come first, the
// same order the page inserted them at the top.
type Board struct {
	mu      sync.Mutex
	ttl     time.Duration
	notices []Notice
	nextID  uint64
	now     func() time.Time
	log     *logger.Logger
}

func NewBoard(ttl time.Duration, log *logger.Logger) *Board {
	if log == nil {
		log = logger.Discard()
	}
	return &Board{
		ttl: ttl,
		now: time.Now,
		log: log,
	}
}

func (b *Board) Success(text string) {
	b.log.Info("%s", text)
	b.add(KindSuccess, text)
}

func (b *Board) Error(text string) {
	b.log.Warn("%s", text)
	b.add(KindError, text)
}

func (b *Board) add(kind Kind, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	n := Notice{
		ID:        b.nextID,
		Kind:      kind,
		Text:      text,
		ExpiresAt: b.now().Add(b.ttl),
	}
	b.notices = append([]Notice{n}, b.notices...)
}

// Active drops expired notices and returns the rest, newest first.
func (b *Board) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	kept := b.notices[:0]
	for _, n := range b.notices {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	b.notices = kept

	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}
