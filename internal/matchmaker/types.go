package matchmaker

import (
	"errors"
	"sync"
	"time"

	"github.com/mavikus/quizduel/internal/match"
	"github.com/mavikus/quizduel/internal/metrics"
	"github.com/mavikus/quizduel/internal/players"
	"github.com/mavikus/quizduel/internal/pubsub"
)

var (
	// ErrWaitInterrupted signals that the subscription failed while
	// waiting for an opponent. The caller should offer a retry instead
	// of hanging.
	ErrWaitInterrupted = errors.New("waiting interrupted")
	// ErrWaitTimeout signals that the optional bounded wait elapsed
	// before an opponent joined.
	ErrWaitTimeout = errors.New("timed out waiting for an opponent")
	// ErrWaitCanceled signals that the creator gave up waiting.
	ErrWaitCanceled = errors.New("waiting canceled")
)

// Matchmaker pairs two independent requesters into a shared match and
// surfaces the waiting-to-active transition to the creator.
type Matchmaker struct {
	matches match.MatchStore
	players players.PlayerStore
	pubsub  pubsub.PubSubClient
	metrics metrics.Metrics

	// waitTimeout bounds the wait for an opponent. Zero means wait
	// indefinitely, matching the behavior of the original flow.
	waitTimeout time.Duration
	joinRetries int
}

// Option configures a Matchmaker.
type Option func(*Matchmaker)

// WithWaitTimeout enables a bounded wait for an opponent. Off by default.
func WithWaitTimeout(d time.Duration) Option {
	return func(mm *Matchmaker) {
		mm.waitTimeout = d
	}
}

// WithJoinRetries sets how many lost conditional joins are retried before
// falling back to creating a new match.
func WithJoinRetries(n int) Option {
	return func(mm *Matchmaker) {
		mm.joinRetries = n
	}
}

// Result is the immediate outcome of FindOrCreate. Ticket is non-nil only
// on the create path.
type Result struct {
	Status  match.Status `json:"status"`
	MatchID string       `json:"match_id"`
	Ticket  *Ticket      `json:"-"`
}

// Ticket is the creator's pending subscription on a waiting match. The
// Active channel yields exactly one snapshot, when the match leaves the
// waiting state; it is closed without a value when the wait is canceled,
// times out, or is interrupted, in which case Err reports why.
type Ticket struct {
	MatchID string

	active      chan match.Match
	updates     <-chan match.Match
	cancelWatch func()
	quit        chan struct{}
	quitOnce    sync.Once

	mu  sync.Mutex
	err error
}

// Active returns the channel on which the activation snapshot is
// delivered exactly once.
func (t *Ticket) Active() <-chan match.Match {
	return t.active
}

// Err reports why the wait ended without an activation. It is nil until
// the Active channel is closed.
func (t *Ticket) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Cancel releases the subscription. Safe to call multiple times and
// after activation.
func (t *Ticket) Cancel() {
	t.quitOnce.Do(func() {
		close(t.quit)
	})
}

func (t *Ticket) finish(err error) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
	close(t.active)
}
