package matchmaker

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mavikus/quizduel/internal/match"
	"github.com/mavikus/quizduel/internal/metrics"
	"github.com/mavikus/quizduel/internal/players"
	"github.com/mavikus/quizduel/internal/pubsub"
)

const defaultJoinRetries = 3

// New creates a new Matchmaker.
func New(matches match.MatchStore, playerStore players.PlayerStore, pubsubClient pubsub.PubSubClient, metricsSvc metrics.Metrics, opts ...Option) *Matchmaker {
	mm := &Matchmaker{
		matches:     matches,
		players:     playerStore,
		pubsub:      pubsubClient,
		metrics:     metricsSvc,
		joinRetries: defaultJoinRetries,
	}
	for _, opt := range opts {
		opt(mm)
	}
	return mm
}

// FindOrCreate pairs the requester with a waiting opponent, or parks a new
// waiting match until one shows up.
//
// Join path: any one waiting match is claimed with a conditional write,
// the requester's membership is recorded immediately and the result is
// active. A claim lost to a concurrent requester is retried a bounded
// number of times before falling back to creating a match.
//
// Create path: the result is waiting, plus a Ticket whose subscription
// resolves exactly once when an opponent joins. The creator's membership
// is recorded only on that activation. The call itself never blocks past
// the initial store writes.
func (mm *Matchmaker) FindOrCreate(requester match.PlayerState) (Result, error) {
	start := time.Now()
	defer func() {
		mm.metrics.ObserveMatchmakingDuration(time.Since(start).Seconds())
	}()

	requester.Score = 0

	if err := mm.players.Upsert(players.PlayerInfo{
		ID:          requester.UserID,
		DisplayName: requester.DisplayName,
		AvatarRef:   requester.AvatarRef,
	}); err != nil {
		log.Warn("Failed to upsert requester identity", "user", requester.UserID, "error", err)
	}
	// Advisory marker only; a failure must not abort matchmaking.
	if err := mm.players.TouchLastActive(requester.UserID); err != nil {
		log.Warn("Failed to touch last active", "user", requester.UserID, "error", err)
	}

	for attempt := 0; attempt < mm.joinRetries; attempt++ {
		candidate, err := mm.matches.FindWaiting(requester.UserID)
		if errors.Is(err, match.ErrNoWaitingMatch) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("candidate search failed: %w", err)
		}

		m, err := mm.matches.Join(candidate.ID, requester)
		if err == nil {
			if err := mm.players.RecordMembership(requester.UserID, m.ID); err != nil {
				log.Error("Failed to record joiner membership", "user", requester.UserID, "match", m.ID, "error", err)
			}
			mm.metrics.IncMatchesJoined()
			if err := mm.pubsub.SendMessage(pubsub.EventMatchActivated, m); err != nil {
				log.Error("Failed to publish activation event", "match", m.ID, "error", err)
			}
			log.Info("Joined waiting match", "match", m.ID, "user", requester.UserID)
			return Result{Status: match.StatusActive, MatchID: m.ID}, nil
		}
		if errors.Is(err, match.ErrConflictingJoin) || errors.Is(err, match.ErrNotFound) {
			// Another requester claimed (or tore down) the candidate
			// between our read and our write. Re-run the search.
			mm.metrics.IncJoinConflicts()
			log.Debug("Lost join race, retrying", "candidate", candidate.ID, "attempt", attempt)
			continue
		}
		return Result{}, fmt.Errorf("join failed: %w", err)
	}

	m, err := mm.matches.Create(requester)
	if err != nil {
		return Result{}, fmt.Errorf("create failed: %w", err)
	}
	mm.metrics.IncMatchesCreated()
	log.Info("Created waiting match", "match", m.ID, "user", requester.UserID)

	ticket := mm.newTicket(m.ID)
	go mm.await(ticket, requester.UserID)

	return Result{Status: match.StatusWaiting, MatchID: m.ID, Ticket: ticket}, nil
}

// newTicket opens the subscription synchronously so no join can slip
// between FindOrCreate returning and the watch being in place.
func (mm *Matchmaker) newTicket(matchID string) *Ticket {
	updates, cancelWatch := mm.matches.Watch(matchID)
	return &Ticket{
		MatchID:     matchID,
		active:      make(chan match.Match, 1),
		updates:     updates,
		cancelWatch: cancelWatch,
		quit:        make(chan struct{}),
	}
}

// await drives a ticket until activation, cancellation, timeout or
// subscription failure. The watch is released on every exit path.
func (mm *Matchmaker) await(t *Ticket, userID string) {
	defer t.cancelWatch()

	// The create write and the subscription are two steps; re-read once
	// in case the opponent joined in between.
	if m, err := mm.matches.Get(t.MatchID); err == nil && m.Status != match.StatusWaiting {
		mm.deliver(t, *m, userID)
		return
	}

	var timeout <-chan time.Time
	if mm.waitTimeout > 0 {
		timer := time.NewTimer(mm.waitTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		select {
		case m, ok := <-t.updates:
			if !ok {
				t.finish(ErrWaitInterrupted)
				return
			}
			if m.Status != match.StatusWaiting {
				mm.deliver(t, m, userID)
				return
			}
		case <-timeout:
			log.Info("Gave up waiting for an opponent", "match", t.MatchID, "user", userID)
			t.finish(ErrWaitTimeout)
			return
		case <-t.quit:
			t.finish(ErrWaitCanceled)
			return
		}
	}
}

// deliver surfaces the activation to the creator exactly once and records
// the creator's membership, mirroring what the joiner already did for
// their own side.
func (mm *Matchmaker) deliver(t *Ticket, m match.Match, userID string) {
	if err := mm.players.RecordMembership(userID, m.ID); err != nil {
		log.Error("Failed to record creator membership", "user", userID, "match", m.ID, "error", err)
	}
	mm.metrics.IncActivationsDelivered()
	log.Info("Match activated", "match", m.ID, "user", userID, "status", m.Status)
	t.active <- m
	close(t.active)
}
