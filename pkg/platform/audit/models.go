// Package audit captures the protocol's state transitions as structured
// events. Domain services emit events after a successful mutation; sinks fan
// them out (kafka in production, memory in tests and single-node dev).
package audit

import (
	"context"
	"time"

	"sovereign/pkg/domain"
)

// Kind names a protocol state transition.
type Kind string

const (
	EventIdentityCreated    Kind = "identity_created"
	EventAuthorityChanged   Kind = "authority_changed"
	EventScoreUpdated       Kind = "score_updated"
	EventDAOCreated         Kind = "dao_created"
	EventFounderMemberAdded Kind = "founder_member_added"
	EventCreatorNominated   Kind = "creator_nominated"
	EventVoteCast           Kind = "vote_cast"
	EventNominationResolved Kind = "nomination_resolved"
	EventMarketCreated      Kind = "market_created"
	EventPositionTaken      Kind = "position_taken"
	EventMarketSettled      Kind = "market_settled"
	EventMarketExpired      Kind = "market_expired"
	EventWinningsClaimed    Kind = "winnings_claimed"
)

// Event is emitted from domain logic after a record mutation commits. Keep it
// transport-agnostic so sinks can fan out without knowing the feature that
// produced it. Zero-valued address fields mean "not applicable".
type Event struct {
	Kind      Kind           `json:"kind"`
	Timestamp time.Time      `json:"timestamp"`
	Actor     domain.Address `json:"actor,omitzero"`
	DAO       domain.Address `json:"dao,omitzero"`
	Nomination domain.Address `json:"nomination,omitzero"`
	Market    domain.Address `json:"market,omitzero"`
	Identity  domain.Address `json:"identity,omitzero"`
	// Amount carries the monetary quantity of the transition when there is
	// one (stake, payout, burn), in smallest currency units.
	Amount uint64 `json:"amount,omitempty"`
	// Detail is a short human-readable qualifier (vote choice, outcome...).
	Detail string `json:"detail,omitempty"`
	// RequestID correlates the event with the HTTP request that caused it.
	RequestID string `json:"request_id,omitempty"`
}

// Publisher delivers events to a sink. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Emit publishes through an optional publisher, stamping the timestamp when
// unset. A nil publisher is a no-op so wiring stays optional end to end.
func Emit(ctx context.Context, p Publisher, event Event) error {
	if p == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return p.Emit(ctx, event)
}
