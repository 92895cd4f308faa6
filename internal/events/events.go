// Package events publishes domain events for other services to consume.
package events

import (
	"context"
	"strconv"
	"time"
)

const (
	TypeMatchesComputed = "matches.computed"
	TypeMatchSaved      = "match.saved"
)

// Event is one message. RoutingKey selects subscribers on the topic exchange.
type Event struct {
	Type       string
	RoutingKey string
	Payload    any
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

type MatchesComputed struct {
	UserID           int64     `json:"userId"`
	TotalMatches     int       `json:"totalMatches"`
	HighMatches      int       `json:"highMatches"`
	TopOpportunityID int64     `json:"topOpportunityId,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

func (p MatchesComputed) Event() Event {
	return Event{
		Type:       TypeMatchesComputed,
		RoutingKey: "matches." + strconv.FormatInt(p.UserID, 10),
		Payload:    p,
	}
}

type MatchSaved struct {
	UserID        int64     `json:"userId"`
	MatchID       int64     `json:"matchId"`
	OpportunityID int64     `json:"opportunityId"`
	IsSaved       bool      `json:"isSaved"`
	Timestamp     time.Time `json:"timestamp"`
}

func (p MatchSaved) Event() Event {
	return Event{
		Type:       TypeMatchSaved,
		RoutingKey: "match.saved." + strconv.FormatInt(p.UserID, 10),
		Payload:    p,
	}
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
