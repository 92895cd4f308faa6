package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestMatchesComputedEvent(t *testing.T) {
	ts := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	ev := MatchesComputed{UserID: 12, TotalMatches: 6, HighMatches: 2, TopOpportunityID: 1, Timestamp: ts}.Event()
	if ev.Type != TypeMatchesComputed || ev.RoutingKey != "matches.12" {
		t.Fatalf("event = %+v", ev)
	}
	raw, err := json.Marshal(ev.Payload)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"userId", "totalMatches", "highMatches", "topOpportunityId", "timestamp"} {
		if _, ok := got[k]; !ok {
			t.Errorf("payload missing %q: %s", k, raw)
		}
	}
}

func TestMatchSavedEvent(t *testing.T) {
	ev := MatchSaved{UserID: 3, MatchID: 9, IsSaved: true}.Event()
	if ev.Type != TypeMatchSaved || ev.RoutingKey != "match.saved.3" {
		t.Errorf("event = %+v", ev)
	}
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	if err := p.Publish(context.Background(), Event{Type: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}
