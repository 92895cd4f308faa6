package store_test

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
	"github.com/muhammadolammi/opportunitymatch/internal/store"
)

func TestCreateOpportunity_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()

	in := domain.Opportunity{
		ID:           999,
		Title:        "Climate Research Grant",
		Organization: "Green Fund",
		Type:         domain.TypeGrant,
		Location:     "Remote",
		Salary:       "$20,000",
		Deadline:     "2026-12-01",
		Status:       domain.StatusOpen,
		Description:  "Fund research on climate adaptation.",
		Requirements: []string{"Research Experience"},
		Tags:         []string{"climate", "research"},
		URL:          "https://example.org",
		IsRemote:     true,
	}
	created, err := s.CreateOpportunity(ctx, in)
	if err != nil {
		t.Fatalf("CreateOpportunity: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("assigned id = %d, want 1", created.ID)
	}

	got, err := s.OpportunityByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("OpportunityByID: %v", err)
	}
	want := in
	want.ID = created.ID
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestCreateOpportunity_DefaultsLists(t *testing.T) {
	s := store.NewMemStore()
	o, err := s.CreateOpportunity(context.Background(), domain.Opportunity{Title: "x", Type: domain.TypeGrant})
	if err != nil {
		t.Fatal(err)
	}
	if o.Requirements == nil || o.Tags == nil {
		t.Errorf("requirements/tags must default to empty lists, got %v / %v", o.Requirements, o.Tags)
	}
	if o.Status != domain.StatusOpen {
		t.Errorf("status = %q, want %q", o.Status, domain.StatusOpen)
	}
	got, err := s.OpportunityByID(context.Background(), o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, o) {
		t.Errorf("stored = %+v, want the returned listing %+v", got, o)
	}
}

func TestOpportunityByID_NotFound(t *testing.T) {
	s := store.NewMemStore()
	_, err := s.OpportunityByID(context.Background(), 42)
	if !domain.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestCreateOpportunity_ConcurrentIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()

	const n = 64
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, err := s.CreateOpportunity(ctx, domain.Opportunity{Title: "t", Type: domain.TypeInternship})
			if err != nil {
				t.Error(err)
				return
			}
			ids <- o.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("got %d ids, want %d", len(seen), n)
	}
}

func TestAllOpportunities_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	if err := store.SeedIfEmpty(ctx, s); err != nil {
		t.Fatal(err)
	}
	all, err := s.AllOpportunities(ctx)
	if err != nil {
		t.Fatal(err)
	}
	demo := store.DemoOpportunities()
	if len(all) != len(demo) {
		t.Fatalf("len = %d, want %d", len(all), len(demo))
	}
	for i, o := range all {
		if o.ID != int64(i+1) || o.Title != demo[i].Title {
			t.Errorf("position %d = (%d, %q), want (%d, %q)", i, o.ID, o.Title, i+1, demo[i].Title)
		}
	}

	// A second seed must not duplicate the catalog.
	if err := store.SeedIfEmpty(ctx, s); err != nil {
		t.Fatal(err)
	}
	again, _ := s.AllOpportunities(ctx)
	if len(again) != len(demo) {
		t.Errorf("seed ran twice: len = %d", len(again))
	}
}

func TestAllOpportunities_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	created, _ := s.CreateOpportunity(ctx, domain.Opportunity{Title: "t", Tags: []string{"a"}})

	all, _ := s.AllOpportunities(ctx)
	all[0].Tags[0] = "mutated"

	got, _ := s.OpportunityByID(ctx, created.ID)
	if got.Tags[0] != "a" {
		t.Errorf("store data was mutated through a returned slice: %v", got.Tags)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	if _, err := s.CreateUser(ctx, domain.NewUser{Email: "Ada@Example.com", Name: "Ada"}); err != nil {
		t.Fatal(err)
	}
	_, err := s.CreateUser(ctx, domain.NewUser{Email: "ada@example.com ", Name: "Other"})
	if domain.KindOf(err) != domain.KindConflict {
		t.Errorf("expected conflict, got %v", err)
	}

	u, err := s.GetUserByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if u.Skills == nil || u.Interests == nil || u.Goals == nil {
		t.Error("profile lists must never be nil")
	}
}

func TestUpdateUser_Partial(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	u, _ := s.CreateUser(ctx, domain.NewUser{Email: "a@b.co", Name: "Ann", Country: "France"})

	skills := []string{"Go"}
	edu := "PhD"
	got, err := s.UpdateUser(ctx, u.ID, domain.UserUpdate{Skills: &skills, Education: &edu})
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Ann" || got.Country != "France" {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.Education != "PhD" || !reflect.DeepEqual(got.Skills, []string{"Go"}) {
		t.Errorf("update not applied: %+v", got)
	}

	if _, err := s.UpdateUser(ctx, 77, domain.UserUpdate{}); !domain.IsNotFound(err) {
		t.Errorf("expected not-found for unknown user, got %v", err)
	}
}

func TestUpsertUserMatch_KeepsSavedFlag(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	u, _ := s.CreateUser(ctx, domain.NewUser{Email: "a@b.co", Name: "Ann"})
	o, _ := s.CreateOpportunity(ctx, domain.Opportunity{Title: "t"})

	first, err := s.UpsertUserMatch(ctx, u.ID, domain.MatchResult{OpportunityID: o.ID, MatchPercentage: 40, Reasons: []string{"a"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetMatchSaved(ctx, first.ID, true); err != nil {
		t.Fatal(err)
	}

	second, err := s.UpsertUserMatch(ctx, u.ID, domain.MatchResult{OpportunityID: o.ID, MatchPercentage: 90, Reasons: []string{"b"}})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created a new record: %d != %d", second.ID, first.ID)
	}
	if !second.IsSaved || second.MatchPercentage != 90 || second.Reasons[0] != "b" {
		t.Errorf("unexpected upserted record: %+v", second)
	}

	list, _ := s.UserMatches(ctx, u.ID)
	if len(list) != 1 {
		t.Errorf("UserMatches len = %d, want 1", len(list))
	}
}

func TestUpsertUserMatch_UnknownReferences(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	u, _ := s.CreateUser(ctx, domain.NewUser{Email: "a@b.co", Name: "Ann"})

	if _, err := s.UpsertUserMatch(ctx, u.ID, domain.MatchResult{OpportunityID: 5}); !domain.IsNotFound(err) {
		t.Errorf("unknown opportunity: got %v", err)
	}
	if _, err := s.UpsertUserMatch(ctx, 99, domain.MatchResult{OpportunityID: 1}); !domain.IsNotFound(err) {
		t.Errorf("unknown user: got %v", err)
	}
}

func TestDeleteUserMatch(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	u, _ := s.CreateUser(ctx, domain.NewUser{Email: "a@b.co", Name: "Ann"})
	o, _ := s.CreateOpportunity(ctx, domain.Opportunity{Title: "t"})
	m, _ := s.UpsertUserMatch(ctx, u.ID, domain.MatchResult{OpportunityID: o.ID, MatchPercentage: 10})

	if err := s.DeleteUserMatch(ctx, m.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteUserMatch(ctx, m.ID); !domain.IsNotFound(err) {
		t.Errorf("second delete: got %v", err)
	}

	// After deletion the pair can be recorded again under a fresh id.
	again, err := s.UpsertUserMatch(ctx, u.ID, domain.MatchResult{OpportunityID: o.ID, MatchPercentage: 20})
	if err != nil {
		t.Fatal(err)
	}
	if again.ID == m.ID {
		t.Errorf("match id %d reused", again.ID)
	}
}
