package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
)

type matchKey struct {
	userID        int64
	opportunityID int64
}

// MemStore keeps everything in process memory. All id counters are guarded
// by mu so concurrent inserts never share an id.
type MemStore struct {
	mu sync.RWMutex

	users         map[int64]domain.User
	opportunities map[int64]domain.Opportunity
	matches       map[int64]domain.UserMatch
	matchIndex    map[matchKey]int64

	nextUserID        int64
	nextOpportunityID int64
	nextMatchID       int64

	now func() time.Time
}

// NewMemStore returns an empty store. SeedIfEmpty loads the demo catalog.
func NewMemStore() *MemStore {
	return &MemStore{
		users:             make(map[int64]domain.User),
		opportunities:     make(map[int64]domain.Opportunity),
		matches:           make(map[int64]domain.UserMatch),
		matchIndex:        make(map[matchKey]int64),
		nextUserID:        1,
		nextOpportunityID: 1,
		nextMatchID:       1,
		now:               time.Now,
	}
}

func cloneUser(u domain.User) domain.User {
	u.Skills = append([]string{}, u.Skills...)
	u.Interests = append([]string{}, u.Interests...)
	u.Goals = append([]string{}, u.Goals...)
	return u
}

func cloneMatch(m domain.UserMatch) domain.UserMatch {
	m.Reasons = append([]string{}, m.Reasons...)
	return m
}

func (s *MemStore) GetUser(_ context.Context, id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, errUserNotFound()
	}
	return cloneUser(u), nil
}

func (s *MemStore) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return domain.User{}, errUserNotFound()
}

func (s *MemStore) CreateUser(_ context.Context, in domain.NewUser) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return domain.User{}, errEmailTaken()
		}
	}
	u := domain.User{
		ID:           s.nextUserID,
		Email:        email,
		Name:         in.Name,
		Country:      in.Country,
		Skills:       []string{},
		Interests:    []string{},
		Goals:        []string{},
		PasswordHash: in.PasswordHash,
		CreatedAt:    s.now().UTC(),
	}
	s.nextUserID++
	s.users[u.ID] = u
	return cloneUser(u), nil
}

func (s *MemStore) UpdateUser(_ context.Context, id int64, up domain.UserUpdate) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, errUserNotFound()
	}
	up.Apply(&u)
	s.users[id] = u
	return cloneUser(u), nil
}

// AllOpportunities returns the catalog in id order, which is insertion order.
func (s *MemStore) AllOpportunities(_ context.Context) ([]domain.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Opportunity, 0, len(s.opportunities))
	for _, o := range s.opportunities {
		out = append(out, o.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) OpportunityByID(_ context.Context, id int64) (domain.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.opportunities[id]
	if !ok {
		return domain.Opportunity{}, errOpportunityNotFound()
	}
	return o.Clone(), nil
}

// CreateOpportunity appends to the catalog. Any ID on the input is ignored.
func (s *MemStore) CreateOpportunity(_ context.Context, in domain.Opportunity) (domain.Opportunity, error) {
	o := in.Clone()
	o.Normalize()
	s.mu.Lock()
	o.ID = s.nextOpportunityID
	s.nextOpportunityID++
	s.opportunities[o.ID] = o
	s.mu.Unlock()
	return o.Clone(), nil
}

func (s *MemStore) UserMatches(_ context.Context, userID int64) ([]domain.UserMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.UserMatch, 0)
	for _, m := range s.matches {
		if m.UserID == userID {
			out = append(out, cloneMatch(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetUserMatch(_ context.Context, id int64) (domain.UserMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok {
		return domain.UserMatch{}, errMatchNotFound()
	}
	return cloneMatch(m), nil
}

// UpsertUserMatch records r for userID, replacing the score and reasons of an
// existing record for the same opportunity and keeping its saved flag.
func (s *MemStore) UpsertUserMatch(_ context.Context, userID int64, r domain.MatchResult) (domain.UserMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return domain.UserMatch{}, errUserNotFound()
	}
	if _, ok := s.opportunities[r.OpportunityID]; !ok {
		return domain.UserMatch{}, errOpportunityNotFound()
	}
	now := s.now().UTC()
	key := matchKey{userID: userID, opportunityID: r.OpportunityID}
	reasons := append([]string{}, r.Reasons...)

	if id, ok := s.matchIndex[key]; ok {
		m := s.matches[id]
		m.MatchPercentage = r.MatchPercentage
		m.Reasons = reasons
		m.UpdatedAt = now
		s.matches[id] = m
		return cloneMatch(m), nil
	}

	m := domain.UserMatch{
		ID:              s.nextMatchID,
		UserID:          userID,
		OpportunityID:   r.OpportunityID,
		MatchPercentage: r.MatchPercentage,
		Reasons:         reasons,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.nextMatchID++
	s.matches[m.ID] = m
	s.matchIndex[key] = m.ID
	return cloneMatch(m), nil
}

func (s *MemStore) SetMatchSaved(_ context.Context, id int64, saved bool) (domain.UserMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[id]
	if !ok {
		return domain.UserMatch{}, errMatchNotFound()
	}
	m.IsSaved = saved
	m.UpdatedAt = s.now().UTC()
	s.matches[id] = m
	return cloneMatch(m), nil
}

func (s *MemStore) DeleteUserMatch(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[id]
	if !ok {
		return errMatchNotFound()
	}
	delete(s.matches, id)
	delete(s.matchIndex, matchKey{userID: m.UserID, opportunityID: m.OpportunityID})
	return nil
}
