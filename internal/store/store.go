// Package store persists users, the opportunity catalog and recorded matches.
package store

import (
	"context"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
)

// Store is implemented by MemStore and PostgresStore. Missing records are
// reported as domain not-found errors.
type Store interface {
	GetUser(ctx context.Context, id int64) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	CreateUser(ctx context.Context, in domain.NewUser) (domain.User, error)
	UpdateUser(ctx context.Context, id int64, up domain.UserUpdate) (domain.User, error)

	AllOpportunities(ctx context.Context) ([]domain.Opportunity, error)
	OpportunityByID(ctx context.Context, id int64) (domain.Opportunity, error)
	CreateOpportunity(ctx context.Context, in domain.Opportunity) (domain.Opportunity, error)

	UserMatches(ctx context.Context, userID int64) ([]domain.UserMatch, error)
	GetUserMatch(ctx context.Context, id int64) (domain.UserMatch, error)
	UpsertUserMatch(ctx context.Context, userID int64, r domain.MatchResult) (domain.UserMatch, error)
	SetMatchSaved(ctx context.Context, id int64, saved bool) (domain.UserMatch, error)
	DeleteUserMatch(ctx context.Context, id int64) error
}

var (
	_ Store = (*MemStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

func errUserNotFound() error        { return domain.NotFound("User not found") }
func errOpportunityNotFound() error { return domain.NotFound("Opportunity not found") }
func errMatchNotFound() error       { return domain.NotFound("Match not found") }
func errEmailTaken() error          { return domain.Conflict("An account with this email already exists") }
