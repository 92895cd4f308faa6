package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/muhammadolammi/opportunitymatch/internal/database"
	"github.com/muhammadolammi/opportunitymatch/internal/domain"
)

// PostgresStore persists through the generated queries in internal/database.
type PostgresStore struct {
	db *sql.DB
	q  *database.Queries
}

// OpenPostgres connects, verifies the connection and applies the schema.
func OpenPostgres(ctx context.Context, dbURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("error opening db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &PostgresStore{db: db, q: database.New(db)}, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func encodeList(v []string) json.RawMessage {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return b
}

func decodeList(raw json.RawMessage) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func userFromRow(r database.User) domain.User {
	return domain.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		Country:      r.Country,
		Education:    r.Education,
		CVText:       r.CvText,
		Skills:       decodeList(r.Skills),
		Interests:    decodeList(r.Interests),
		Goals:        decodeList(r.Goals),
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

func opportunityFromRow(r database.Opportunity) domain.Opportunity {
	return domain.Opportunity{
		ID:           r.ID,
		Title:        r.Title,
		Organization: r.Organization,
		Type:         r.Type,
		Location:     r.Location,
		Duration:     r.Duration,
		Salary:       r.Salary,
		Deadline:     r.Deadline,
		Status:       r.Status,
		Description:  r.Description,
		Requirements: decodeList(r.Requirements),
		Tags:         decodeList(r.Tags),
		URL:          r.Url,
		IsRemote:     r.IsRemote,
	}
}

func matchFromRow(r database.UserMatch) domain.UserMatch {
	return domain.UserMatch{
		ID:              r.ID,
		UserID:          r.UserID,
		OpportunityID:   r.OpportunityID,
		MatchPercentage: int(r.MatchPercentage),
		Reasons:         decodeList(r.Reasons),
		IsSaved:         r.IsSaved,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// pqCode returns the SQLSTATE of a lib/pq error, or "".
func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
)

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (domain.User, error) {
	row, err := s.q.GetUser(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, errUserNotFound()
	}
	if err != nil {
		return domain.User{}, domain.Persistence("failed to load user", err)
	}
	return userFromRow(row), nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := s.q.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, errUserNotFound()
	}
	if err != nil {
		return domain.User{}, domain.Persistence("failed to load user", err)
	}
	return userFromRow(row), nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, in domain.NewUser) (domain.User, error) {
	row, err := s.q.CreateUser(ctx, database.CreateUserParams{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Name:         in.Name,
		Country:      in.Country,
		PasswordHash: in.PasswordHash,
	})
	if pqCode(err) == uniqueViolation {
		return domain.User{}, errEmailTaken()
	}
	if err != nil {
		return domain.User{}, domain.Persistence("failed to create user", err)
	}
	return userFromRow(row), nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id int64, up domain.UserUpdate) (domain.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.User{}, domain.Persistence("failed to update user", err)
	}
	defer tx.Rollback()

	q := s.q.WithTx(tx)
	row, err := q.GetUser(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, errUserNotFound()
	}
	if err != nil {
		return domain.User{}, domain.Persistence("failed to update user", err)
	}
	u := userFromRow(row)
	up.Apply(&u)

	row, err = q.UpdateUser(ctx, database.UpdateUserParams{
		ID:        id,
		Name:      u.Name,
		Country:   u.Country,
		Education: u.Education,
		CvText:    u.CVText,
		Skills:    encodeList(u.Skills),
		Interests: encodeList(u.Interests),
		Goals:     encodeList(u.Goals),
	})
	if err != nil {
		return domain.User{}, domain.Persistence("failed to update user", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.User{}, domain.Persistence("failed to update user", err)
	}
	return userFromRow(row), nil
}

func (s *PostgresStore) AllOpportunities(ctx context.Context) ([]domain.Opportunity, error) {
	rows, err := s.q.ListOpportunities(ctx)
	if err != nil {
		return nil, domain.Persistence("failed to list opportunities", err)
	}
	out := make([]domain.Opportunity, 0, len(rows))
	for _, r := range rows {
		out = append(out, opportunityFromRow(r))
	}
	return out, nil
}

func (s *PostgresStore) OpportunityByID(ctx context.Context, id int64) (domain.Opportunity, error) {
	row, err := s.q.GetOpportunity(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Opportunity{}, errOpportunityNotFound()
	}
	if err != nil {
		return domain.Opportunity{}, domain.Persistence("failed to load opportunity", err)
	}
	return opportunityFromRow(row), nil
}

func (s *PostgresStore) CreateOpportunity(ctx context.Context, in domain.Opportunity) (domain.Opportunity, error) {
	o := in.Clone()
	o.Normalize()
	row, err := s.q.CreateOpportunity(ctx, database.CreateOpportunityParams{
		Title:        o.Title,
		Organization: o.Organization,
		Type:         o.Type,
		Location:     o.Location,
		Duration:     o.Duration,
		Salary:       o.Salary,
		Deadline:     o.Deadline,
		Status:       o.Status,
		Description:  o.Description,
		Requirements: encodeList(o.Requirements),
		Tags:         encodeList(o.Tags),
		Url:          o.URL,
		IsRemote:     o.IsRemote,
	})
	if err != nil {
		return domain.Opportunity{}, domain.Persistence("failed to create opportunity", err)
	}
	return opportunityFromRow(row), nil
}

func (s *PostgresStore) UserMatches(ctx context.Context, userID int64) ([]domain.UserMatch, error) {
	rows, err := s.q.GetUserMatchesByUser(ctx, userID)
	if err != nil {
		return nil, domain.Persistence("failed to list matches", err)
	}
	out := make([]domain.UserMatch, 0, len(rows))
	for _, r := range rows {
		out = append(out, matchFromRow(r))
	}
	return out, nil
}

func (s *PostgresStore) GetUserMatch(ctx context.Context, id int64) (domain.UserMatch, error) {
	row, err := s.q.GetUserMatch(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserMatch{}, errMatchNotFound()
	}
	if err != nil {
		return domain.UserMatch{}, domain.Persistence("failed to load match", err)
	}
	return matchFromRow(row), nil
}

func (s *PostgresStore) UpsertUserMatch(ctx context.Context, userID int64, r domain.MatchResult) (domain.UserMatch, error) {
	row, err := s.q.CreateOrUpdateUserMatch(ctx, database.CreateOrUpdateUserMatchParams{
		UserID:          userID,
		OpportunityID:   r.OpportunityID,
		MatchPercentage: int32(r.MatchPercentage),
		Reasons:         encodeList(r.Reasons),
	})
	if pqCode(err) == foreignKeyViolation {
		return domain.UserMatch{}, domain.NotFound("User or opportunity not found")
	}
	if err != nil {
		return domain.UserMatch{}, domain.Persistence("failed to record match", err)
	}
	return matchFromRow(row), nil
}

func (s *PostgresStore) SetMatchSaved(ctx context.Context, id int64, saved bool) (domain.UserMatch, error) {
	row, err := s.q.UpdateUserMatchSaved(ctx, database.UpdateUserMatchSavedParams{IsSaved: saved, ID: id})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserMatch{}, errMatchNotFound()
	}
	if err != nil {
		return domain.UserMatch{}, domain.Persistence("failed to update match", err)
	}
	return matchFromRow(row), nil
}

func (s *PostgresStore) DeleteUserMatch(ctx context.Context, id int64) error {
	n, err := s.q.DeleteUserMatch(ctx, id)
	if err != nil {
		return domain.Persistence("failed to delete match", err)
	}
	if n == 0 {
		return errMatchNotFound()
	}
	return nil
}
