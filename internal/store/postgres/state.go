package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"skillswap/internal/domain"
	"skillswap/internal/store"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// StateLoader reads the initial store contents from PostgreSQL. The server
// only reads; every later change lives in memory.
type StateLoader struct {
	db querier
}

func NewStateLoader(pool *pgxpool.Pool) *StateLoader {
	return &StateLoader{db: pool}
}

const (
	skillKindOffered = "offered"
	skillKindWanted  = "wanted"
)

type skillRow struct {
	UserID string
	Kind   string
	Skill  domain.Skill
}

type requestRow struct {
	Request          domain.SwapRequest
	OfferedSkillID   string
	RequestedSkillID string
}

// Load returns the state described by the database, validated with
// store.Build.
func (l *StateLoader) Load(ctx context.Context) (store.State, error) {
	users, err := l.users(ctx)
	if err != nil {
		return store.State{}, err
	}
	skills, err := l.skills(ctx)
	if err != nil {
		return store.State{}, err
	}
	requests, err := l.requests(ctx)
	if err != nil {
		return store.State{}, err
	}
	ratings, err := l.ratings(ctx)
	if err != nil {
		return store.State{}, err
	}
	return assemble(users, skills, requests, ratings)
}

func (l *StateLoader) users(ctx context.Context) ([]domain.User, error) {
	const q = `
		SELECT id, name, email, location, bio, profile_photo, availability, is_public,
		       rating, total_ratings, joined_at, is_admin, learning_style, timezone,
		       languages, verification_status
		FROM users
		ORDER BY joined_at, id
	`

	rows, err := l.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var (
			u                             domain.User
			email, location, bio, photo   pgtype.Text
			style, timezone, verification pgtype.Text
			availability, languages       pgtype.FlatArray[string]
			rating                        pgtype.Float8
			totalRatings                  pgtype.Int4
		)
		if err := rows.Scan(
			&u.ID, &u.Name, &email, &location, &bio, &photo, &availability, &u.IsPublic,
			&rating, &totalRatings, &u.JoinedAt, &u.IsAdmin, &style, &timezone,
			&languages, &verification,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Email = textOrEmpty(email)
		u.Location = textOrEmpty(location)
		u.Bio = textOrEmpty(bio)
		u.ProfilePhoto = textOrEmpty(photo)
		u.Availability = textArrayOrEmpty(availability)
		u.Rating = float8OrZero(rating)
		u.TotalRatings = int(totalRatings.Int32)
		u.JoinedAt = u.JoinedAt.UTC()
		u.PreferredLearningStyle = domain.LearningStyle(textOrEmpty(style))
		u.Timezone = textOrEmpty(timezone)
		u.Languages = textArrayOrEmpty(languages)
		u.VerificationStatus = domain.VerificationStatus(textOrEmpty(verification))
		u.SkillsOffered = []domain.Skill{}
		u.SkillsWanted = []domain.Skill{}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (l *StateLoader) skills(ctx context.Context) ([]skillRow, error) {
	const q = `
		SELECT user_id, kind, skill_id, name, category, level, description
		FROM user_skills
		ORDER BY user_id, kind, position
	`

	rows, err := l.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list user skills: %w", err)
	}
	defer rows.Close()

	var out []skillRow
	for rows.Next() {
		var (
			r           skillRow
			category    string
			level       string
			description pgtype.Text
		)
		if err := rows.Scan(&r.UserID, &r.Kind, &r.Skill.ID, &r.Skill.Name, &category, &level, &description); err != nil {
			return nil, fmt.Errorf("scan user skill: %w", err)
		}
		r.Skill.Category = domain.Category(category)
		r.Skill.Level = domain.Level(level)
		r.Skill.Description = textOrEmpty(description)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list user skills: %w", err)
	}
	return out, nil
}

func (l *StateLoader) requests(ctx context.Context) ([]requestRow, error) {
	const q = `
		SELECT id, from_user_id, to_user_id, offered_skill_id, requested_skill_id,
		       status, message, created_at, completed_at, completed_by
		FROM swap_requests
		ORDER BY created_at, id
	`

	rows, err := l.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list swap requests: %w", err)
	}
	defer rows.Close()

	var out []requestRow
	for rows.Next() {
		var (
			r           requestRow
			status      string
			message     pgtype.Text
			completedAt pgtype.Timestamptz
			completedBy pgtype.Text
		)
		if err := rows.Scan(
			&r.Request.ID, &r.Request.FromUserID, &r.Request.ToUserID, &r.OfferedSkillID, &r.RequestedSkillID,
			&status, &message, &r.Request.CreatedAt, &completedAt, &completedBy,
		); err != nil {
			return nil, fmt.Errorf("scan swap request: %w", err)
		}
		r.Request.Status = domain.SwapStatus(status)
		r.Request.Message = textOrEmpty(message)
		r.Request.CreatedAt = r.Request.CreatedAt.UTC()
		r.Request.CompletedAt = timestamptzPtr(completedAt)
		r.Request.CompletedBy = textOrEmpty(completedBy)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list swap requests: %w", err)
	}
	return out, nil
}

func (l *StateLoader) ratings(ctx context.Context) ([]domain.Rating, error) {
	const q = `
		SELECT id, swap_request_id, from_user_id, to_user_id, value, feedback, created_at
		FROM ratings
		ORDER BY created_at, id
	`

	rows, err := l.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var out []domain.Rating
	for rows.Next() {
		var (
			r        domain.Rating
			value    int32
			feedback pgtype.Text
		)
		if err := rows.Scan(&r.ID, &r.SwapRequestID, &r.FromUserID, &r.ToUserID, &value, &feedback, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		r.Value = int(value)
		r.Feedback = textOrEmpty(feedback)
		r.CreatedAt = r.CreatedAt.UTC()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return out, nil
}

// assemble attaches skills to their users and resolves each request's skill
// references. The offered skill must be one the sender offers and the
// requested skill one the receiver offers.
func assemble(users []domain.User, skills []skillRow, requests []requestRow, ratings []domain.Rating) (store.State, error) {
	byID := make(map[string]int, len(users))
	for i, u := range users {
		byID[u.ID] = i
	}

	for _, sk := range skills {
		i, ok := byID[sk.UserID]
		if !ok {
			return store.State{}, fmt.Errorf("skill %q: %w", sk.Skill.ID, domain.NotFound("user", sk.UserID))
		}
		switch sk.Kind {
		case skillKindOffered:
			users[i].SkillsOffered = append(users[i].SkillsOffered, sk.Skill)
		case skillKindWanted:
			users[i].SkillsWanted = append(users[i].SkillsWanted, sk.Skill)
		default:
			return store.State{}, fmt.Errorf("skill %q: unknown kind %q", sk.Skill.ID, sk.Kind)
		}
	}

	reqs := make([]domain.SwapRequest, 0, len(requests))
	for _, r := range requests {
		req := r.Request
		offered, err := offeredSkill(users, byID, req.FromUserID, r.OfferedSkillID)
		if err != nil {
			return store.State{}, fmt.Errorf("swap request %q: %w", req.ID, err)
		}
		requested, err := offeredSkill(users, byID, req.ToUserID, r.RequestedSkillID)
		if err != nil {
			return store.State{}, fmt.Errorf("swap request %q: %w", req.ID, err)
		}
		req.SkillOffered = offered
		req.SkillRequested = requested
		reqs = append(reqs, req)
	}

	return store.Build(users, reqs, ratings)
}

func offeredSkill(users []domain.User, byID map[string]int, userID, skillID string) (domain.Skill, error) {
	i, ok := byID[userID]
	if !ok {
		return domain.Skill{}, domain.NotFound("user", userID)
	}
	sk, ok := domain.FindSkill(users[i].SkillsOffered, skillID)
	if !ok {
		return domain.Skill{}, domain.NotFound("skill", skillID)
	}
	return sk, nil
}
