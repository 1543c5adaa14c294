package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/busla/summerhouse-sub003/internal/model"
)

const profileColumns = `subject_id, email, display_name, phone, created_at, updated_at`

// ProfileRepository stores profiles in postgres.
type ProfileRepository struct {
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

// CreateIfAbsent inserts profile unless its subject already has one.
func (r *ProfileRepository) CreateIfAbsent(ctx context.Context, profile model.Profile) (model.Profile, bool, error) {
	query := `INSERT INTO profiles (subject_id, email, display_name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (subject_id) DO NOTHING
		RETURNING ` + profileColumns

	row := r.db.QueryRow(ctx, query,
		profile.SubjectID, profile.Email, profile.DisplayName, profile.Phone)

	created, err := scanProfile(row)
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.Profile{}, false, fmt.Errorf("failed to insert profile: %w", err)
	}

	existing, err := r.GetBySubjectID(ctx, profile.SubjectID)
	if err != nil {
		return model.Profile{}, false, err
	}

	return existing, false, nil
}

func (r *ProfileRepository) GetBySubjectID(ctx context.Context, subjectID string) (model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE subject_id = $1`

	profile, err := scanProfile(r.db.QueryRow(ctx, query, subjectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// Update sets the non-nil fields of update.
func (r *ProfileRepository) Update(ctx context.Context, subjectID string, update model.ProfileUpdate) (model.Profile, error) {
	query := `UPDATE profiles
		SET display_name = COALESCE($2, display_name),
			phone = COALESCE($3, phone),
			updated_at = NOW()
		WHERE subject_id = $1
		RETURNING ` + profileColumns

	profile, err := scanProfile(r.db.QueryRow(ctx, query, subjectID, update.DisplayName, update.Phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}

func scanProfile(row pgx.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.SubjectID,
		&p.Email,
		&p.DisplayName,
		&p.Phone,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
