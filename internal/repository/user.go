package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/saturnino-fabrica-de-software/quizzo/internal/domain"
)

type UserRepository struct {
	pool PgxPool
}

func NewUserRepository(pool PgxPool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, google_id, name, profile_picture, is_admin, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.GoogleID,
		user.Name,
		user.ProfilePicture,
		user.IsAdmin,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	query := `
		SELECT id, email, COALESCE(username, ''), COALESCE(password_hash, ''), COALESCE(google_id, ''),
		       COALESCE(name, ''), COALESCE(profile_picture, ''), is_admin, face_descriptor, created_at, updated_at
		FROM users
	` + where

	var user domain.User
	var descriptor *pgvector.Vector

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.GoogleID,
		&user.Name,
		&user.ProfilePicture,
		&user.IsAdmin,
		&descriptor,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if descriptor != nil && descriptor.Slice() != nil {
		user.FaceDescriptor = domain.Descriptor(descriptor.Slice())
	}

	return &user, nil
}

// UpsertGoogleUser creates or refreshes the account bound to a Google identity.
func (r *UserRepository) UpsertGoogleUser(ctx context.Context, googleID, email, name, picture string) (*domain.User, error) {
	query := `
		INSERT INTO users (id, email, google_id, name, profile_picture, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, false, NOW(), NOW())
		ON CONFLICT (google_id)
		DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name, profile_picture = EXCLUDED.profile_picture, updated_at = NOW()
		RETURNING id, email, COALESCE(name, ''), COALESCE(profile_picture, ''), is_admin, created_at, updated_at
	`

	var user domain.User
	err := r.pool.QueryRow(ctx, query, uuid.New(), email, googleID, name, picture).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.ProfilePicture,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert google user: %w", err)
	}

	user.GoogleID = googleID
	return &user, nil
}

// ListEnrolled returns every user with a registered face descriptor. Row order
// is not part of the contract; callers only rely on it for stable tie-breaks
// within a single scan.
func (r *UserRepository) ListEnrolled(ctx context.Context) ([]domain.EnrolledFace, error) {
	query := `
		SELECT id, face_descriptor
		FROM users
		WHERE face_descriptor IS NOT NULL
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list enrolled faces: %w", err)
	}
	defer rows.Close()

	var enrolled []domain.EnrolledFace
	for rows.Next() {
		var face domain.EnrolledFace
		var descriptor pgvector.Vector
		if err := rows.Scan(&face.UserID, &descriptor); err != nil {
			return nil, fmt.Errorf("scan enrolled face: %w", err)
		}
		face.Descriptor = domain.Descriptor(descriptor.Slice())
		enrolled = append(enrolled, face)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list enrolled faces: %w", err)
	}

	return enrolled, nil
}

// SetDescriptor overwrites the user's face descriptor. Re-enrollment replaces
// the previous vector; no history is kept.
func (r *UserRepository) SetDescriptor(ctx context.Context, userID uuid.UUID, descriptor domain.Descriptor) error {
	query := `
		UPDATE users
		SET face_descriptor = $2, updated_at = NOW()
		WHERE id = $1
	`

	vec := pgvector.NewVector(descriptor)
	result, err := r.pool.Exec(ctx, query, userID, vec)
	if err != nil {
		return fmt.Errorf("set descriptor: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT id, email, COALESCE(name, ''), COALESCE(profile_picture, '')
		FROM users
		WHERE id = $1
	`

	var profile domain.Profile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.Email,
		&profile.Name,
		&profile.ProfilePicture,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &profile, nil
}
