package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-market/internal/domain/ratings"
)

type RatingsRepo struct {
	db *sql.DB
}

func NewRatingsRepo(db *sql.DB) *RatingsRepo {
	return &RatingsRepo{db: db}
}

func (r *RatingsRepo) Create(ctx context.Context, rt ratings.Rating) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ratings (
			id, application_id, adopter_user_id, owner_user_id,
			feedback, stars, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		rt.ID,
		rt.ApplicationID,
		rt.AdopterUserID,
		rt.OwnerUserID,
		rt.Feedback,
		rt.Stars,
		rt.CreatedAt,
	)
	return err
}

func (r *RatingsRepo) Exists(ctx context.Context, applicationID, adopterUserID string) (bool, error) {
	applicationID = strings.TrimSpace(applicationID)
	adopterUserID = strings.TrimSpace(adopterUserID)
	if applicationID == "" || adopterUserID == "" {
		return false, nil
	}

	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(1)
		FROM ratings
		WHERE application_id = $1 AND adopter_user_id = $2
	`, applicationID, adopterUserID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RatingsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]ratings.Rating, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, application_id, adopter_user_id, owner_user_id,
			feedback, stars, created_at
		FROM ratings
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ratings.Rating, 0)
	for rows.Next() {
		var rt ratings.Rating
		if err := rows.Scan(
			&rt.ID,
			&rt.ApplicationID,
			&rt.AdopterUserID,
			&rt.OwnerUserID,
			&rt.Feedback,
			&rt.Stars,
			&rt.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}

	return out, rows.Err()
}
