package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-market/internal/domain/pets"
	"pet-adoption-market/internal/domain/preferences"
)

type PreferencesRepo struct {
	db *sql.DB
}

func NewPreferencesRepo(db *sql.DB) *PreferencesRepo {
	return &PreferencesRepo{db: db}
}

func (r *PreferencesRepo) Create(ctx context.Context, p preferences.Preference) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adopter_preferences (
			id, user_id, pet_type, ages, location, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		p.ID,
		p.UserID,
		string(p.PetType),
		agesToTextArray(p.Ages),
		p.Location,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PreferencesRepo) Update(ctx context.Context, p preferences.Preference) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adopter_preferences SET
			pet_type = $2,
			ages = $3,
			location = $4,
			updated_at = $5
		WHERE id = $1
	`,
		p.ID,
		string(p.PetType),
		agesToTextArray(p.Ages),
		p.Location,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PreferencesRepo) GetByUser(ctx context.Context, userID string) (preferences.Preference, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return preferences.Preference{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, pet_type, ages, location, created_at, updated_at
		FROM adopter_preferences
		WHERE user_id = $1
	`, userID)

	var p preferences.Preference
	var petType string
	var ages []string

	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&petType,
		&ages,
		&p.Location,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return preferences.Preference{}, ErrNotFound
		}
		return preferences.Preference{}, err
	}

	p.PetType = preferences.PetType(petType)
	p.Ages = textArrayToAges(ages)
	return p, nil
}

// helpers
func agesToTextArray(in []pets.Age) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, a := range in {
		out = append(out, string(a))
	}
	return out
}

func textArrayToAges(in []string) []pets.Age {
	if len(in) == 0 {
		return nil
	}
	out := make([]pets.Age, 0, len(in))
	for _, a := range in {
		out = append(out, pets.Age(a))
	}
	return out
}
