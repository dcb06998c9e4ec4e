package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-adoption-market/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner_user_id,
			name, classification, breed, age, gender, location,
			status, description, image_ref,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		string(p.Classification),
		p.Breed,
		string(p.Age),
		string(p.Gender),
		p.Location,
		string(p.Status),
		p.Description,
		p.ImageRef,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			name, classification, breed, age, gender, location,
			status, description, image_ref,
			created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	return scanPet(row)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id,
			name, classification, breed, age, gender, location,
			status, description, image_ref,
			created_at, updated_at
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPets(rows)
}

func (r *PetsRepo) ListAvailable(ctx context.Context, f pets.ListFilter) ([]pets.Pet, error) {
	// Filtros opcionales: '' matchea todo.
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id,
			name, classification, breed, age, gender, location,
			status, description, image_ref,
			created_at, updated_at
		FROM pets
		WHERE status = 'available'
		  AND ($1 = '' OR classification = $1)
		  AND ($2 = '' OR location = $2)
		ORDER BY created_at ASC
	`, string(f.Classification), f.Location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPets(rows)
}

func (r *PetsRepo) SetStatus(ctx context.Context, id string, status pets.Status, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, id, string(status), updatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var classification, age, gender, status string

	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&classification,
		&p.Breed,
		&age,
		&gender,
		&p.Location,
		&status,
		&p.Description,
		&p.ImageRef,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}

	p.Classification = pets.Classification(classification)
	p.Age = pets.Age(age)
	p.Gender = pets.Gender(gender)
	p.Status = pets.Status(status)
	return p, nil
}

func scanPets(rows *sql.Rows) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
