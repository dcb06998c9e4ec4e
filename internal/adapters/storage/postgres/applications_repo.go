package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-adoption-market/internal/domain/applications"
)

type ApplicationsRepo struct {
	db *sql.DB
}

func NewApplicationsRepo(db *sql.DB) *ApplicationsRepo {
	return &ApplicationsRepo{db: db}
}

func (r *ApplicationsRepo) Create(ctx context.Context, a applications.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoption_applications (
			id, applicant_user_id, pet_id,
			address, contact, occupation,
			emergency_name, emergency_contact, emergency_relationship,
			residence_type, care_narrative,
			valid_id_ref, proof_of_income_ref, proof_of_residence_ref,
			status, completed_at,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`,
		a.ID,
		a.ApplicantUserID,
		a.PetID,
		a.Address,
		a.Contact,
		a.Occupation,
		a.Emergency.Name,
		a.Emergency.Contact,
		a.Emergency.Relationship,
		string(a.ResidenceType),
		a.CareNarrative,
		a.ValidIDRef,
		a.ProofOfIncomeRef,
		a.ProofOfResidenceRef,
		string(a.Status),
		toNullTime(a.CompletedAt),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

// Update solo toca lo mutable: status, completed_at, updated_at.
// Los campos del formulario quedan congelados al submit.
func (r *ApplicationsRepo) Update(ctx context.Context, a applications.Application) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoption_applications
		SET
			status = $2,
			completed_at = $3,
			updated_at = $4
		WHERE id = $1
	`,
		a.ID,
		string(a.Status),
		toNullTime(a.CompletedAt),
		a.UpdatedAt,
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

const applicationColumns = `
	id, applicant_user_id, pet_id,
	address, contact, occupation,
	emergency_name, emergency_contact, emergency_relationship,
	residence_type, care_narrative,
	valid_id_ref, proof_of_income_ref, proof_of_residence_ref,
	status, completed_at,
	created_at, updated_at
`

func (r *ApplicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return applications.Application{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		WHERE id = $1
	`, id)

	return scanApplication(row)
}

func (r *ApplicationsRepo) ListByApplicant(ctx context.Context, applicantUserID string) ([]applications.Application, error) {
	applicantUserID = strings.TrimSpace(applicantUserID)
	if applicantUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		WHERE applicant_user_id = $1
		ORDER BY created_at ASC
	`, applicantUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanApplications(rows)
}

func (r *ApplicationsRepo) ListByPet(ctx context.Context, petID string) ([]applications.Application, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		WHERE pet_id = $1
		ORDER BY created_at ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanApplications(rows)
}

func (r *ApplicationsRepo) ListByStatuses(ctx context.Context, statuses []applications.Status) ([]applications.Application, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	list := make([]string, 0, len(statuses))
	for _, s := range statuses {
		list = append(list, string(s))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		WHERE status = ANY($1)
		ORDER BY created_at ASC
	`, list)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanApplications(rows)
}

func scanApplication(row rowScanner) (applications.Application, error) {
	var a applications.Application
	var residence, status string
	var completedAt sql.NullTime

	if err := row.Scan(
		&a.ID,
		&a.ApplicantUserID,
		&a.PetID,
		&a.Address,
		&a.Contact,
		&a.Occupation,
		&a.Emergency.Name,
		&a.Emergency.Contact,
		&a.Emergency.Relationship,
		&residence,
		&a.CareNarrative,
		&a.ValidIDRef,
		&a.ProofOfIncomeRef,
		&a.ProofOfResidenceRef,
		&status,
		&completedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return applications.Application{}, ErrNotFound
		}
		return applications.Application{}, err
	}

	a.ResidenceType = applications.ResidenceType(residence)
	a.Status = applications.Status(status)
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}

	return a, nil
}

func scanApplications(rows *sql.Rows) ([]applications.Application, error) {
	out := make([]applications.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
