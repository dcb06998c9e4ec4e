package applications

import "time"

// Status define el ciclo de vida de una solicitud de adopción.
// Transiciones válidas: pending -> approved -> completed, pending -> rejected.
// rejected y completed son terminales; nunca se vuelve a pending.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// ResidenceType define el tipo de vivienda declarado por el solicitante.
type ResidenceType string

const (
	ResidenceOwned  ResidenceType = "owned"
	ResidenceRented ResidenceType = "rented"
	ResidenceFamily ResidenceType = "with_family"
)

func ValidResidenceType(t ResidenceType) bool {
	switch t {
	case ResidenceOwned, ResidenceRented, ResidenceFamily:
		return true
	default:
		return false
	}
}

// EmergencyContact es el bloque de contacto de emergencia del formulario.
type EmergencyContact struct {
	Name         string
	Contact      string
	Relationship string
}

// Application representa una solicitud de adopción.
// Los campos del formulario quedan congelados al momento del submit;
// después solo muta Status/CompletedAt vía el motor de transiciones.
type Application struct {
	ID              string
	ApplicantUserID string
	PetID           string

	Address       string
	Contact       string
	Occupation    string
	Emergency     EmergencyContact
	ResidenceType ResidenceType
	CareNarrative string

	// Referencias opacas a documentos subidos (el core no las interpreta).
	ValidIDRef          string
	ProofOfIncomeRef    string
	ProofOfResidenceRef string

	Status Status

	// CompletedAt se setea exactamente una vez: no-nil <=> Status == completed.
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
