package preferences

import (
	"time"

	"pet-adoption-market/internal/domain/pets"
)

// PetType define la preferencia de tipo de mascota.
// @Enum both, dog, cat
type PetType string

const (
	PetTypeBoth PetType = "both"
	PetTypeDog  PetType = "dog"
	PetTypeCat  PetType = "cat"
)

func ValidPetType(t PetType) bool {
	return t == PetTypeBoth || t == PetTypeDog || t == PetTypeCat
}

// Preference guarda las preferencias declaradas de un adoptante.
// Una por usuario; se crea lazy en el primer save y después se mergea
// (campos no enviados quedan intactos, nunca se resetean).
type Preference struct {
	ID     string
	UserID string

	PetType PetType
	Ages    []pets.Age // franjas etarias deseadas; vacío = sin preferencia
	// Location es opcional; vacío = sin preferencia de municipio.
	Location string

	CreatedAt time.Time
	UpdatedAt time.Time
}
