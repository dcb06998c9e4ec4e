package recommendations

import (
	"pet-adoption-market/internal/domain/pets"
	"pet-adoption-market/internal/domain/preferences"
)

// Pesos del score de contenido. No suman 1: es una propiedad deliberada
// del sistema original y se conserva tal cual (máximo alcanzable 1.0,
// aceptado as-is).
const (
	typeWeight     = 0.2
	ageWeight      = 0.4
	locationWeight = 0.4

	// Penalización multiplicativa por mismatch de edad o municipio.
	// Las penalizaciones componen: el orden de aplicación importa.
	mismatchPenalty = 0.5
)

// scoreContent puntúa una mascota contra las preferencias declaradas del
// usuario. Rango [0, 1.0]. Regla determinística y explicable, no un modelo:
//
//  1. sin preferencias => 0
//  2. tipo: "both" o match exacto suma typeWeight; mismatch de tipo
//     descalifica en seco (retorna 0, sin mirar edad ni municipio)
//  3. edad: con set no vacío, match suma ageWeight, mismatch multiplica x0.5
//  4. municipio: con preferencia y pet localizado, match suma locationWeight,
//     mismatch multiplica x0.5
func scoreContent(p pets.Pet, pref *preferences.Preference) float64 {
	if pref == nil {
		return 0
	}

	score := 0.0

	switch {
	case pref.PetType == preferences.PetTypeBoth:
		score += typeWeight
	case string(pref.PetType) == string(p.Classification):
		score += typeWeight
	default:
		return 0
	}

	if len(pref.Ages) > 0 {
		if containsAge(pref.Ages, p.Age) {
			score += ageWeight
		} else {
			score *= mismatchPenalty
		}
	}

	if pref.Location != "" && p.Location != "" {
		if pref.Location == p.Location {
			score += locationWeight
		} else {
			score *= mismatchPenalty
		}
	}

	return score
}

func containsAge(ages []pets.Age, a pets.Age) bool {
	for _, x := range ages {
		if x == a {
			return true
		}
	}
	return false
}
