package recommendations

import (
	"context"
	"sort"

	"pet-adoption-market/internal/domain/applications"
	"pet-adoption-market/internal/domain/pets"
)

// Pesos de las señales de similitud entre adoptantes.
// Preferencias declaradas: máx 0.3. Historial de adopción: máx 0.7.
const (
	simPrefType     = 0.1
	simPrefAges     = 0.1
	simPrefLocation = 0.1

	simHistClassification = 0.3
	simHistAges           = 0.2
	simHistLocations      = 0.2
)

const maxPeers = 5

// PeerScore es un adoptante similar con su score agregado.
type PeerScore struct {
	UserID string
	Score  float64
}

// traits son los rasgos del historial {approved, completed} de un usuario:
// los atributos de las mascotas que adoptó o está por adoptar.
type traits struct {
	classifications map[pets.Classification]struct{}
	ages            map[pets.Age]struct{}
	locations       map[string]struct{}
}

func newTraits() traits {
	return traits{
		classifications: map[pets.Classification]struct{}{},
		ages:            map[pets.Age]struct{}{},
		locations:       map[string]struct{}{},
	}
}

// SimilarUsers rankea adoptantes parecidos a userID: top 5, score > 0.
// Candidatos: todo usuario (distinto de userID) con al menos una application
// en {approved, completed}. Se recomputa por request, sin caché: O(U x H)
// es aceptable a escala marketplace.
func (s *Service) SimilarUsers(ctx context.Context, userID string) ([]PeerScore, error) {
	history, err := s.history.ListByStatuses(ctx, []applications.Status{
		applications.StatusApproved,
		applications.StatusCompleted,
	})
	if err != nil {
		return nil, err
	}

	byUser := map[string][]applications.Application{}
	for _, a := range history {
		byUser[a.ApplicantUserID] = append(byUser[a.ApplicantUserID], a)
	}

	// Cache de mascotas por request: varias applications pueden referir
	// la misma mascota.
	petCache := map[string]*pets.Pet{}
	lookupPet := func(petID string) *pets.Pet {
		if p, ok := petCache[petID]; ok {
			return p
		}
		p, err := s.pets.GetByID(ctx, petID)
		if err != nil {
			petCache[petID] = nil
			return nil
		}
		petCache[petID] = &p
		return &p
	}

	buildTraits := func(apps []applications.Application) traits {
		t := newTraits()
		for _, a := range apps {
			p := lookupPet(a.PetID)
			if p == nil {
				continue
			}
			t.classifications[p.Classification] = struct{}{}
			t.ages[p.Age] = struct{}{}
			t.locations[p.Location] = struct{}{}
		}
		return t
	}

	mine := buildTraits(byUser[userID])

	myPref, myPrefOK := s.preferenceOf(ctx, userID)

	out := make([]PeerScore, 0, len(byUser))
	for peerID, peerApps := range byUser {
		if peerID == userID {
			continue
		}

		score := 0.0

		// Overlap de preferencias declaradas (solo si ambos tienen registro).
		if myPrefOK {
			if peerPref, ok := s.preferenceOf(ctx, peerID); ok {
				if peerPref.PetType == myPref.PetType {
					score += simPrefType
				}
				if agesIntersect(myPref.Ages, peerPref.Ages) {
					score += simPrefAges
				}
				if myPref.Location != "" && myPref.Location == peerPref.Location {
					score += simPrefLocation
				}
			}
		}

		// Overlap de historial de adopción.
		theirs := buildTraits(peerApps)
		if classificationsIntersect(mine.classifications, theirs.classifications) {
			score += simHistClassification
		}
		if ageSetsIntersect(mine.ages, theirs.ages) {
			score += simHistAges
		}
		if locationSetsIntersect(mine.locations, theirs.locations) {
			score += simHistLocations
		}

		if score > 0 {
			out = append(out, PeerScore{UserID: peerID, Score: score})
		}
	}

	// Desc por score; desempate por UserID para salida estable.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].UserID < out[j].UserID
	})

	if len(out) > maxPeers {
		out = out[:maxPeers]
	}
	return out, nil
}

func agesIntersect(a, b []pets.Age) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func classificationsIntersect(a, b map[pets.Classification]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}

func ageSetsIntersect(a, b map[pets.Age]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}

func locationSetsIntersect(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}
