package ratings

import "time"

// Rating es la calificación del adoptante al dueño, ligada a la application
// que completó la adopción. A lo sumo una por (application, adopter).
type Rating struct {
	ID            string
	ApplicationID string

	AdopterUserID string // quien califica
	OwnerUserID   string // calificado; derivado del dueño de la mascota

	Feedback string
	Stars    int // 1..5

	CreatedAt time.Time
}
