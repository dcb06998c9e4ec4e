package notifications

import "time"

// Notification es un registro durable dirigido a un usuario.
// No hay push: los clientes la consultan por polling y marcan read.
type Notification struct {
	ID     string
	UserID string

	Type    Type
	Message string

	// RelatedID referencia la entidad que disparó la notificación
	// (application, rating, etc). Opaco para este módulo.
	RelatedID string

	Read bool

	CreatedAt time.Time
}
