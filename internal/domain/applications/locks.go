package applications

import "sync"

// appLocks serializa transiciones sobre la misma application.
// El check de precondición (leer status, validar, escribir) es una ventana
// de carrera si dos approve/reject/complete concurrentes tocan el mismo ID;
// el lock por ID la cierra sin bloquear applications distintas.
type appLocks struct {
	mu sync.Mutex
	m  map[string]*entryLock
}

type entryLock struct {
	mu   sync.Mutex
	refs int
}

func newAppLocks() *appLocks {
	return &appLocks{m: make(map[string]*entryLock)}
}

// lock toma el lock del ID y devuelve el unlock correspondiente.
// Las entradas se liberan cuando nadie las referencia, para que el mapa
// no crezca con el total histórico de applications.
func (l *appLocks) lock(id string) func() {
	l.mu.Lock()
	e, ok := l.m[id]
	if !ok {
		e = &entryLock{}
		l.m[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, id)
		}
		l.mu.Unlock()
	}
}
