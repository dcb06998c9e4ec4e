package pets

import "context"

// Info es el subconjunto de Pet que consumen otros módulos (applications).
// Se expone así para evitar ciclos de imports entre módulos.
type Info struct {
	ID          string
	OwnerUserID string
	Name        string
}

// InfoOf expone datos mínimos de la mascota para el motor de adopciones.
func (s *Service) InfoOf(ctx context.Context, petID string) (Info, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Info{}, err
	}
	return Info{ID: p.ID, OwnerUserID: p.OwnerUserID, Name: p.Name}, nil
}

// OwnerOf expone el ownerUserID de una mascota.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

// MarkAdopted fija status=adopted. Re-marcar una mascota ya adoptada
// es idempotente (complete re-asserta el status que approve ya dejó).
func (s *Service) MarkAdopted(ctx context.Context, petID string) error {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return err
	}
	if p.Status == StatusAdopted {
		return nil
	}
	return s.repo.SetStatus(ctx, petID, StatusAdopted, s.now())
}
