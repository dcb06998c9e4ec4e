package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	mem "pet-adoption-market/internal/adapters/storage/memory"
	pg "pet-adoption-market/internal/adapters/storage/postgres"
	"pet-adoption-market/internal/domain/applications"
	"pet-adoption-market/internal/domain/notifications"
	"pet-adoption-market/internal/domain/pets"
	"pet-adoption-market/internal/domain/preferences"
	"pet-adoption-market/internal/domain/ratings"
	"pet-adoption-market/internal/domain/recommendations"
	"pet-adoption-market/internal/middleware"
	"pet-adoption-market/internal/platform/logger"
	"pet-adoption-market/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene DB (o DSN), usa Postgres. Si no, in-memory.
	DB  *sql.DB
	DSN string

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	var (
		petRepo   pets.Repository
		appRepo   applications.Repository
		rateRepo  ratings.Repository
		notifRepo notifications.Repository
		prefRepo  preferences.Repository
	)

	// Si no te pasan DB explícita, intenta por DSN/env (para dev/handoff)
	db := opts.DB
	if db == nil {
		dsn := opts.DSN
		if dsn == "" {
			dsn = os.Getenv("DB_DSN")
		}
		if dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres open failed, falling back to in-memory", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		appRepo = pg.NewApplicationsRepo(db)
		rateRepo = pg.NewRatingsRepo(db)
		notifRepo = pg.NewNotificationsRepo(db)
		prefRepo = pg.NewPreferencesRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		appRepo = mem.NewApplicationsRepo()
		rateRepo = mem.NewRatingsRepo()
		notifRepo = mem.NewNotificationsRepo()
		prefRepo = mem.NewPreferencesRepo()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	notifSvc := notifications.NewService(notifRepo)
	appsSvc := applications.NewService(appRepo, petCatalog{petsSvc}, notifSvc, log)
	ratingsSvc := ratings.NewService(rateRepo, appsSvc, notifSvc, log)
	prefsSvc := preferences.NewService(prefRepo)
	recsSvc := recommendations.NewService(petsSvc, prefsSvc, appsSvc, log)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	applications.RegisterRoutes(r, appsSvc)
	ratings.RegisterRoutes(r, ratingsSvc, appsSvc)
	preferences.RegisterRoutes(r, prefsSvc)
	recommendations.RegisterRoutes(r, recsSvc)
	notifications.RegisterRoutes(r, notifSvc)

	return r
}

// petCatalog adapta pets.Service a lo que applications espera.
type petCatalog struct {
	svc *pets.Service
}

func (c petCatalog) InfoOf(ctx context.Context, petID string) (applications.PetInfo, error) {
	info, err := c.svc.InfoOf(ctx, petID)
	if err != nil {
		return applications.PetInfo{}, err
	}
	return applications.PetInfo{
		ID:          info.ID,
		OwnerUserID: info.OwnerUserID,
		Name:        info.Name,
	}, nil
}

func (c petCatalog) MarkAdopted(ctx context.Context, petID string) error {
	return c.svc.MarkAdopted(ctx, petID)
}
