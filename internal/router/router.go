package router

import (
	"database/sql"
	"net/http"
	"os"
	"strings"

	mem "animint/internal/adapters/storage/memory"
	pg "animint/internal/adapters/storage/postgres"
	"animint/internal/domain/animals"
	"animint/internal/domain/certificates"
	"animint/internal/domain/ledger"
	"animint/internal/domain/stats"
	"animint/internal/domain/users"
	"animint/internal/middleware"
	"animint/internal/platform/metrics"
	"animint/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Metrics se crea una sola vez en main (promauto registra global).
	// nil en tests.
	Metrics *metrics.Metrics

	// Identidades con rol verificador para verifyAnimal.
	// Si está vacío, se toma de VERIFIER_IDS (coma-separado).
	Verifiers []string
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

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		userRepo   users.Repository
		ledgerRepo ledger.Repository
		animalRepo animals.Repository
		certRepo   certificates.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		userRepo = pg.NewUsersRepo(db)
		ledgerRepo = pg.NewLedgerRepo(db)
		animalRepo = pg.NewAnimalsRepo(db)
		certRepo = pg.NewCertificatesRepo(db)
	} else {
		ml := mem.NewLedgerRepo()
		userRepo = mem.NewUserRepo()
		ledgerRepo = ml
		animalRepo = mem.NewAnimalRepo()
		certRepo = mem.NewCertificateRepo(ml)
	}

	verifiers := opts.Verifiers
	if len(verifiers) == 0 {
		if v := strings.TrimSpace(os.Getenv("VERIFIER_IDS")); v != "" {
			verifiers = strings.Split(v, ",")
		}
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo, opts.Metrics)
	ledgerSvc := ledger.NewService(ledgerRepo, usersSvc, opts.Metrics)
	animalsSvc := animals.NewService(animalRepo, opts.Metrics, verifiers)
	certsSvc := certificates.NewService(certRepo, nil, opts.Metrics)
	statsSvc := stats.NewService(animalsSvc)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, ledgerSvc)
	ledger.RegisterRoutes(r, ledgerSvc)
	animals.RegisterRoutes(r, animalsSvc)
	certificates.RegisterRoutes(r, certsSvc)
	stats.RegisterRoutes(r, statsSvc)

	return r
}
