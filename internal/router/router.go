package router

import (
	"net/http"

	mem "clinical-records/internal/adapters/storage/memory"
	pg "clinical-records/internal/adapters/storage/postgres"
	_ "clinical-records/internal/docs"
	"clinical-records/internal/domain/clinic"
	"clinical-records/internal/middleware"
	"clinical-records/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"gorm.io/gorm"
)

type Options struct {
	Logger logger.Logger // puede ser nil (tests)

	// Opcional: si viene, se usa tal cual (main lo arma para poder sembrar datos).
	Service *clinic.Service

	// Opcional: si viene y no hay Service, usa Postgres. Si no, in-memory.
	DB *gorm.DB
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	svc := opts.Service
	if svc == nil {
		svc = clinic.NewService(NewGateway(opts.DB), log)
	}
	clinic.RegisterRoutes(r, svc)

	return r
}

// NewGateway elige el almacenamiento: Postgres si hay conexión, memoria si no.
func NewGateway(db *gorm.DB) clinic.Gateway {
	if db != nil {
		return pg.NewGateway(db)
	}
	return mem.NewDB()
}
