package bootstrap

import (
	"database/sql"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/woodgrain-labs/furnplan-backend/internal/api/http"
	"github.com/woodgrain-labs/furnplan-backend/internal/api/http/middleware"
	"github.com/woodgrain-labs/furnplan-backend/internal/auth"
	"github.com/woodgrain-labs/furnplan-backend/internal/catalog"
	"github.com/woodgrain-labs/furnplan-backend/internal/design/geometry"
	designhttp "github.com/woodgrain-labs/furnplan-backend/internal/design/http"
	"github.com/woodgrain-labs/furnplan-backend/internal/design/planner"
	"github.com/woodgrain-labs/furnplan-backend/internal/plans"
	"github.com/woodgrain-labs/furnplan-backend/internal/pricing"
	sessrepo "github.com/woodgrain-labs/furnplan-backend/internal/session/repository"
	"github.com/woodgrain-labs/furnplan-backend/internal/users"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	SceneScale     float64
	AllowedOrigins []string
	DB             *pgxpool.Pool
	CatalogDB      *sql.DB
	Redis          *redis.Client
	AuthClient     *fbauth.Client
	Planner        *planner.Service
	Estimator      *pricing.Estimator
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(dep.AllowedOrigins))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	userRepo := users.NewRepo(dep.DB)
	api.Use(auth.OptionalFirebaseAuth(dep.AuthClient, userRepo))

	api.GET("/metrics", httpapi.MetricsHandler)

	planRepo := plans.NewRepo(dep.DB)
	plans.Register(api.Group("/plans"), planRepo)

	if dep.CatalogDB != nil {
		catalogStore := catalog.NewStore(dep.CatalogDB)
		catalog.Register(api.Group("/catalog"), catalogStore)
	}

	sessions := sessrepo.NewSessionRepository(dep.Redis)
	deriver := geometry.NewDeriver(dep.SceneScale, geometry.DefaultColor)
	designHandler := designhttp.NewHandler(sessions, planRepo, dep.Planner, deriver, dep.Estimator)
	designhttp.Register(api.Group("/design"), designHandler)

	return r
}
