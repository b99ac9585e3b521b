package router

import (
	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/middleware"
	"timeclock/backend/internal/pkg/repository/postgresql"
	"timeclock/backend/internal/repository/postgres/company"
	"timeclock/backend/internal/repository/postgres/punch"
	"timeclock/backend/internal/repository/postgres/worker"
	"timeclock/backend/internal/repository/redis/markguard"
	"timeclock/backend/internal/service/worktime"

	auth_controller "timeclock/backend/internal/controller/http/v1/auth"
	company_controller "timeclock/backend/internal/controller/http/v1/company"
	punch_controller "timeclock/backend/internal/controller/http/v1/punch"
	worker_controller "timeclock/backend/internal/controller/http/v1/worker"
)

type Router struct {
	*web.App
	postgresDB     *postgresql.Database
	auth           *auth.Auth
	guard          *markguard.Guard
	policy         worktime.Policy
	allowedOrigins []string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	auth *auth.Auth,
	guard *markguard.Guard,
	policy worktime.Policy,
	allowedOrigins []string,
) *Router {
	return &Router{
		app,
		postgresDB,
		auth,
		guard,
		policy,
		allowedOrigins,
	}
}

func (r Router) Init() {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CorsMiddleware(r.allowedOrigins))

	// - postgresql
	workerPostgres := worker.NewRepository(r.postgresDB)
	companyPostgres := company.NewRepository(r.postgresDB)
	punchPostgres := punch.NewRepository(r.postgresDB, r.guard, worktime.NewAggregator(r.policy))

	// controller
	authController := auth_controller.NewController(workerPostgres, r.auth)
	workerController := worker_controller.NewController(workerPostgres)
	companyController := company_controller.NewController(companyPostgres)
	punchController := punch_controller.NewController(punchPostgres)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)

	// #worker
	r.Get("/api/v1/worker/me", workerController.GetMe, middleware.Authenticate(r.auth))
	r.Get("/api/v1/worker/list", workerController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/worker/create", workerController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/worker/:id", workerController.GetDetailById, middleware.Authenticate(r.auth))
	r.Get("/api/v1/worker/:id/badge", workerController.GetBadge, middleware.Authenticate(r.auth))

	// #company
	r.Get("/api/v1/company", companyController.GetInfo, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/company", companyController.UpdateColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #punch
	r.Post("/api/v1/punch/:type", punchController.Mark, middleware.Authenticate(r.auth))
	r.Get("/api/v1/punch/history", punchController.GetMyHistory, middleware.Authenticate(r.auth))
	r.Get("/api/v1/punch/board", punchController.GetBoard, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/punch/worker/:id/history", punchController.GetHistory, middleware.Authenticate(r.auth))
	r.Get("/api/v1/punch/worker/:id/hours", punchController.GetDailyHours, middleware.Authenticate(r.auth))
	r.Get("/api/v1/punch/worker/:id/hours/export", punchController.ExportHours, middleware.Authenticate(r.auth))
	r.Get("/api/v1/punch/worker/:id/status", punchController.GetStatus, middleware.Authenticate(r.auth))
	r.Get("/api/v1/punch/worker/:id/weekly", punchController.GetWeekly, middleware.Authenticate(r.auth))
}
