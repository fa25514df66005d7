package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"FINTRACK_BACK-END/internal/config"
	"FINTRACK_BACK-END/internal/currency"
	"FINTRACK_BACK-END/internal/handlers"
	"FINTRACK_BACK-END/internal/logging"
	"FINTRACK_BACK-END/internal/middleware"
	"FINTRACK_BACK-END/internal/services"
	"FINTRACK_BACK-END/internal/store"
	"FINTRACK_BACK-END/internal/utils"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth           *handlers.AuthHandler
	ForgotPassword *handlers.ForgotPasswordHandler
	Google         *handlers.GoogleAuthHandler
	Account        *handlers.AccountHandler
	Transactions   *handlers.TransactionHandler
	Budgets        *handlers.BudgetHandler
	Reports        *handlers.ReportHandler
	Currency       *handlers.CurrencyHandler
	Health         *handlers.HealthHandler
}

// NewHandlers wires services over st and builds the handler set. When mailer
// is an *utils.OutboxMailer the demo verification endpoint can read from it.
func NewHandlers(cfg *config.Config, st *store.Store, mailer utils.Mailer, conv *currency.Converter, log logging.Logger) *Handlers {
	auth := services.NewAuthService(st, mailer, cfg, log)
	outbox, _ := mailer.(*utils.OutboxMailer)

	return &Handlers{
		Auth:           handlers.NewAuthHandler(auth, outbox),
		ForgotPassword: handlers.NewForgotPasswordHandler(auth),
		Google:         handlers.NewGoogleAuthHandler(auth, &cfg.GoogleOAuth),
		Account:        handlers.NewAccountHandler(auth),
		Transactions:   handlers.NewTransactionHandler(services.NewTransactionService(st, cfg.App.DefaultCurrency)),
		Budgets:        handlers.NewBudgetHandler(services.NewBudgetService(st, cfg.App.DefaultCurrency)),
		Reports:        handlers.NewReportHandler(services.NewReportService(st)),
		Currency:       handlers.NewCurrencyHandler(conv),
		Health:         handlers.NewHealthHandler(st),
	}
}

// SetupRoutes configures all application routes
func SetupRoutes(cfg *config.Config, log logging.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
	})

	// Health check routes
	r.Get("/healthz", h.Health.HealthCheck)
	r.Get("/livez", h.Health.LivenessCheck)
	r.Get("/readyz", h.Health.ReadinessCheck)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Authentication routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/verify-email", h.Auth.VerifyEmail)
		r.Get("/verify-email", h.Auth.VerifyEmail)
		r.Post("/resend-verification", h.Auth.ResendVerification)
		r.Post("/login", h.Auth.Login)
		r.Post("/forgot-password", h.ForgotPassword.ForgotPassword)
		r.Post("/reset-password", h.ForgotPassword.ResetPassword)
		r.Get("/google/login", h.Google.GoogleLogin)
		r.Get("/google/callback", h.Google.GoogleCallback)

		if cfg.IsDemoMode() {
			r.Get("/demo-verification", h.Auth.DemoVerification)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(&cfg.JWT))
			r.Get("/me", h.Account.GetMe)
			r.Put("/me", h.Account.UpdateMe)
			r.Delete("/me", h.Account.DeleteMe)
			r.Put("/me/password", h.Account.ChangePassword)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(&cfg.JWT))

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.Transactions.List)
			r.Post("/", h.Transactions.Create)
			r.Get("/{id}", h.Transactions.Get)
			r.Put("/{id}", h.Transactions.Update)
			r.Delete("/{id}", h.Transactions.Delete)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", h.Budgets.List)
			r.Post("/", h.Budgets.Create)
			r.Get("/{id}", h.Budgets.Get)
			r.Put("/{id}", h.Budgets.Update)
			r.Delete("/{id}", h.Budgets.Delete)
		})

		r.Get("/reports", h.Reports.Get)
	})

	r.Get("/currency/rates", h.Currency.Rates)
	r.Get("/currency/convert", h.Currency.Convert)

	r.Get("/", rootHandler)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})
	return c.Handler(r)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Finance tracker backend is running."))
}
