package http

import (
	"net/http"

	"github.com/bernardmuller/expense-tracker-sub000/internal/application/auth"
	"github.com/bernardmuller/expense-tracker-sub000/internal/application/budget"
	"github.com/bernardmuller/expense-tracker-sub000/internal/application/category"
	"github.com/bernardmuller/expense-tracker-sub000/internal/application/expense"
	"github.com/bernardmuller/expense-tracker-sub000/internal/application/user"
	"github.com/bernardmuller/expense-tracker-sub000/internal/config"
	"github.com/bernardmuller/expense-tracker-sub000/internal/infrastructure/dynamo"
	jwtinfra "github.com/bernardmuller/expense-tracker-sub000/internal/infrastructure/jwt"
	s3infra "github.com/bernardmuller/expense-tracker-sub000/internal/infrastructure/s3"
	"github.com/bernardmuller/expense-tracker-sub000/internal/infrastructure/smtp"
	"github.com/bernardmuller/expense-tracker-sub000/internal/infrastructure/sns"
	"github.com/bernardmuller/expense-tracker-sub000/internal/transport/http/handler"
	appmiddleware "github.com/bernardmuller/expense-tracker-sub000/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	AccountRepo      *dynamo.AccountRepo
	VerificationRepo *dynamo.VerificationRepo
	BudgetRepo       *dynamo.BudgetRepo
	CategoryRepo     *dynamo.CategoryRepo
	ExpenseRepo      *dynamo.ExpenseRepo
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
	SMSSender        sns.SMSSender
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to the public auth endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		VerificationRepo: deps.VerificationRepo,
		UserRepo:         deps.UserRepo,
		AccountRepo:      deps.AccountRepo,
		Codec:            deps.JWTProvider,
		Mailer:           deps.Mailer,
		SMSSender:        deps.SMSSender,
	})
	userSvc := user.NewService(deps.UserRepo)
	budgetSvc := budget.NewService(deps.BudgetRepo)
	categorySvc := category.NewService(deps.CategoryRepo, deps.BudgetRepo)
	expenseSvc := expense.NewService(expense.ServiceDeps{
		ExpenseRepo:  deps.ExpenseRepo,
		BudgetRepo:   deps.BudgetRepo,
		CategoryRepo: deps.CategoryRepo,
		Receipts:     deps.S3Store,
		ContentType:  s3infra.DetectContentType,
	})

	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	budgetH := handler.NewBudgetHandler(budgetSvc)
	categoryH := handler.NewCategoryHandler(categorySvc)
	expenseH := handler.NewExpenseHandler(expenseSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", handler.HealthCheck)

		r.With(sensitiveRL.Limit).Post("/auth/login/request", authH.LoginRequest)
		r.With(sensitiveRL.Limit).Post("/auth/login/attempt", authH.LoginAttempt)
		r.With(sensitiveRL.Limit).Post("/auth/register/request", authH.RegisterRequest)
		r.With(sensitiveRL.Limit).Post("/auth/register/verify", authH.RegisterVerify)
		r.With(sensitiveRL.Limit).Post("/auth/login/password", authH.PasswordLogin)
		r.With(sensitiveRL.Limit).Post("/auth/register/password", authH.PasswordRegister)
		r.Post("/auth/refresh", authH.Refresh)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/users/me", userH.Me)
			r.Put("/users/me", userH.UpdateMe)
			r.Delete("/users/me", userH.DeleteMe)

			r.Post("/budgets", budgetH.Create)
			r.Get("/budgets", budgetH.List)
			r.Get("/budgets/{budgetID}", budgetH.Get)
			r.Put("/budgets/{budgetID}", budgetH.Update)
			r.Delete("/budgets/{budgetID}", budgetH.Archive)

			r.Post("/budgets/{budgetID}/categories", categoryH.Create)
			r.Get("/budgets/{budgetID}/categories", categoryH.List)
			r.Put("/categories/{categoryID}", categoryH.Update)
			r.Delete("/categories/{categoryID}", categoryH.Delete)

			r.Post("/budgets/{budgetID}/expenses", expenseH.Create)
			r.Get("/budgets/{budgetID}/expenses", expenseH.List)
			r.Get("/expenses/{expenseID}", expenseH.Get)
			r.Put("/expenses/{expenseID}", expenseH.Update)
			r.Delete("/expenses/{expenseID}", expenseH.Delete)
			r.Post("/expenses/{expenseID}/receipt", expenseH.UploadReceipt)
			r.Get("/expenses/{expenseID}/receipt", expenseH.ReceiptURL)
		})
	})

	return r
}
