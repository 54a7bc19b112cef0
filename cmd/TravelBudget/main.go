package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	database "github.com/mwisnie/TravelBudget/db"
	"github.com/mwisnie/TravelBudget/internal/advisor"
	"github.com/mwisnie/TravelBudget/internal/auth"
	"github.com/mwisnie/TravelBudget/internal/budget/application"
	"github.com/mwisnie/TravelBudget/internal/budget/infrastructure"
	"github.com/mwisnie/TravelBudget/internal/budget/interfaces"
	"github.com/mwisnie/TravelBudget/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errs ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errs) > 0 {
		payload["errors"] = errs[0]
	}
	respondJSON(w, status, payload)
}

type Server struct {
	router           *http.ServeMux
	dbService        *database.DBService
	authHandler      *auth.Handler
	authService      auth.Service
	userHandler      *user.Handler
	incomeHandler    *interfaces.IncomeHandler
	expenseHandler   *interfaces.ExpenseHandler
	goalHandler      *interfaces.GoalHandler
	dashboardHandler *interfaces.DashboardHandler
	advisorHandler   *advisor.Handler
}

func NewServer(
	dbService *database.DBService,
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	incomeHandler *interfaces.IncomeHandler,
	expenseHandler *interfaces.ExpenseHandler,
	goalHandler *interfaces.GoalHandler,
	dashboardHandler *interfaces.DashboardHandler,
	advisorHandler *advisor.Handler,
) *Server {
	return &Server{
		router:           http.NewServeMux(),
		dbService:        dbService,
		authHandler:      authHandler,
		authService:      authService,
		userHandler:      userHandler,
		incomeHandler:    incomeHandler,
		expenseHandler:   expenseHandler,
		goalHandler:      goalHandler,
		dashboardHandler: dashboardHandler,
		advisorHandler:   advisorHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING provided")
	}
	if os.Getenv("ADVISOR_API_KEY") == "" {
		return errors.New("no ADVISOR_API_KEY provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	health := s.dbService.Health()
	status := http.StatusOK
	if health["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, map[string]interface{}{
		"status":   "ready",
		"database": health,
	})
}

func (s *Server) RegisterRoutes() {
	withJWT := s.authService.JWTAccessTokenMiddleware()

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/profile", withJWT(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))
	protectedRoutes.Handle("PUT /api/protected/profile", withJWT(http.HandlerFunc(s.userHandler.HandleUpdateProfile)))
	protectedRoutes.Handle("POST /api/protected/logout", withJWT(http.HandlerFunc(s.authHandler.HandleLogout)))

	// INCOME API
	protectedRoutes.Handle("POST /api/protected/incomes", withJWT(http.HandlerFunc(s.incomeHandler.CreateIncome)))
	protectedRoutes.Handle("GET /api/protected/incomes", withJWT(http.HandlerFunc(s.incomeHandler.GetUserIncomes)))
	protectedRoutes.Handle("PUT /api/protected/incomes/{incomeID}", withJWT(http.HandlerFunc(s.incomeHandler.UpdateIncome)))
	protectedRoutes.Handle("DELETE /api/protected/incomes/{incomeID}", withJWT(http.HandlerFunc(s.incomeHandler.DeleteIncome)))

	// EXPENSE API
	protectedRoutes.Handle("POST /api/protected/expenses", withJWT(http.HandlerFunc(s.expenseHandler.CreateExpense)))
	protectedRoutes.Handle("GET /api/protected/expenses", withJWT(http.HandlerFunc(s.expenseHandler.GetUserExpenses)))
	protectedRoutes.Handle("GET /api/protected/expenses/categories", withJWT(http.HandlerFunc(s.expenseHandler.GetCategories)))
	protectedRoutes.Handle("PUT /api/protected/expenses/{expenseID}", withJWT(http.HandlerFunc(s.expenseHandler.UpdateExpense)))
	protectedRoutes.Handle("DELETE /api/protected/expenses/{expenseID}", withJWT(http.HandlerFunc(s.expenseHandler.DeleteExpense)))

	// GOALS API
	protectedRoutes.Handle("POST /api/protected/goals", withJWT(http.HandlerFunc(s.goalHandler.CreateGoal)))
	protectedRoutes.Handle("GET /api/protected/goals", withJWT(http.HandlerFunc(s.goalHandler.GetUserGoals)))
	protectedRoutes.Handle("PUT /api/protected/goals/{goalID}", withJWT(http.HandlerFunc(s.goalHandler.UpdateGoal)))
	protectedRoutes.Handle("DELETE /api/protected/goals/{goalID}", withJWT(http.HandlerFunc(s.goalHandler.DeleteGoal)))
	protectedRoutes.Handle("POST /api/protected/goals/{goalID}/contributions", withJWT(http.HandlerFunc(s.goalHandler.Contribute)))

	// DASHBOARD AND ADVICE API
	protectedRoutes.Handle("GET /api/protected/dashboard", withJWT(http.HandlerFunc(s.dashboardHandler.GetDashboard)))
	protectedRoutes.Handle("POST /api/protected/advice", withJWT(http.HandlerFunc(s.advisorHandler.HandleGetAdvice)))

	// Refresh token routes
	refreshTokenRoutes := http.NewServeMux()
	refreshTokenRoutes.Handle("PUT /api/refresh/token", s.authService.JWTRefreshTokenMiddleware()(http.HandlerFunc(s.authHandler.RefreshAccessToken)))

	// Main router
	mainRouter := http.NewServeMux()

	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/api/refresh/", refreshTokenRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	authRepo := auth.NewUserRepository(dbService.DB)
	userRepo := user.NewUserRepository(dbService.DB)

	jwtManager := auth.NewJWTManager()
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService)
	authService := auth.NewAuthService(authRepo, jwtManager)
	authHandler := auth.NewHandler(authService)

	incomeRepo := infrastructure.NewIncomeRepository(dbService.DB)
	incomeService := application.NewIncomeService(incomeRepo)
	incomeHandler := interfaces.NewIncomeHandler(incomeService, respondJSON, respondError)

	expenseRepo := infrastructure.NewExpenseRepository(dbService.DB)
	expenseService := application.NewExpenseService(expenseRepo)
	expenseHandler := interfaces.NewExpenseHandler(expenseService, respondJSON, respondError)

	goalRepo := infrastructure.NewGoalRepository(dbService.DB)
	goalService := application.NewGoalService(goalRepo)
	goalHandler := interfaces.NewGoalHandler(goalService, respondJSON, respondError)

	dashboardService := application.NewDashboardService(incomeService, expenseService, goalService)
	dashboardHandler := interfaces.NewDashboardHandler(dashboardService, respondJSON, respondError)

	adviceClient := advisor.NewChatCompletionClient(os.Getenv("ADVISOR_API_KEY"))
	adviceService := advisor.NewService(adviceClient, dashboardService, goalService)
	advisorHandler := advisor.NewHandler(adviceService, respondJSON, respondError)

	server := NewServer(
		dbService,
		authHandler,
		authService,
		userHandler,
		incomeHandler,
		expenseHandler,
		goalHandler,
		dashboardHandler,
		advisorHandler,
	)
	server.RegisterRoutes()

	handler := loggingMiddleware(server.router)
	log.Println("Server starting on port 8080...")
	if err := http.ListenAndServe(":8080", handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
