package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	authapp "github.com/surveyflow/surveyflow-services/api/internal/auth/application"
	"github.com/surveyflow/surveyflow-services/api/internal/config"
	mongodoc "github.com/surveyflow/surveyflow-services/api/internal/infrastructure/mongo"
	"github.com/surveyflow/surveyflow-services/api/internal/interfaces/http/authapi"
	"github.com/surveyflow/surveyflow-services/api/internal/interfaces/http/common"
	"github.com/surveyflow/surveyflow-services/api/internal/interfaces/http/surveyapi"
	surveyapp "github.com/surveyflow/surveyflow-services/api/internal/survey/application"
)

// Server manages the HTTP lifecycle and wires the application services
// into the router. It is the composition root: no domain logic lives
// here, only dependency assembly.
type Server struct {
	logger          *log.Logger
	client          *mongo.Client
	database        *mongo.Database
	authService     authapp.AuthService
	surveyService   surveyapp.SurveyService
	responseService surveyapp.ResponseService
	addr            string
	allowedOrigins  []string
}

// New builds a Server from config and a connected Mongo client.
func New(cfg config.Config, client *mongo.Client) *Server {
	srv := &Server{
		logger:         cfg.ServerLog,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}

	userRepo := mongodoc.NewUserRepository(srv.database, cfg.UserCollection)
	srv.authService = authapp.NewAuthService(userRepo, authapp.TokenConfig{
		Issuer:        cfg.JWTIssuer,
		AccessSecret:  cfg.AccessTokenSecret,
		RefreshSecret: cfg.RefreshTokenSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})

	surveyRepo := mongodoc.NewSurveyRepository(srv.database, cfg.SurveyCollection)
	responseRepo := mongodoc.NewResponseRepository(srv.database, cfg.ResponseCollection)
	srv.surveyService = surveyapp.NewSurveyService(surveyRepo, responseRepo)
	srv.responseService = surveyapp.NewResponseService(surveyRepo, responseRepo)

	return srv
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	authHandler := authapi.NewHandler(authapi.Config{
		Logger: s.logger,
		Auth:   s.authService,
	})
	router.Route("/api/auth", authHandler.Register)

	surveyHandler := surveyapi.NewHandler(surveyapi.Config{
		Logger:    s.logger,
		Surveys:   s.surveyService,
		Responses: s.responseService,
	})
	router.Route("/api/surveys", func(r chi.Router) {
		r.Use(s.authMiddleware)
		surveyHandler.Register(r)
	})

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP server listening on http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// authMiddleware verifies the Bearer access token and stores the
// authenticated user in the request context. Requests without a valid
// token never reach the survey store.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			common.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "missing Authorization header"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			common.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "Bearer token required"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			common.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "access token is empty"})
			return
		}

		userID, err := s.authService.ParseAccessToken(tokenString)
		if err != nil {
			common.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "invalid access token"})
			return
		}

		ctx := common.ContextWithUser(r.Context(), common.AuthenticatedUser{ID: userID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// healthHandler reports Mongo connectivity for monitoring probes.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			common.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		common.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// withCORS grants the configured origins access to the API.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// shutdown disconnects the Mongo client with a timeout.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("error disconnecting MongoDB: %v", err)
	}
}

// waitForShutdown watches ListenAndServe and OS signals, then drains
// the server gracefully.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("server exited abnormally: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("error during shutdown: %v", err)
		}
	}

	srv.shutdown(context.Background())
}
