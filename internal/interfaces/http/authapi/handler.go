package authapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	authapp "github.com/surveyflow/surveyflow-services/api/internal/auth/application"
	authdomain "github.com/surveyflow/surveyflow-services/api/internal/auth/domain"
	"github.com/surveyflow/surveyflow-services/api/internal/interfaces/http/common"
	"github.com/surveyflow/surveyflow-services/api/pkg/fault"
)

// Handler wires the auth endpoints to the auth service.
type Handler struct {
	logger *log.Logger
	auth   authapp.AuthService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger *log.Logger
	Auth   authapp.AuthService
}

// NewHandler constructs the auth HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{logger: cfg.Logger, auth: cfg.Auth}
}

// Register mounts the auth routes onto the router. None of them
// require an access token.
func (h *Handler) Register(r chi.Router) {
	r.Post("/register", h.registerHandler())
	r.Post("/login", h.loginHandler())
	r.Post("/refresh", h.refreshHandler())
	r.Post("/logout", h.logoutHandler())
}

func (h *Handler) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var req registerRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		user, pair, err := h.auth.Register(ctx, authapp.RegisterCommand{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, buildTokenResponse(user, pair))
	}
}

func (h *Handler) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		user, pair, err := h.auth.Login(ctx, authapp.LoginCommand{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildTokenResponse(user, pair))
	}
}

func (h *Handler) refreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var req refreshRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		accessToken, err := h.auth.Refresh(ctx, req.RefreshToken)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, refreshResponse{
			Success:     true,
			AccessToken: accessToken,
		})
	}
}

// logoutHandler is a stateless acknowledgment; tokens stay valid until
// they expire, which is why access tokens are short-lived.
func (h *Handler) logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, logoutResponse{
			Success: true,
			Message: "logged out successfully",
		})
	}
}

func buildTokenResponse(user *authdomain.User, pair authapp.TokenPair) tokenResponse {
	return tokenResponse{
		Success:      true,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User: userResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email.String(),
		},
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, common.MaxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fault.Validation("invalid request body")
	}
	return nil
}
