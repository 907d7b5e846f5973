package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	authapp "github.com/surveyflow/surveyflow-services/api/internal/auth/application"
	authdomain "github.com/surveyflow/surveyflow-services/api/internal/auth/domain"
	"github.com/surveyflow/surveyflow-services/api/internal/interfaces/http/common"
)

type stubAuthService struct {
	userID string
}

func (s *stubAuthService) Register(context.Context, authapp.RegisterCommand) (*authdomain.User, authapp.TokenPair, error) {
	return nil, authapp.TokenPair{}, errors.New("not implemented")
}

func (s *stubAuthService) Login(context.Context, authapp.LoginCommand) (*authdomain.User, authapp.TokenPair, error) {
	return nil, authapp.TokenPair{}, errors.New("not implemented")
}

func (s *stubAuthService) Refresh(context.Context, string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubAuthService) ParseAccessToken(token string) (string, error) {
	if token != "valid-token" {
		return "", errors.New("invalid token")
	}
	return s.userID, nil
}

func newMiddlewareServer() *Server {
	return &Server{
		logger:      log.New(os.Stderr, "", 0),
		authService: &stubAuthService{userID: "user-1"},
	}
}

func TestAuthMiddleware_RejectsBeforeHandler(t *testing.T) {
	srv := newMiddlewareServer()

	reached := false
	handler := srv.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	cases := map[string]string{
		"no header":      "",
		"not bearer":     "Basic abc123",
		"empty bearer":   "Bearer ",
		"rejected token": "Bearer bad-token",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/surveys", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, rec.Code)
		}
	}
	if reached {
		t.Errorf("expected no rejected request to reach the handler")
	}
}

func TestAuthMiddleware_StoresUserInContext(t *testing.T) {
	srv := newMiddlewareServer()

	var got common.AuthenticatedUser
	handler := srv.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			t.Errorf("expected a user in context")
		}
		got = user
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/surveys", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.ID != "user-1" {
		t.Errorf("expected user-1, got %q", got.ID)
	}
}
