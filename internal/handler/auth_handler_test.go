package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alumnihub/alumni-backend/internal/dto"
	"github.com/alumnihub/alumni-backend/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	registerResp *dto.RegisterResponse
	registerErr  error
	loginResp    *dto.LoginResponse
	loginErr     error
}

func (s *stubAuthService) Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func setupAuthHandlerRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc)

	router := gin.New()
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	return router
}

func postRegister(t *testing.T, router *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(gin.H{
		"username":  "rahim",
		"email":     "rahim@example.com",
		"password":  "supersecret",
		"full_name": "Rahim Uddin",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router := setupAuthHandlerRouter(&stubAuthService{registerResp: &dto.RegisterResponse{}})
		w := postRegister(t, router)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		router := setupAuthHandlerRouter(&stubAuthService{registerErr: apperror.ErrEmailTaken})
		w := postRegister(t, router)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "email already registered")
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		router := setupAuthHandlerRouter(&stubAuthService{registerErr: apperror.ErrUsernameTaken})
		w := postRegister(t, router)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("infrastructure failure is internal", func(t *testing.T) {
		router := setupAuthHandlerRouter(&stubAuthService{registerErr: errors.New("db connection refused")})
		w := postRegister(t, router)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		router := setupAuthHandlerRouter(&stubAuthService{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	router := setupAuthHandlerRouter(&stubAuthService{loginErr: apperror.ErrUnauthorized})

	payload := []byte(`{"email":"rahim@example.com","password":"wrong"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
