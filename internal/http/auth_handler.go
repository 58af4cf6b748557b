package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"elderguard-data/internal/service"
)

// AuthHandler 注册/登录接口
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Signup POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRegistered):
			Fail(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, service.ErrMissingCredentials):
			Fail(w, http.StatusBadRequest, "Email and password are required")
		default:
			h.logger.Error("Signup failed", zap.Error(err))
			Fail(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, newUserView(user))
}

// Login POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) || errors.Is(err, service.ErrMissingCredentials) {
			Fail(w, http.StatusBadRequest, "Incorrect email or password")
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
