package handler

import (
	"encoding/json"
	"net/http"

	"github.com/songguessr/songguessr-go/internal/api/middleware"
	"github.com/songguessr/songguessr-go/internal/api/request"
	"github.com/songguessr/songguessr-go/internal/api/response"
	"github.com/songguessr/songguessr-go/internal/services/auth"
)

// AuthHandler handles account and credential endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		WriteError(w, NewInvalidRequestError("username, email and password are required"))
		return
	}

	user, token, err := h.authService.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.AuthResponse{
		User:  response.UserFromModel(user),
		Token: token,
	}
	response.JSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" || req.Password == "" {
		WriteError(w, NewInvalidRequestError("email and password are required"))
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.AuthResponse{
		User:  response.UserFromModel(user),
		Token: token,
	}
	response.JSON(w, http.StatusOK, resp)
}

// GetMe handles GET /api/v1/auth/me
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(&identity.User))
}

// Validate handles GET /api/v1/auth/validate
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	resp := response.ValidateResponse{
		Valid: true,
		User:  response.UserFromModel(&identity.User),
	}
	response.JSON(w, http.StatusOK, resp)
}
