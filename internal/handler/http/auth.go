package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/syedqalbe-create/VisionAR/internal/auth"
	"github.com/syedqalbe-create/VisionAR/pkg/validator"
)

// AuthHandler handles HTTP requests for auth endpoints.
//
// Authentication is intentionally a stand-in: any well-formed credentials are
// accepted and no accounts exist server-side. The issued tokens are real JWTs
// so the rest of the API authenticates normally. User IDs are derived
// deterministically from the email, which keeps a user's preferences stable
// across sessions.
type AuthHandler struct {
	jwt    *auth.JWTManager
	logger *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(jwt *auth.JWTManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		jwt:    jwt,
		logger: logger,
	}
}

// --- Request/response DTOs ---

// LoginRequest is the JSON request body for login and signup.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// SignupRequest is the JSON request body for signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// RefreshRequest is the JSON request body for refreshing tokens.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         userResponse `json:"user"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// userIDForEmail derives a stable user ID from the email address.
func userIDForEmail(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(email))).String()
}

// --- Handlers ---

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	h.issueTokens(w, r, userIDForEmail(req.Email), req.Email, "")
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	h.issueTokens(w, r, userIDForEmail(req.Email), req.Email, req.Name)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	claims, err := h.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, response{
			Error: &errorResponse{Code: "UNAUTHORIZED", Message: "invalid or expired refresh token"},
		})
		return
	}

	h.issueTokens(w, r, claims.UserID, "", "")
}

func (h *AuthHandler) issueTokens(w http.ResponseWriter, r *http.Request, userID, email, name string) {
	accessToken, err := h.jwt.GenerateAccessToken(userID, email)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	refreshToken, err := h.jwt.GenerateRefreshToken(userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "tokens issued",
		slog.String("user_id", userID),
	)

	writeJSON(w, http.StatusOK, response{Data: tokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         userResponse{ID: userID, Email: email, Name: name},
	}})
}
