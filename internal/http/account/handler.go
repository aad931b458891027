package account

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prajwal2403/fintrack/internal/auth"
	"github.com/prajwal2403/fintrack/internal/http/identity"
	"github.com/prajwal2403/fintrack/internal/http/respond"
	"github.com/prajwal2403/fintrack/internal/user"
)

type Handler struct {
	users    *user.Service
	tokens   *auth.TokenIssuer
	identity identity.Resolver
}

func NewHandler(users *user.Service, tokens *auth.TokenIssuer, resolver identity.Resolver) *Handler {
	return &Handler{users: users, tokens: tokens, identity: resolver}
}

// PublicRoutes registers the unauthenticated endpoints.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/signup/", h.signup)
	r.Post("/login", h.login)
}

// MeRoutes registers the identity-scoped endpoints.
func (h *Handler) MeRoutes(r chi.Router) {
	r.Get("/users/me/", h.me)
}

type signupRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.users.Signup(r.Context(), user.SignupParams{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toUserResponse(u))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	token, err := h.tokens.Issue(u.Email)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	email, err := h.identity(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	u, err := h.users.FindByEmail(r.Context(), email)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toUserResponse(u))
}
