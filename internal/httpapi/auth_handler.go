package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"lead_gen/internal/lib/logger/sl"
	"lead_gen/internal/services/auth"
)

// AuthService is the registration and login surface.
type AuthService interface {
	Register(ctx context.Context, name, phone, email, password string) (uuid.UUID, string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	log     *slog.Logger
	service AuthService
}

func NewAuthHandler(log *slog.Logger, service AuthService) *AuthHandler {
	return &AuthHandler{log: log, service: service}
}

type registerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	BuyerID string `json:"buyer_id"`
	Token   string `json:"token"`
}

// Register is registration step 1: account only. Preferences follow via
// PUT /buyers/me/preferences.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondErr(w, http.StatusBadRequest, errors.New("name, email and password are required"))
		return
	}

	id, token, err := h.service.Register(r.Context(), req.Name, req.Phone, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBuyerExists) {
			respondErr(w, http.StatusConflict, errors.New("email already registered"))
			return
		}
		h.log.Error("register failed", sl.Err(err))
		respondErr(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}

	respond(w, http.StatusCreated, registerResponse{BuyerID: id.String(), Token: token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondErr(w, http.StatusUnauthorized, errors.New("invalid credentials"))
			return
		}
		h.log.Error("login failed", sl.Err(err))
		respondErr(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}

	respond(w, http.StatusOK, loginResponse{Token: token})
}
