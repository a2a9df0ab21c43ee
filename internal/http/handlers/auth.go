package handlers

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/research-tracker/internal/http/respond"
	"github.com/hongminglow/research-tracker/internal/logging"
	"github.com/hongminglow/research-tracker/internal/models"
	"github.com/hongminglow/research-tracker/internal/models/dto"
	"github.com/hongminglow/research-tracker/internal/storage"
	"github.com/hongminglow/research-tracker/internal/validation"
)

// TokenIssuer is satisfied by *auth.TokenManager.
type TokenIssuer interface {
	Generate(user models.User) (string, error)
}

// AuthHandler owns the register and login endpoints.
type AuthHandler struct {
	store  storage.UserStore
	tokens TokenIssuer
	logger logging.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens TokenIssuer, logger logging.Logger) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, logger: logger}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeValidation(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		if !writeValidation(w, err) {
			h.logger.Error(r.Context(), "validate register request", "error", err)
			respond.Error(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	passwordHash, err := hashPassword(req.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		writeValidation(w, validation.Field("password"))
		return
	}
	if err != nil {
		h.logger.Error(r.Context(), "hash password", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		Role:         req.Role,
		PasswordHash: passwordHash,
	}
	created, err := h.store.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusBadRequest, "Username or email already exists")
			return
		}
		h.logger.Error(r.Context(), "create user", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info(r.Context(), "user registered", "user_id", created.ID, "role", created.Role)
	respond.JSON(w, http.StatusCreated, respond.Message{Message: "User registered successfully"})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeValidation(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		if !writeValidation(w, err) {
			respond.Error(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	user, err := h.store.FindByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "User not found")
			return
		}
		h.logger.Error(r.Context(), "find user", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "Wrong password")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		h.logger.Error(r.Context(), "generate token", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Token: token, Username: user.Username, Role: user.Role})
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
