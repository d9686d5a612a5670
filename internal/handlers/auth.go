package handlers

import (
	"net/http"

	"Catalog/internal/auth"
	"Catalog/internal/model"
	"Catalog/internal/service"

	"go.uber.org/zap"
)

// AuthHandler - регистрация и вход через JSON API.
type AuthHandler struct {
	UserService *service.UserService
	Tokens      *auth.TokenService
	Logger      *zap.SugaredLogger
}

func NewAuthHandler(userService *service.UserService, tokens *auth.TokenService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{UserService: userService, Tokens: tokens, Logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register регистрирует пользователя и сразу выдаёт токен.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if _, err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	user, err := h.UserService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	h.Logger.Infow("user registered", "user_id", user.ID, "username", user.Username)
	h.respondWithToken(w, http.StatusCreated, user)
}

// Login проверяет логин/пароль и выдаёт токен.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if _, err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	user, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	h.respondWithToken(w, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, user *model.User) {
	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, status, authResponse{Token: token, User: toUserResponse(user)})
}
