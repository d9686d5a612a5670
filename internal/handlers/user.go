package handlers

import (
	"net/http"

	"Catalog/internal/middleware"
	"Catalog/internal/service"

	"go.uber.org/zap"
)

type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger}
}

type userUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"is_admin"`
}

// List - только для администратора (шлюз на маршруте).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "User not found")
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	user, err := h.UserService.GetAs(r.Context(), actor, id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "User not found")
		return
	}
	var req userUpdateRequest
	if _, err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	user, err := h.UserService.Update(r.Context(), actor, id, service.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "User not found")
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	if err := h.UserService.Delete(r.Context(), actor, id); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	h.Logger.Infow("user deleted", "user_id", id, "actor_id", actor.ID)
	writeMessage(w, http.StatusOK, "User deleted successfully")
}
