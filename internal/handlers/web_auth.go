package handlers

import (
	"net/http"
	"net/mail"
	"strings"

	"Catalog/internal/middleware"
	"Catalog/internal/service"
)

type loginPage struct {
	Next     string
	Username string
}

func (h *WebHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "login", "Log in", loginPage{Next: r.URL.Query().Get("next")})
}

// Login открывает серверную сессию и возвращает на next (только локальные пути).
func (h *WebHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	next := r.FormValue("next")
	page := loginPage{Next: next, Username: username}

	user, err := h.UserService.Login(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		status, msgs := h.formError(err)
		h.render(w, r, status, "login", "Log in", page, msgs...)
		return
	}
	sess, err := h.SessionService.Create(r.Context(), user.ID)
	if err != nil {
		status, msgs := h.formError(err)
		h.render(w, r, status, "login", "Log in", page, msgs...)
		return
	}
	middleware.SetSessionCookie(w, sess, h.SecureCookies)
	h.Logger.Infow("web login", "user_id", user.ID)

	if !middleware.IsLocalPath(next) {
		next = "/"
	}
	h.redirect(w, r, next, "success", "You have been logged in successfully!")
}

func (h *WebHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionService.Destroy(r.Context(), middleware.SessionID(r)); err != nil {
		h.Logger.Warnw("destroy session", "error", err)
	}
	middleware.ClearSessionCookie(w)
	h.redirect(w, r, "/", "info", "You have been logged out.")
}

type registerPage struct {
	Username string
	Email    string
}

func (h *WebHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "register", "Register", registerPage{})
}

func (h *WebHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	page := registerPage{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
	}
	password := r.PostFormValue("password")

	err := service.ValidateRegistration(page.Username, page.Email, password, r.PostFormValue("confirm_password"))
	if err == nil {
		_, err = h.UserService.Register(r.Context(), page.Username, page.Email, password)
	}
	if err != nil {
		status, msgs := h.formError(err)
		h.render(w, r, status, "register", "Register", page, msgs...)
		return
	}
	h.redirect(w, r, "/login", "success", "Your account has been created! You can now log in.")
}

type profilePage struct {
	Username string
	Email    string
}

func (h *WebHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	h.render(w, r, http.StatusOK, "profile", "Profile", profilePage{Username: user.Username, Email: user.Email})
}

// UpdateProfile меняет свои данные; смена email или пароля требует текущий пароль.
func (h *WebHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	user, _ := middleware.UserFromContext(r.Context())
	page := profilePage{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
	}
	newPassword := r.PostFormValue("new_password")

	var msgs []string
	if n := len([]rune(page.Username)); n < 3 || n > 50 {
		msgs = append(msgs, "Username must be between 3 and 50 characters")
	}
	if _, err := mail.ParseAddress(page.Email); err != nil {
		msgs = append(msgs, "Invalid email address")
	}
	if newPassword != "" {
		if len(newPassword) < 6 {
			msgs = append(msgs, "Password must be at least 6 characters")
		}
		if newPassword != r.PostFormValue("confirm_password") {
			msgs = append(msgs, "Passwords must match")
		}
	}
	if len(msgs) > 0 {
		h.render(w, r, http.StatusBadRequest, "profile", "Profile", page, msgs...)
		return
	}
	if (newPassword != "" || page.Email != user.Email) &&
		!h.UserService.CheckPassword(user, r.PostFormValue("current_password")) {
		h.render(w, r, http.StatusBadRequest, "profile", "Profile", page, "Current password is incorrect.")
		return
	}

	var patch service.UserPatch
	if page.Username != user.Username {
		patch.Username = &page.Username
	}
	if page.Email != user.Email {
		patch.Email = &page.Email
	}
	if newPassword != "" {
		patch.Password = &newPassword
	}
	if !patch.IsEmpty() {
		if _, err := h.UserService.Update(r.Context(), user, user.ID, patch); err != nil {
			status, msgs := h.formError(err)
			h.render(w, r, status, "profile", "Profile", page, msgs...)
			return
		}
	}
	h.redirect(w, r, "/profile", "success", "Profile updated successfully!")
}
