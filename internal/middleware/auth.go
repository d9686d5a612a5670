package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Catalog/internal/auth"
	"Catalog/internal/model"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	tokenErrKey
	userKey
)

// SessionCookieName - cookie web-сессии.
const SessionCookieName = "session_id"

// UserLoader загружает пользователя по id (реализуется service.UserService).
type UserLoader interface {
	Get(ctx context.Context, id int64) (*model.User, error)
}

// SessionResolver находит действующую сессию по id (реализуется service.SessionService).
type SessionResolver interface {
	Resolve(ctx context.Context, id string) (*model.Session, error)
}

// WithAuth разбирает заголовок Authorization: Bearer <token>.
// Валидный токен кладёт user_id в контекст; запрос без токена проходит анонимно.
func WithAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			raw, ok := bearerToken(header)
			if !ok {
				ctx := context.WithValue(r.Context(), tokenErrKey, "Missing or invalid token")
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			claims, err := tokens.Validate(raw)
			if err != nil {
				ctx := context.WithValue(r.Context(), tokenErrKey, "Invalid or expired token")
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserIDFromContext возвращает user_id из валидного токена.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUser кладёт пользователя в контекст.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext возвращает пользователя, которого положил RequireAuth или WithSession.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok && u != nil
}

// RequireAuth пропускает запрос только с валидным токеном существующего пользователя.
// Должен стоять после WithAuth.
func RequireAuth(users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetUserIDFromContext(r.Context())
			if !ok {
				msg, _ := r.Context().Value(tokenErrKey).(string)
				if msg == "" {
					msg = "Missing or invalid token"
				}
				unauthorized(w, msg)
				return
			}
			user, err := users.Get(r.Context(), id)
			if err != nil || user == nil {
				unauthorized(w, "User not found")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAdmin - второй шлюз после RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w, "Authentication required")
			return
		}
		if !user.IsAdmin {
			writeJSONError(w, http.StatusForbidden, "Admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="catalog"`)
	writeJSONError(w, http.StatusUnauthorized, msg)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// SetSessionCookie выставляет cookie web-сессии.
func SetSessionCookie(w http.ResponseWriter, s *model.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie удаляет cookie web-сессии.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionID возвращает id сессии из cookie.
func SessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// WithSession определяет пользователя web-интерфейса по cookie сессии.
// Просроченная или «висячая» сессия превращается в анонимный запрос, cookie стирается.
func WithSession(sessions SessionResolver, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := SessionID(r)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}
			sess, err := sessions.Resolve(r.Context(), id)
			if err != nil {
				ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}
			user, err := users.Get(r.Context(), sess.UserID)
			if err != nil || user == nil {
				ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireLogin перенаправляет анонимного посетителя на /login?next=<текущий путь>.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdminPage - админский шлюз для страниц, ставится после RequireLogin.
func RequireAdminPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !user.IsAdmin {
			http.Error(w, "Admin privileges required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginURL строит адрес страницы входа с возвратом на next.
func LoginURL(next string) string {
	if !IsLocalPath(next) || next == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// IsLocalPath допускает только относительные пути этого сайта (без схемы и хоста).
func IsLocalPath(p string) bool {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, `/\`) {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}
