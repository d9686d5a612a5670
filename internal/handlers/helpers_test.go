package handlers_test

import (
	"Catalog/internal/auth"
	"Catalog/internal/config"
	"Catalog/internal/handlers"
	"Catalog/internal/repo"
	"Catalog/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	router http.Handler
	users  *service.UserService
	tokens *auth.TokenService
}

// newTestApp собирает приложение поверх отдельной in-memory SQLite базы для каждого теста.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	db, err := repo.InitDB("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	logger := zap.NewNop().Sugar()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	svc := handlers.Services{
		Users:      service.NewUserService(repo.NewUserRepository(db), auth.NewPasswordHasher(4), logger),
		Items:      service.NewItemService(repo.NewItemRepository(db), repo.NewCategoryRepository(db), logger),
		Categories: service.NewCategoryService(repo.NewCategoryRepository(db)),
		Tags:       service.NewTagService(repo.NewTagRepository(db)),
		Sessions:   service.NewSessionService(repo.NewSessionRepository(db), time.Hour),
		Tokens:     tokens,
	}
	h, err := handlers.NewHandler(svc, logger, &config.Config{})
	require.NoError(t, err)
	return &testApp{router: h.Router, users: svc.Users, tokens: tokens}
}

// do выполняет JSON запрос; token может быть пустым.
func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&v), rr.Body.String())
	return v
}

type authBody struct {
	Token string `json:"token"`
	User  struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		IsAdmin  bool   `json:"is_admin"`
	} `json:"user"`
}

type itemBody struct {
	ID         int64    `json:"id"`
	UUID       string   `json:"uuid"`
	Name       string   `json:"name"`
	Desc       string   `json:"description"`
	Owner      *string  `json:"owner"`
	Category   *string  `json:"category"`
	Tags       []string `json:"tags"`
	OwnerID    *int64   `json:"owner_id"`
	CategoryID *int64   `json:"category_id"`
	TagIDs     []int64  `json:"tag_ids"`
}

type listBody struct {
	Items  []itemBody `json:"items"`
	Total  int64      `json:"total"`
	Limit  *int       `json:"limit"`
	Offset *int       `json:"offset"`
}

type userBody struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

type errBody struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors"`
}

type idBody struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// register регистрирует пользователя через API и возвращает токен и id.
func (a *testApp) register(t *testing.T, username string) (string, int64) {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username, "email": username + "@example.com", "password": "password1",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	body := decode[authBody](t, rr)
	return body.Token, body.User.ID
}

// admin создаёт администратора напрямую через сервис и выдаёт ему токен.
func (a *testApp) admin(t *testing.T) (string, int64) {
	t.Helper()
	u, err := a.users.EnsureAdmin(context.Background(), "root", "root@example.com", "rootpass")
	require.NoError(t, err)
	tok, err := a.tokens.Issue(u.ID)
	require.NoError(t, err)
	return tok, u.ID
}
