package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// browser хранит куки между запросами к роутеру, как это делал бы браузер.
type browser struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func newBrowser(app *testApp) *browser {
	return &browser{app: app, cookies: map[string]*http.Cookie{}}
}

func (b *browser) send(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	b.app.router.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rr
}

func (b *browser) get(t *testing.T, path string) *httptest.ResponseRecorder {
	return b.send(t, http.MethodGet, path, nil)
}

func (b *browser) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	return b.send(t, http.MethodPost, path, form)
}

func (b *browser) signUp(t *testing.T, username string) {
	t.Helper()
	rr := b.post(t, "/register", url.Values{
		"username": {username}, "email": {username + "@example.com"},
		"password": {"secret1"}, "confirm_password": {"secret1"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())
	rr = b.post(t, "/login", url.Values{"username": {username}, "password": {"secret1"}})
	require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())
}

func TestWeb_RegisterLoginCreateItem(t *testing.T) {
	app := newTestApp(t)
	b := newBrowser(app)

	rr := b.get(t, "/items/create")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?next=%2Fitems%2Fcreate", rr.Header().Get("Location"))

	rr = b.post(t, "/register", url.Values{
		"username": {"alice"}, "email": {"alice@example.com"},
		"password": {"secret1"}, "confirm_password": {"secret2"},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Passwords must match")

	rr = b.post(t, "/register", url.Values{
		"username": {"alice"}, "email": {"alice@example.com"},
		"password": {"secret1"}, "confirm_password": {"secret1"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	rr = b.post(t, "/register", url.Values{
		"username": {"alice"}, "email": {"other@example.com"},
		"password": {"secret1"}, "confirm_password": {"secret1"},
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = b.post(t, "/login", url.Values{"username": {"alice"}, "password": {"wrong-pass"}})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotContains(t, b.cookies, "session_id")

	rr = b.post(t, "/login", url.Values{"username": {"alice"}, "password": {"secret1"}, "next": {"/items/create"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/items/create", rr.Header().Get("Location"))
	require.Contains(t, b.cookies, "session_id")
	assert.True(t, b.cookies["session_id"].HttpOnly)

	rr = b.get(t, "/items/create")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "logged in successfully")

	rr = b.post(t, "/items/create", url.Values{"name": {""}, "description": {"Desk lamp"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Name cannot be empty")

	rr = b.post(t, "/items/create", url.Values{"name": {"Lamp"}, "description": {"Desk lamp"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	location := rr.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/items/"))

	rr = b.get(t, location)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Desk lamp")

	rr = b.get(t, "/items?search=LAMP")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Lamp")

	rr = b.get(t, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Lamp")

	rr = b.get(t, "/logout")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.NotContains(t, b.cookies, "session_id")

	rr = b.get(t, "/profile")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?next=%2Fprofile", rr.Header().Get("Location"))
}

func TestWeb_LoginIgnoresForeignNext(t *testing.T) {
	app := newTestApp(t)
	b := newBrowser(app)
	b.signUp(t, "erin")

	b2 := newBrowser(app)
	rr := b2.post(t, "/login", url.Values{"username": {"erin"}, "password": {"secret1"}, "next": {"//evil.example.com/"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	// вошедшего пользователя форма входа отправляет на главную
	rr = b2.get(t, "/login")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestWeb_UnknownSessionIsAnonymous(t *testing.T) {
	app := newTestApp(t)
	b := newBrowser(app)
	b.cookies["session_id"] = &http.Cookie{Name: "session_id", Value: "does-not-exist"}

	rr := b.get(t, "/items/create")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.NotContains(t, b.cookies, "session_id")
}

func TestWeb_OwnerOrAdmin(t *testing.T) {
	app := newTestApp(t)
	owner := newBrowser(app)
	owner.signUp(t, "frank")
	rr := owner.post(t, "/items/create", url.Values{"name": {"Chair"}, "description": {"Oak"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	itemPath := rr.Header().Get("Location")

	other := newBrowser(app)
	other.signUp(t, "grace")
	rr = other.get(t, itemPath+"/edit")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, itemPath, rr.Header().Get("Location"))
	rr = other.post(t, itemPath+"/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	rr = other.get(t, itemPath)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "permission")

	// категории создаёт только админ
	rr = other.get(t, "/categories/create")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = owner.post(t, itemPath+"/edit", url.Values{"name": {"Armchair"}, "description": {"Oak"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	rr = owner.get(t, itemPath)
	assert.Contains(t, rr.Body.String(), "Armchair")

	rr = owner.post(t, itemPath+"/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/items", rr.Header().Get("Location"))
	rr = owner.get(t, itemPath)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/items", rr.Header().Get("Location"))
}

func TestWeb_ProfileRequiresCurrentPassword(t *testing.T) {
	app := newTestApp(t)
	b := newBrowser(app)
	b.signUp(t, "heidi")

	rr := b.post(t, "/profile", url.Values{"username": {"heidi"}, "email": {"new@example.com"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Current password is incorrect.")

	rr = b.post(t, "/profile", url.Values{
		"username": {"heidi2"}, "email": {"new@example.com"}, "current_password": {"secret1"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/profile", rr.Header().Get("Location"))

	rr = b.get(t, "/profile")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "new@example.com")
	assert.Contains(t, rr.Body.String(), "heidi2")
}

func TestWeb_ItemListHugePageIsEmpty(t *testing.T) {
	b := newBrowser(newTestApp(t))
	b.signUp(t, "alice")
	rr := b.post(t, "/items/create", url.Values{"name": {"Lamp"}, "description": {"Desk lamp"}})
	require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())

	rr = b.get(t, "/items?page=1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), ">Lamp</a>")

	// (page-1)*10 для такого номера переполняет int
	rr = b.get(t, "/items?page=9223372036854775807")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), ">Lamp</a>")
	assert.Contains(t, rr.Body.String(), "Nothing found.")
}
