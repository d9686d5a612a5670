package handlers

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"Catalog/internal/middleware"
	"Catalog/internal/model"
	"Catalog/internal/service"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	itemsPerPage = 10
	maxPage      = 1_000_000
	indexItems   = 5
	flashCookie  = "flash"
)

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"hasID": func(ids []int64, id int64) bool {
		for _, v := range ids {
			if v == id {
				return true
			}
		}
		return false
	},
}

// WebHandler - серверные HTML страницы поверх тех же сервисов, что и API.
type WebHandler struct {
	UserService     *service.UserService
	ItemService     *service.ItemService
	CategoryService *service.CategoryService
	TagService      *service.TagService
	SessionService  *service.SessionService
	Logger          *zap.SugaredLogger
	// SecureCookies - cookie сессии только по HTTPS.
	SecureCookies bool

	pages map[string]*template.Template
}

func NewWebHandler(
	users *service.UserService,
	items *service.ItemService,
	categories *service.CategoryService,
	tags *service.TagService,
	sessions *service.SessionService,
	logger *zap.SugaredLogger,
	secureCookies bool,
) (*WebHandler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &WebHandler{
		UserService:     users,
		ItemService:     items,
		CategoryService: categories,
		TagService:      tags,
		SessionService:  sessions,
		Logger:          logger,
		SecureCookies:   secureCookies,
		pages:           pages,
	}, nil
}

func parsePages() (map[string]*template.Template, error) {
	names := []string{
		"index", "login", "register", "items", "item", "item_form",
		"categories", "category_form", "profile",
	}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := template.New(name).Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

type flash struct {
	Kind    string
	Message string
}

type pageData struct {
	Title  string
	User   *model.User
	Flash  *flash
	Errors []string
	Data   any
}

// setFlash сохраняет одноразовое сообщение до следующей страницы.
func setFlash(w http.ResponseWriter, kind, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + ":" + msg),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func popFlash(w http.ResponseWriter, r *http.Request) *flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] == ':' {
			return &flash{Kind: raw[:i], Message: raw[i+1:]}
		}
	}
	return &flash{Kind: "info", Message: raw}
}

func (h *WebHandler) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any, errs ...string) {
	t, ok := h.pages[page]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}
	user, _ := middleware.UserFromContext(r.Context())
	pd := pageData{
		Title:  title,
		User:   user,
		Flash:  popFlash(w, r),
		Errors: errs,
		Data:   data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", pd); err != nil {
		h.Logger.Errorw("render template", "page", page, "error", err)
	}
}

func (h *WebHandler) redirect(w http.ResponseWriter, r *http.Request, to, kind, msg string) {
	if msg != "" {
		setFlash(w, kind, msg)
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// formError переводит ошибку сервиса в статус и список сообщений для формы.
func (h *WebHandler) formError(err error) (int, []string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Messages
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, []string{capitalize(err.Error())}
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, []string{capitalize(err.Error())}
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, []string{"You do not have permission to do that."}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, []string{capitalize(err.Error())}
	default:
		h.Logger.Errorw("web request failed", "error", err)
		return http.StatusInternalServerError, []string{"Something went wrong."}
	}
}

func formInt64(v string) int64 {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func formIDs(values []string) []int64 {
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		if id := formInt64(v); id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
