package handlers

import (
	"net/http"

	"Catalog/internal/auth"
	"Catalog/internal/config"
	"Catalog/internal/middleware"
	"Catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services - зависимости роутера.
type Services struct {
	Users      *service.UserService
	Items      *service.ItemService
	Categories *service.CategoryService
	Tags       *service.TagService
	Sessions   *service.SessionService
	Tokens     *auth.TokenService
}

// NewHandler разводящий для хендлеров: JSON API под /api и HTML страницы.
func NewHandler(
	svc Services,
	logger *zap.SugaredLogger,
	config *config.Config,
) (*Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	// Handlers
	authHandler := NewAuthHandler(svc.Users, svc.Tokens, logger)
	userHandler := NewUserHandler(svc.Users, logger)
	itemHandler := NewItemHandler(svc.Items, logger)
	categoryHandler := NewCategoryHandler(svc.Categories, logger)
	tagHandler := NewTagHandler(svc.Tags, logger)
	webHandler, err := NewWebHandler(svc.Users, svc.Items, svc.Categories, svc.Tags, svc.Sessions, logger, config.EnableHTTPS)
	if err != nil {
		return nil, err
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.WithAuth(svc.Tokens))
		authed := middleware.RequireAuth(svc.Users)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeErrorMessage(w, http.StatusNotFound, "Not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			writeErrorMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		})

		// Auth routes
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)

		// User routes
		r.With(authed, middleware.RequireAdmin).Get("/users", userHandler.List)
		r.With(authed).Get("/users/{id}", userHandler.Get)
		r.With(authed).Put("/users/{id}", userHandler.Update)
		r.With(authed, middleware.RequireAdmin).Delete("/users/{id}", userHandler.Delete)

		// Item routes
		r.Get("/items", itemHandler.List)
		r.Get("/items/{id}", itemHandler.Get)
		r.Get("/items/uuid/{uuid}", itemHandler.GetByUUID)
		r.With(authed).Post("/items", itemHandler.Create)
		r.With(authed).Put("/items/{id}", itemHandler.Update)
		r.With(authed).Delete("/items/{id}", itemHandler.Delete)

		// Category routes
		r.Get("/categories", categoryHandler.List)
		r.Get("/categories/{id}", categoryHandler.Get)
		r.With(authed, middleware.RequireAdmin).Post("/categories", categoryHandler.Create)
		r.With(authed, middleware.RequireAdmin).Put("/categories/{id}", categoryHandler.Update)
		r.With(authed, middleware.RequireAdmin).Delete("/categories/{id}", categoryHandler.Delete)

		// Tag routes
		r.Get("/tags", tagHandler.List)
		r.Get("/tags/{id}", tagHandler.Get)
		r.With(authed).Post("/tags", tagHandler.Create)
		r.With(authed, middleware.RequireAdmin).Put("/tags/{id}", tagHandler.Rename)
		r.With(authed, middleware.RequireAdmin).Delete("/tags/{id}", tagHandler.Delete)
	})

	// Web pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.WithSession(svc.Sessions, svc.Users))

		r.Get("/", webHandler.Index)
		r.Get("/login", webHandler.LoginForm)
		r.Post("/login", webHandler.Login)
		r.Get("/register", webHandler.RegisterForm)
		r.Post("/register", webHandler.Register)
		r.Get("/logout", webHandler.Logout)
		r.Get("/items", webHandler.ItemList)
		r.Get("/items/{id:[0-9]+}", webHandler.ItemView)
		r.Get("/categories", webHandler.CategoryList)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLogin)
			r.Get("/items/create", webHandler.CreateItemForm)
			r.Post("/items/create", webHandler.CreateItem)
			r.Get("/items/{id:[0-9]+}/edit", webHandler.EditItemForm)
			r.Post("/items/{id:[0-9]+}/edit", webHandler.EditItem)
			r.Post("/items/{id:[0-9]+}/delete", webHandler.DeleteItem)
			r.Get("/profile", webHandler.Profile)
			r.Post("/profile", webHandler.UpdateProfile)
			r.With(middleware.RequireAdminPage).Get("/categories/create", webHandler.CreateCategoryForm)
			r.With(middleware.RequireAdminPage).Post("/categories/create", webHandler.CreateCategory)
		})
	})

	return &Handler{Router: r}, nil
}
