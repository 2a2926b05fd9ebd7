package routes

import (
	"log/slog"
	"net/http"

	"inkwell/app/config"
	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// Services bundles the services behind the API.
type Services struct {
	Auth       *services.AuthService
	Posts      *services.PostService
	Comments   *services.CommentService
	Categories *services.CategoryService
}

// NewServices wires the services to the repositories of store.
func NewServices(store *repositories.Store, cfg *config.Config, logger *slog.Logger) *Services {
	users := store.Users()
	categories := store.Categories()
	posts := store.Posts()

	return &Services{
		Auth: services.NewAuthService(users, services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpire), services.AuthOptions{
			BcryptCost:  cfg.BcryptCost,
			AdminEmails: cfg.AdminEmails,
			Logger:      logger,
		}),
		Posts: services.NewPostService(posts, users, categories, services.PostOptions{
			DefaultPageSize: cfg.DefaultPageSize,
			MaxPageSize:     cfg.MaxPageSize,
			Logger:          logger,
		}),
		Comments:   services.NewCommentService(posts, users, categories, logger),
		Categories: services.NewCategoryService(categories),
	}
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(svc *Services, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.ContentTypeJSON)

	protect := middleware.RequireAuth(svc.Auth, logger)
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return protect(middleware.RequireRole(models.RoleAdmin)(h))
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return protect(h)
	}

	authController := controllers.NewAuthController(svc.Auth, logger)
	postController := controllers.NewPostController(svc.Posts, logger)
	commentController := controllers.NewCommentController(svc.Comments, logger)
	categoryController := controllers.NewCategoryController(svc.Categories, logger)

	api := router.PathPrefix("/api").Subrouter()

	// Auth endpoints
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authController.Register).Methods("POST")
	auth.HandleFunc("/login", authController.Login).Methods("POST")
	auth.Handle("/me", authed(authController.Me)).Methods("GET")
	auth.Handle("/updatedetails", authed(authController.UpdateDetails)).Methods("PUT")
	auth.Handle("/updatepassword", authed(authController.UpdatePassword)).Methods("PUT")

	// Posts API endpoints
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.Handle("", authed(postController.Create)).Methods("POST")
	posts.HandleFunc("/author/{id}", postController.ByAuthor).Methods("GET")
	posts.HandleFunc("/{id}", postController.Show).Methods("GET")
	posts.Handle("/{id}", authed(postController.Update)).Methods("PUT")
	posts.Handle("/{id}", authed(postController.Delete)).Methods("DELETE")

	// Comments API endpoints
	posts.HandleFunc("/{id}/comments", commentController.Index).Methods("GET")
	posts.Handle("/{id}/comments", authed(commentController.Create)).Methods("POST")
	posts.Handle("/{id}/comments/{commentId}", authed(commentController.Delete)).Methods("DELETE")

	// Categories API endpoints
	categories := api.PathPrefix("/categories").Subrouter()
	categories.HandleFunc("", categoryController.Index).Methods("GET")
	categories.Handle("", authed(categoryController.Create)).Methods("POST")
	categories.HandleFunc("/{id}", categoryController.Show).Methods("GET")
	categories.Handle("/{id}", adminOnly(categoryController.Update)).Methods("PUT")
	categories.Handle("/{id}", adminOnly(categoryController.Delete)).Methods("DELETE")

	return router
}
