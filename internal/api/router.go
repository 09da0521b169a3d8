package api

import (
	"net/http"

	_ "contacts/docs"
	"contacts/internal/contact/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(contactHandler *handler.Handler, allowedOrigins []string) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(RequestLogger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/contacts", func(r chi.Router) {
		r.Get("/", contactHandler.ListContacts)
		r.Post("/", contactHandler.CreateContact)
		r.Get("/{id}", contactHandler.GetContact)
		r.Put("/{id}", contactHandler.UpdateContact)
		r.Delete("/{id}", contactHandler.DeleteContact)
	})
	return router
}
