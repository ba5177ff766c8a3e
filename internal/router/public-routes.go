package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/sachin24864/RealEstate-Website/internal/handler"
)

// SetupPublicRoutes configures the visitor-facing site API.
func SetupPublicRoutes(r *chi.Mux, propertyHandler *handler.PropertyHandler, inquiryHandler *handler.InquiryHandler) {
	r.Route("/api/user", func(r chi.Router) {
		r.Get("/properties", propertyHandler.ListProperties)
		r.Get("/properties/{id}", propertyHandler.GetProperty)
		r.Get("/pic", propertyHandler.ListPictures)
		r.Post("/contact", inquiryHandler.Contact)
	})
}
