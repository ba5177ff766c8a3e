package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupAdminRoutes configures the admin panel API. Blog and gallery reads
// stay public because the site renders them.
func SetupAdminRoutes(r *chi.Mux, h Handlers, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/blog", h.Blog.ListBlogs)
		r.Get("/blog/{id}", h.Blog.GetBlog)
		r.Get("/gallery", h.Gallery.ListImages)

		r.Group(func(authRouter chi.Router) {
			authRouter.Use(requireAuth)

			authRouter.Post("/properties", h.Property.CreateProperty)
			authRouter.Put("/properties/{id}", h.Property.EditProperty)
			authRouter.Delete("/properties/{id}", h.Property.DeleteProperty)
			authRouter.Get("/count", h.Dashboard.GetCount)

			authRouter.Get("/users", h.Inquiry.ListUsers)
			authRouter.Delete("/users/{id}", h.Inquiry.DeleteUser)

			authRouter.Post("/blog", h.Blog.CreateBlog)
			authRouter.Put("/blog/{id}", h.Blog.UpdateBlog)
			authRouter.Delete("/blog/{id}", h.Blog.DeleteBlog)

			authRouter.Post("/gallery", h.Gallery.UploadImage)
			authRouter.Put("/gallery/{id}", h.Gallery.UpdateImage)
			authRouter.Delete("/gallery/{id}", h.Gallery.DeleteImage)
		})
	})
}
