package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/usecase"
	"go.uber.org/zap"
)

type GalleryHandler struct {
	uc     *usecase.GalleryUseCase
	logger *zap.Logger
}

func NewGalleryHandler(uc *usecase.GalleryUseCase, logger *zap.Logger) *GalleryHandler {
	return &GalleryHandler{uc: uc, logger: logger.Named("GalleryHandler")}
}

func (h *GalleryHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r); err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	image, err := formFile(r, "image")
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}

	img, err := h.uc.CreateImage(r.Context(), usecase.CreateGalleryImageInput{
		Title:       formValue(r, "title"),
		Description: r.FormValue("description"),
		Category:    formValue(r, "category"),
	}, image)
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Image uploaded successfully",
		"image":   img,
	})
}

func (h *GalleryHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.uc.ListImages(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	if images == nil {
		images = []*entity.GalleryImage{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"images": images})
}

// UpdateImage accepts multipart (optionally with a new image) or JSON.
func (h *GalleryHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	var (
		in    usecase.UpdateGalleryImageInput
		image *usecase.UploadFile
	)
	if isMultipart(r) {
		if err := parseMultipart(w, r); err != nil {
			writeError(w, h.logger, err, "")
			return
		}
		var err error
		if image, err = formFile(r, "image"); err != nil {
			writeError(w, h.logger, err, "")
			return
		}
		in = usecase.UpdateGalleryImageInput{
			Title:       formValue(r, "title"),
			Description: r.FormValue("description"),
			Category:    formValue(r, "category"),
		}
	} else {
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Category    string `json:"category"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, h.logger, err, "")
			return
		}
		in = usecase.UpdateGalleryImageInput{Title: req.Title, Description: req.Description, Category: req.Category}
	}

	img, err := h.uc.UpdateImage(r.Context(), chi.URLParam(r, "id"), in, image)
	if err != nil {
		writeError(w, h.logger, err, "Image not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Image updated successfully",
		"image":   img,
	})
}

func (h *GalleryHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteImage(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err, "Image not found.")
		return
	}
	writeMessage(w, http.StatusOK, "Image deleted successfully.")
}
