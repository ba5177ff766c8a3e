package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/usecase"
	"go.uber.org/zap"
)

type BlogHandler struct {
	uc     *usecase.BlogUseCase
	logger *zap.Logger
}

func NewBlogHandler(uc *usecase.BlogUseCase, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{uc: uc, logger: logger.Named("BlogHandler")}
}

type blogRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Slug            string `json:"slug"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords"`
}

func (b blogRequest) toInput() usecase.BlogInput {
	return usecase.BlogInput(b)
}

func blogInputFromForm(r *http.Request) usecase.BlogInput {
	return usecase.BlogInput{
		Title:           formValue(r, "title"),
		Description:     r.FormValue("description"),
		Slug:            formValue(r, "slug"),
		MetaTitle:       formValue(r, "metaTitle"),
		MetaDescription: formValue(r, "metaDescription"),
		MetaKeywords:    formValue(r, "metaKeywords"),
	}
}

func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r); err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	image, err := formFile(r, "image")
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}

	post, err := h.uc.CreatePost(r.Context(), blogInputFromForm(r), image)
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Blog created successfully",
		"blog":    post,
	})
}

func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	posts, err := h.uc.ListPosts(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	if posts == nil {
		posts = []*entity.BlogPost{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"blogs": posts})
}

func (h *BlogHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	post, err := h.uc.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err, "Blog not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blog": post})
}

// UpdateBlog accepts multipart (optionally with a new image) or JSON.
func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	var (
		in    usecase.BlogInput
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
		in = blogInputFromForm(r)
	} else {
		var req blogRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, h.logger, err, "")
			return
		}
		in = req.toInput()
	}

	post, err := h.uc.UpdatePost(r.Context(), chi.URLParam(r, "id"), in, image)
	if err != nil {
		writeError(w, h.logger, err, "Blog not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Blog updated successfully",
		"blog":    post,
	})
}

func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err, "Blog not found.")
		return
	}
	writeMessage(w, http.StatusOK, "Blog deleted successfully.")
}
