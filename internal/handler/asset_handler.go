package handler

import (
	"errors"
	"net/http"

	"github.com/sachin24864/RealEstate-Website/internal/port/storage"
	"go.uber.org/zap"
)

// AssetHandler serves stored uploads from whichever store is configured.
type AssetHandler struct {
	store  storage.AssetStore
	logger *zap.Logger
}

func NewAssetHandler(store storage.AssetStore, logger *zap.Logger) *AssetHandler {
	return &AssetHandler{store: store, logger: logger.Named("AssetHandler")}
}

func (h *AssetHandler) Serve(w http.ResponseWriter, r *http.Request) {
	obj, err := h.store.Open(r.Context(), r.URL.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidPath) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("Failed to open asset", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(w, r, r.URL.Path, obj.ModTime, obj.Body)
}
