package handler

import (
	"net/http"

	"github.com/sachin24864/RealEstate-Website/internal/usecase"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	uc     *usecase.DashboardUseCase
	logger *zap.Logger
}

func NewDashboardHandler(uc *usecase.DashboardUseCase, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, logger: logger.Named("DashboardHandler")}
}

func (h *DashboardHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	counts, err := h.uc.Counts(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Counts fetched successfully",
		"data":    counts,
	})
}
