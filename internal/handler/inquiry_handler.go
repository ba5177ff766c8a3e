package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/usecase"
	"go.uber.org/zap"
)

type InquiryHandler struct {
	uc     *usecase.InquiryUseCase
	logger *zap.Logger
}

func NewInquiryHandler(uc *usecase.InquiryUseCase, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{uc: uc, logger: logger.Named("InquiryHandler")}
}

type contactRequest struct {
	FullName    string `json:"FullName"`
	Email       string `json:"Email"`
	PhoneNumber string `json:"Phone_number"`
	Subject     string `json:"Subject"`
	Message     string `json:"Message"`
}

type inquiryView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

func toInquiryView(in *entity.Inquiry) inquiryView {
	return inquiryView{
		ID:          in.ID,
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Subject:     in.Subject,
		Message:     in.Message,
		CreatedAt:   in.CreatedAt,
	}
}

func (h *InquiryHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err, "")
		return
	}

	inquiry, err := h.uc.Submit(r.Context(), usecase.ContactInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Subject:     req.Subject,
		Message:     req.Message,
	})
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Message sent successfully",
		"inquiry": toInquiryView(inquiry),
	})
}

func (h *InquiryHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.uc.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	views := make([]inquiryView, 0, len(inquiries))
	for _, in := range inquiries {
		views = append(views, toInquiryView(in))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *InquiryHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err, "User not found")
		return
	}
	writeMessage(w, http.StatusOK, "User deleted successfully")
}
