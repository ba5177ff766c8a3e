package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/platform/metrics"
	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"go.uber.org/zap"
)

const inquiryNotifyTimeout = 30 * time.Second

type InquiryUseCase struct {
	repo      repository.InquiryRepository
	mailer    Mailer
	inbox     string
	publisher EventPublisher
	metrics   *metrics.MetricsManager
	logger    *zap.Logger
	pending   sync.WaitGroup
}

func NewInquiryUseCase(
	repo repository.InquiryRepository,
	mailer Mailer,
	inbox string,
	pub EventPublisher,
	m *metrics.MetricsManager,
	log *zap.Logger,
) *InquiryUseCase {
	return &InquiryUseCase{
		repo:      repo,
		mailer:    mailer,
		inbox:     inbox,
		publisher: pub,
		metrics:   m,
		logger:    log.Named("InquiryUseCase"),
	}
}

type ContactInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Subject     string
	Message     string
}

// Submit stores a contact-form inquiry. The inbox notification is sent in the
// background and never affects the result.
func (uc *InquiryUseCase) Submit(ctx context.Context, in ContactInput) (*entity.Inquiry, error) {
	inquiry := &entity.Inquiry{
		Name:        strings.TrimSpace(in.FullName),
		Email:       strings.TrimSpace(in.Email),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Subject:     strings.TrimSpace(in.Subject),
		Message:     strings.TrimSpace(in.Message),
		CreatedAt:   time.Now().UTC(),
	}
	if inquiry.Name == "" || inquiry.Email == "" || inquiry.PhoneNumber == "" || inquiry.Subject == "" {
		return nil, NewValidationError("All fields are required")
	}

	id, err := uc.repo.Create(ctx, inquiry)
	if err != nil {
		uc.logger.Error("Failed to store inquiry", zap.Error(err))
		return nil, fmt.Errorf("InquiryUseCase.Submit: %w", err)
	}
	inquiry.ID = id
	uc.metrics.InquiryCreated()

	publishEvent(ctx, uc.publisher, uc.logger, InquiryCreatedSubject, inquiry)

	if uc.mailer != nil && uc.inbox != "" {
		uc.pending.Add(1)
		go func() {
			defer uc.pending.Done()
			uc.notify(context.WithoutCancel(ctx), inquiry)
		}()
	}
	return inquiry, nil
}

func (uc *InquiryUseCase) notify(ctx context.Context, in *entity.Inquiry) {
	ctx, cancel := context.WithTimeout(ctx, inquiryNotifyTimeout)
	defer cancel()

	body := fmt.Sprintf(
		"New inquiry received\n\nName: %s\nEmail: %s\nPhone: %s\nSubject: %s\n\nMessage:\n%s\n",
		in.Name, in.Email, in.PhoneNumber, in.Subject, in.Message,
	)
	if err := uc.mailer.Send(ctx, []string{uc.inbox}, "New Inquiry: "+in.Subject, body); err != nil {
		uc.logger.Warn("Failed to send inquiry notification", zap.String("inquiry_id", in.ID), zap.Error(err))
	}
}

// Wait blocks until background notifications have finished.
func (uc *InquiryUseCase) Wait() {
	uc.pending.Wait()
}

func (uc *InquiryUseCase) List(ctx context.Context) ([]*entity.Inquiry, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list inquiries", zap.Error(err))
		return nil, fmt.Errorf("InquiryUseCase.List: %w", err)
	}
	return items, nil
}

func (uc *InquiryUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to delete inquiry", zap.String("id", id), zap.Error(err))
		}
		return fmt.Errorf("InquiryUseCase.Delete: %w", err)
	}
	return nil
}
