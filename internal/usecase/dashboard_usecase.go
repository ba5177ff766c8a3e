package usecase

import (
	"context"
	"fmt"

	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type DashboardCounts struct {
	PropertiesCount int64 `json:"propertiesCount"`
	InquiriesCount  int64 `json:"inquiriesCount"`
}

type DashboardUseCase struct {
	properties repository.PropertyRepository
	inquiries  repository.InquiryRepository
	logger     *zap.Logger
}

func NewDashboardUseCase(properties repository.PropertyRepository, inquiries repository.InquiryRepository, log *zap.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		properties: properties,
		inquiries:  inquiries,
		logger:     log.Named("DashboardUseCase"),
	}
}

// Counts runs both counts concurrently; the first failure cancels the other.
func (uc *DashboardUseCase) Counts(ctx context.Context) (*DashboardCounts, error) {
	var counts DashboardCounts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := uc.properties.CountActive(gctx)
		if err != nil {
			return fmt.Errorf("count properties: %w", err)
		}
		counts.PropertiesCount = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.inquiries.Count(gctx)
		if err != nil {
			return fmt.Errorf("count inquiries: %w", err)
		}
		counts.InquiriesCount = n
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.logger.Error("Failed to fetch dashboard counts", zap.Error(err))
		return nil, fmt.Errorf("DashboardUseCase.Counts: %w", err)
	}
	return &counts, nil
}
