package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type SitemapEntry struct {
	Path       string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

var staticSitemapEntries = []SitemapEntry{
	{Path: "/", ChangeFreq: "daily", Priority: 1.0},
	{Path: "/about-us", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/contact", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/blog", ChangeFreq: "daily", Priority: 0.9},
	{Path: "/gallery", ChangeFreq: "monthly", Priority: 0.6},
}

type SitemapUseCase struct {
	blogs      repository.BlogRepository
	properties repository.PropertyRepository
	logger     *zap.Logger
}

func NewSitemapUseCase(blogs repository.BlogRepository, properties repository.PropertyRepository, log *zap.Logger) *SitemapUseCase {
	return &SitemapUseCase{blogs: blogs, properties: properties, logger: log.Named("SitemapUseCase")}
}

func (uc *SitemapUseCase) Entries(ctx context.Context) ([]SitemapEntry, error) {
	var blogSlugs, propertySlugs []repository.SlugEntry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		blogSlugs, err = uc.blogs.ListSlugs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		propertySlugs, err = uc.properties.ListSlugs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("Failed to collect sitemap slugs", zap.Error(err))
		return nil, fmt.Errorf("SitemapUseCase.Entries: %w", err)
	}

	entries := make([]SitemapEntry, 0, len(staticSitemapEntries)+len(blogSlugs)+len(propertySlugs))
	entries = append(entries, staticSitemapEntries...)
	for _, s := range blogSlugs {
		entries = append(entries, SitemapEntry{Path: "/blog/" + s.Slug, LastMod: s.UpdatedAt, ChangeFreq: "weekly", Priority: 0.8})
	}
	for _, s := range propertySlugs {
		entries = append(entries, SitemapEntry{Path: "/property/" + s.Slug, LastMod: s.UpdatedAt, ChangeFreq: "weekly", Priority: 0.9})
	}
	return entries, nil
}
