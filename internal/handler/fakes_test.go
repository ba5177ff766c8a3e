package handler_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
)

type fakeGalleryRepo struct {
	mu     sync.Mutex
	seq    int
	images map[string]entity.GalleryImage
}

func newFakeGalleryRepo() *fakeGalleryRepo {
	return &fakeGalleryRepo{images: make(map[string]entity.GalleryImage)}
}

func (r *fakeGalleryRepo) Create(ctx context.Context, img *entity.GalleryImage) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *img
	if cp.ID == "" {
		r.seq++
		cp.ID = fmt.Sprintf("%024x", r.seq)
	}
	// Keep insertion order stable for newest-first listing.
	cp.CreatedAt = cp.CreatedAt.Add(time.Duration(r.seq) * time.Millisecond)
	r.images[cp.ID] = cp
	return cp.ID, nil
}

func (r *fakeGalleryRepo) GetByID(ctx context.Context, id string) (*entity.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &img, nil
}

func (r *fakeGalleryRepo) FindOneByCategory(ctx context.Context, category string) (*entity.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, img := range r.images {
		if img.Category == category {
			cp := img
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeGalleryRepo) List(ctx context.Context, category string) ([]*entity.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.GalleryImage{}
	for _, img := range r.images {
		if category == "" || img.Category == category {
			cp := img
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeGalleryRepo) Update(ctx context.Context, img *entity.GalleryImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.images[img.ID]; !ok {
		return repository.ErrNotFound
	}
	r.images[img.ID] = *img
	return nil
}

func (r *fakeGalleryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.images[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.images, id)
	return nil
}

type fakePropertyRepo struct {
	mu    sync.Mutex
	items map[string]entity.Property
}

func newFakePropertyRepo(seed ...entity.Property) *fakePropertyRepo {
	r := &fakePropertyRepo{items: make(map[string]entity.Property)}
	for _, p := range seed {
		r.items[p.ID] = p
	}
	return r
}

func (r *fakePropertyRepo) get(id string) entity.Property {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id]
}

func (r *fakePropertyRepo) Create(ctx context.Context, p *entity.Property) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := fmt.Sprintf("%024x", len(r.items)+1)
	cp := *p
	cp.ID = id
	r.items[id] = cp
	return id, nil
}

func (r *fakePropertyRepo) GetActiveByID(ctx context.Context, id string) (*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok || !p.IsActive() {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakePropertyRepo) ListActive(ctx context.Context, q entity.PropertyQuery) ([]*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Property{}
	for _, p := range r.items {
		if p.IsActive() {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) ListActiveWithImages(ctx context.Context) ([]*entity.Property, error) {
	all, _ := r.ListActive(ctx, entity.PropertyQuery{})
	out := []*entity.Property{}
	for _, p := range all {
		if len(p.Images) > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) Update(ctx context.Context, id string, u entity.PropertyUpdate) (*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok || !p.IsActive() {
		return nil, repository.ErrNotFound
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.Slug != nil {
		p.Slug = *u.Slug
	}
	if u.MetaTitle != nil {
		p.MetaTitle = *u.MetaTitle
	}
	if u.MetaDescription != nil {
		p.MetaDescription = *u.MetaDescription
	}
	if u.MetaTags != nil {
		p.MetaTags = *u.MetaTags
	}
	p.UpdatedAt = time.Now().UTC()
	r.items[id] = p
	return &p, nil
}

func (r *fakePropertyRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok || !p.IsActive() {
		return repository.ErrNotFound
	}
	p.IsStatus = entity.PropertyDeleted
	r.items[id] = p
	return nil
}

func (r *fakePropertyRepo) CountActive(ctx context.Context) (int64, error) {
	all, _ := r.ListActive(ctx, entity.PropertyQuery{})
	return int64(len(all)), nil
}

func (r *fakePropertyRepo) ListSlugs(ctx context.Context) ([]repository.SlugEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repository.SlugEntry
	for _, p := range r.items {
		if p.Slug != "" {
			out = append(out, repository.SlugEntry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
		}
	}
	return out, nil
}

type fakeBlogRepo struct{}

func (fakeBlogRepo) Create(ctx context.Context, post *entity.BlogPost) (string, error) {
	return "", repository.ErrDuplicateKey
}
func (fakeBlogRepo) GetByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	return nil, repository.ErrNotFound
}
func (fakeBlogRepo) GetBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	return nil, repository.ErrNotFound
}
func (fakeBlogRepo) List(ctx context.Context) ([]*entity.BlogPost, error) { return nil, nil }
func (fakeBlogRepo) Update(ctx context.Context, post *entity.BlogPost) error {
	return repository.ErrNotFound
}
func (fakeBlogRepo) Delete(ctx context.Context, id string) error { return repository.ErrNotFound }
func (fakeBlogRepo) ListSlugs(ctx context.Context) ([]repository.SlugEntry, error) {
	return []repository.SlugEntry{{Slug: "buying-guide", UpdatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}}, nil
}

type fakeInquiryRepo struct {
	mu    sync.Mutex
	items []*entity.Inquiry
}

func (r *fakeInquiryRepo) Create(ctx context.Context, in *entity.Inquiry) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *in
	cp.ID = fmt.Sprintf("%024x", len(r.items)+1)
	r.items = append(r.items, &cp)
	return cp.ID, nil
}
func (r *fakeInquiryRepo) List(ctx context.Context) ([]*entity.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.Inquiry(nil), r.items...), nil
}
func (r *fakeInquiryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, in := range r.items {
		if in.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
func (r *fakeInquiryRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

type fakeAdminRepo struct {
	admin *entity.Admin
}

func (r *fakeAdminRepo) Create(ctx context.Context, a *entity.Admin) (string, error) {
	return "", repository.ErrDuplicateKey
}
func (r *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	if r.admin == nil || r.admin.Email != email {
		return nil, repository.ErrNotFound
	}
	cp := *r.admin
	return &cp, nil
}
func (r *fakeAdminRepo) GetByID(ctx context.Context, id string) (*entity.Admin, error) {
	if r.admin == nil || r.admin.ID != id {
		return nil, repository.ErrNotFound
	}
	cp := *r.admin
	return &cp, nil
}
func (r *fakeAdminRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if r.admin == nil || r.admin.ID != id {
		return repository.ErrNotFound
	}
	r.admin.PasswordHash = passwordHash
	return nil
}
