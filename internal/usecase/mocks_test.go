package usecase

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"github.com/stretchr/testify/mock"
)

type MockPropertyRepository struct{ mock.Mock }

func (m *MockPropertyRepository) Create(ctx context.Context, p *entity.Property) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}
func (m *MockPropertyRepository) GetActiveByID(ctx context.Context, id string) (*entity.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Property), args.Error(1)
}
func (m *MockPropertyRepository) ListActive(ctx context.Context, q entity.PropertyQuery) ([]*entity.Property, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Property), args.Error(1)
}
func (m *MockPropertyRepository) ListActiveWithImages(ctx context.Context) ([]*entity.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Property), args.Error(1)
}
func (m *MockPropertyRepository) Update(ctx context.Context, id string, u entity.PropertyUpdate) (*entity.Property, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Property), args.Error(1)
}
func (m *MockPropertyRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPropertyRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPropertyRepository) ListSlugs(ctx context.Context) ([]repository.SlugEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SlugEntry), args.Error(1)
}

type MockBlogRepository struct{ mock.Mock }

func (m *MockBlogRepository) Create(ctx context.Context, post *entity.BlogPost) (string, error) {
	args := m.Called(ctx, post)
	return args.String(0), args.Error(1)
}
func (m *MockBlogRepository) GetByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BlogPost), args.Error(1)
}
func (m *MockBlogRepository) GetBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BlogPost), args.Error(1)
}
func (m *MockBlogRepository) List(ctx context.Context) ([]*entity.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BlogPost), args.Error(1)
}
func (m *MockBlogRepository) Update(ctx context.Context, post *entity.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}
func (m *MockBlogRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBlogRepository) ListSlugs(ctx context.Context) ([]repository.SlugEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SlugEntry), args.Error(1)
}

type MockAdminRepository struct{ mock.Mock }

func (m *MockAdminRepository) Create(ctx context.Context, a *entity.Admin) (string, error) {
	args := m.Called(ctx, a)
	return args.String(0), args.Error(1)
}
func (m *MockAdminRepository) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Admin), args.Error(1)
}
func (m *MockAdminRepository) GetByID(ctx context.Context, id string) (*entity.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Admin), args.Error(1)
}
func (m *MockAdminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

type MockInquiryRepository struct{ mock.Mock }

func (m *MockInquiryRepository) Create(ctx context.Context, in *entity.Inquiry) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}
func (m *MockInquiryRepository) List(ctx context.Context) ([]*entity.Inquiry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Inquiry), args.Error(1)
}
func (m *MockInquiryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockInquiryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
func (m *MockCacheRepository) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
func (m *MockCacheRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, payload any) error {
	args := m.Called(ctx, subject, payload)
	return args.Error(0)
}

// recordingMailer captures sent mail for assertions.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	To      []string
	Subject string
	Body    string
}

func (r *recordingMailer) Send(ctx context.Context, to []string, subject, bodyText string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMail{To: to, Subject: subject, Body: bodyText})
	return r.err
}

func (r *recordingMailer) messages() []sentMail {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sentMail, len(r.sent))
	copy(out, r.sent)
	return out
}

func newUpload(name, contentType string, data []byte) UploadFile {
	return UploadFile{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}
