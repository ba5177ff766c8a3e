package usecase

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/port/cache"
	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestGenerateQueryCacheKey_IsOrderIndependent(t *testing.T) {
	a := generateQueryCacheKey("properties:list", map[string]string{"city": "gurgaon", "type": "residential"})
	b := generateQueryCacheKey("properties:list", map[string]string{"type": "residential", "city": "gurgaon"})
	c := generateQueryCacheKey("properties:list", map[string]string{"city": "noida", "type": "residential"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "properties:list:")
}

func TestPropertyUseCase_CreateProperty(t *testing.T) {
	ctx := context.Background()
	store, root := newTestDiskStore(t)
	repo := new(MockPropertyRepository)
	pub := new(MockEventPublisher)
	uc := NewPropertyUseCase(repo, NewAssetManager(store, nil, zap.NewNop()), nil, pub, time.Minute, zap.NewNop())

	repo.On("Create", ctx, mock.MatchedBy(func(p *entity.Property) bool {
		return p.Title == "Villa" && p.IsStatus == entity.PropertyActive && p.Unit == entity.DefaultAreaUnit && len(p.Images) == 2
	})).Return("665f1c2e9b1e8a3d4c2b1a00", nil).Once()
	pub.On("Publish", ctx, PropertyCreatedSubject, mock.Anything).Return(nil).Once()

	p, err := uc.CreateProperty(ctx, CreatePropertyInput{
		Title:        " Villa ",
		Price:        floatPtr(12000000),
		Location:     "Sector 54, Gurgaon",
		PropertyType: "Residential",
		Status:       "Ready to Move",
	}, []UploadFile{
		newUpload("a.jpg", "image/jpeg", []byte("a")),
		newUpload("b.png", "image/png", []byte("b")),
	})
	require.NoError(t, err)
	assert.Equal(t, "665f1c2e9b1e8a3d4c2b1a00", p.ID)
	for _, img := range p.Images {
		assert.True(t, fileExists(diskPath(root, img)))
	}
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestPropertyUseCase_CreatePropertyValidation(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestDiskStore(t)
	repo := new(MockPropertyRepository)
	uc := NewPropertyUseCase(repo, NewAssetManager(store, nil, zap.NewNop()), nil, nil, 0, zap.NewNop())

	_, err := uc.CreateProperty(ctx, CreatePropertyInput{Title: "No price", Location: "x", PropertyType: "Commercial", Status: "New"}, nil)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "price")

	_, err = uc.CreateProperty(ctx, CreatePropertyInput{Title: "Neg", Price: floatPtr(-1), Location: "x", PropertyType: "Commercial", Status: "New"}, nil)
	assert.True(t, IsValidationError(err))

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPropertyUseCase_CreatePropertyDiscardsImagesOnRepoFailure(t *testing.T) {
	ctx := context.Background()
	store, root := newTestDiskStore(t)
	repo := new(MockPropertyRepository)
	uc := NewPropertyUseCase(repo, NewAssetManager(store, nil, zap.NewNop()), nil, nil, 0, zap.NewNop())

	repo.On("Create", ctx, mock.Anything).Return("", repository.ErrDuplicateKey).Once()

	_, err := uc.CreateProperty(ctx, CreatePropertyInput{
		Title: "Dup", Price: floatPtr(1), Location: "x", PropertyType: "Commercial", Status: "New",
	}, []UploadFile{newUpload("a.jpg", "image/jpeg", []byte("a"))})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	entries, readErr := os.ReadDir(diskPath(root, "/uploads/properties"))
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestPropertyUseCase_UpdateStatusOnly(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPropertyRepository)
	cr := new(MockCacheRepository)
	uc := NewPropertyUseCase(repo, nil, cr, nil, time.Minute, zap.NewNop())

	id := "665f1c2e9b1e8a3d4c2b1a01"
	updated := &entity.Property{ID: id, Title: "Plot", Price: 500, Status: "Sold", IsStatus: entity.PropertyActive}
	repo.On("Update", ctx, id, mock.MatchedBy(func(u entity.PropertyUpdate) bool {
		return u.Price == nil && u.Status != nil && *u.Status == "Sold" && u.Slug == nil && u.MetaTags == nil
	})).Return(updated, nil).Once()
	cr.On("Delete", ctx, []string{"property:" + id}).Return(nil).Once()
	cr.On("DeleteByPrefix", ctx, propertyListCacheKeyPrefix).Return(nil).Once()
	cr.On("Delete", ctx, []string{propertyPicturesCacheKey}).Return(nil).Once()

	p, err := uc.UpdateProperty(ctx, id, entity.PropertyUpdate{Status: strPtr(" Sold ")})
	require.NoError(t, err)
	assert.Equal(t, "Sold", p.Status)
	assert.Equal(t, 500.0, p.Price)
	repo.AssertExpectations(t)
	cr.AssertExpectations(t)
}

func TestPropertyUseCase_UpdateRejectsNegativePrice(t *testing.T) {
	repo := new(MockPropertyRepository)
	uc := NewPropertyUseCase(repo, nil, nil, nil, 0, zap.NewNop())

	_, err := uc.UpdateProperty(context.Background(), "x", entity.PropertyUpdate{Price: floatPtr(-5)})
	assert.True(t, IsValidationError(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestPropertyUseCase_DeletedPropertyIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPropertyRepository)
	uc := NewPropertyUseCase(repo, nil, nil, nil, 0, zap.NewNop())

	id := "665f1c2e9b1e8a3d4c2b1a02"
	repo.On("SoftDelete", ctx, id).Return(nil).Once()
	repo.On("GetActiveByID", ctx, id).Return(nil, repository.ErrNotFound).Once()

	require.NoError(t, uc.DeleteProperty(ctx, id))
	_, err := uc.GetProperty(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestPropertyUseCase_GetPropertyUsesCache(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPropertyRepository)
	cr := new(MockCacheRepository)
	uc := NewPropertyUseCase(repo, nil, cr, nil, time.Minute, zap.NewNop())

	cachedProp := entity.Property{ID: "abc", Title: "Cached", Images: []string{"/uploads/properties/a.jpg"}}
	data, err := json.Marshal(cachedProp)
	require.NoError(t, err)
	cr.On("Get", ctx, "property:abc").Return(data, nil).Once()

	p, err := uc.GetProperty(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Cached", p.Title)
	repo.AssertNotCalled(t, "GetActiveByID", mock.Anything, mock.Anything)
}

func TestPropertyUseCase_ListPropertiesFillsCacheOnMiss(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPropertyRepository)
	cr := new(MockCacheRepository)
	uc := NewPropertyUseCase(repo, nil, cr, nil, time.Minute, zap.NewNop())

	q := entity.NewPropertyQuery("gurgaon", "", "Residential,Commercial")
	key := generateQueryCacheKey(propertyListCacheKeyPrefix, q.CacheKeyParams())
	list := []*entity.Property{{ID: "1", Title: "A"}}

	cr.On("Get", ctx, key).Return(nil, cache.ErrNotFound).Once()
	repo.On("ListActive", ctx, q).Return(list, nil).Once()
	cr.On("Set", ctx, key, mock.Anything, time.Minute).Return(nil).Once()

	got, err := uc.ListProperties(ctx, q)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	repo.AssertExpectations(t)
	cr.AssertExpectations(t)
}
