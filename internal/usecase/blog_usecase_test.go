package usecase

import (
	"context"
	"os"
	"testing"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBlogUseCase_CreatePostDefaultsSlug(t *testing.T) {
	ctx := context.Background()
	store, root := newTestDiskStore(t)
	repo := new(MockBlogRepository)
	uc := NewBlogUseCase(repo, NewAssetManager(store, nil, zap.NewNop()), nil, zap.NewNop())

	repo.On("Create", ctx, mock.MatchedBy(func(p *entity.BlogPost) bool {
		return p.Slug == "top-5-localities-in-gurgaon" && p.Image != ""
	})).Return("665f1c2e9b1e8a3d4c2b1b00", nil).Once()

	post, err := uc.CreatePost(ctx, BlogInput{Title: "Top 5 Localities in Gurgaon!", Description: "<p>body</p>"}, ptrUpload(newUpload("cover.jpg", "image/jpeg", []byte("c"))))
	require.NoError(t, err)
	assert.Equal(t, "665f1c2e9b1e8a3d4c2b1b00", post.ID)
	assert.True(t, fileExists(diskPath(root, post.Image)))
	repo.AssertExpectations(t)
}

func TestBlogUseCase_CreatePostRequiresImage(t *testing.T) {
	repo := new(MockBlogRepository)
	uc := NewBlogUseCase(repo, nil, nil, zap.NewNop())

	_, err := uc.CreatePost(context.Background(), BlogInput{Title: "T", Description: "D"}, nil)
	assert.True(t, IsValidationError(err))
}

func TestBlogUseCase_CreatePostDuplicateSlugDiscardsImage(t *testing.T) {
	ctx := context.Background()
	store, root := newTestDiskStore(t)
	repo := new(MockBlogRepository)
	uc := NewBlogUseCase(repo, NewAssetManager(store, nil, zap.NewNop()), nil, zap.NewNop())

	repo.On("Create", ctx, mock.Anything).Return("", repository.ErrDuplicateKey).Once()

	_, err := uc.CreatePost(ctx, BlogInput{Title: "Same", Description: "D"}, ptrUpload(newUpload("c.jpg", "image/jpeg", []byte("c"))))
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	entries, readErr := os.ReadDir(diskPath(root, "/uploads/blogs"))
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestBlogUseCase_GetPostByIDOrSlug(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBlogRepository)
	uc := NewBlogUseCase(repo, nil, nil, zap.NewNop())

	byID := &entity.BlogPost{ID: "665f1c2e9b1e8a3d4c2b1b01", Title: "By ID"}
	bySlug := &entity.BlogPost{ID: "665f1c2e9b1e8a3d4c2b1b02", Title: "By slug", Slug: "by-slug"}
	repo.On("GetByID", ctx, byID.ID).Return(byID, nil).Once()
	repo.On("GetBySlug", ctx, "by-slug").Return(bySlug, nil).Once()
	repo.On("GetBySlug", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

	got, err := uc.GetPost(ctx, byID.ID)
	require.NoError(t, err)
	assert.Equal(t, "By ID", got.Title)

	got, err = uc.GetPost(ctx, "by-slug")
	require.NoError(t, err)
	assert.Equal(t, "By slug", got.Title)

	_, err = uc.GetPost(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestBlogUseCase_DeleteWithMissingFileSucceeds(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestDiskStore(t)
	repo := new(MockBlogRepository)
	pub := new(MockEventPublisher)
	uc := NewBlogUseCase(repo, NewAssetManager(store, nil, zap.NewNop()), pub, zap.NewNop())

	id := "665f1c2e9b1e8a3d4c2b1b03"
	repo.On("GetByID", ctx, id).Return(&entity.BlogPost{ID: id, Image: "public\\uploads\\blogs\\gone.jpg"}, nil).Once()
	repo.On("Delete", ctx, id).Return(nil).Once()
	pub.On("Publish", ctx, BlogDeletedSubject, DeletedEventPayload{ID: id}).Return(nil).Once()

	require.NoError(t, uc.DeletePost(ctx, id))
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestBlogUseCase_DeleteUnknownPost(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBlogRepository)
	uc := NewBlogUseCase(repo, nil, nil, zap.NewNop())

	repo.On("GetByID", ctx, "nope").Return(nil, repository.ErrNotFound).Once()

	err := uc.DeletePost(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestBlogUseCase_UpdatePostReplacesImage(t *testing.T) {
	ctx := context.Background()
	store, root := newTestDiskStore(t)
	am := NewAssetManager(store, nil, zap.NewNop())
	repo := new(MockBlogRepository)
	uc := NewBlogUseCase(repo, am, nil, zap.NewNop())

	oldPath, err := am.StoreOne(ctx, "blogs", newUpload("old.jpg", "image/jpeg", []byte("old")))
	require.NoError(t, err)

	id := "665f1c2e9b1e8a3d4c2b1b04"
	repo.On("GetByID", ctx, id).Return(&entity.BlogPost{ID: id, Title: "Old", Description: "D", Image: oldPath, Slug: "old"}, nil).Once()
	repo.On("Update", ctx, mock.MatchedBy(func(p *entity.BlogPost) bool {
		return p.Title == "New" && p.Slug == "old" && p.Image != oldPath
	})).Return(nil).Once()

	post, err := uc.UpdatePost(ctx, id, BlogInput{Title: "New"}, ptrUpload(newUpload("new.png", "image/png", []byte("new"))))
	require.NoError(t, err)
	assert.False(t, fileExists(diskPath(root, oldPath)))
	assert.True(t, fileExists(diskPath(root, post.Image)))
	repo.AssertExpectations(t)
}
