package entity

import "time"

const (
	CategoryOfficeEnvironment = "Office Environment"
	CategoryClientDealing     = "Client Dealing"
	CategoryHomeBanner        = "Home Banner"
)

var galleryCategories = []string{
	CategoryOfficeEnvironment,
	CategoryClientDealing,
	CategoryHomeBanner,
}

// GalleryCategories returns the accepted gallery categories.
func GalleryCategories() []string {
	out := make([]string, len(galleryCategories))
	copy(out, galleryCategories)
	return out
}

func IsValidGalleryCategory(category string) bool {
	for _, c := range galleryCategories {
		if c == category {
			return true
		}
	}
	return false
}

// IsUniqueGalleryCategory reports whether at most one image may hold category.
func IsUniqueGalleryCategory(category string) bool {
	return category == CategoryHomeBanner
}

type GalleryImage struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
