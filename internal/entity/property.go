package entity

import "time"

// Record-level visibility of a property. Deleting a property only flips this.
const (
	PropertyDeleted = 0
	PropertyActive  = 1
)

const DefaultAreaUnit = "sqft"

type Property struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	PriceUnit       string    `json:"price_unit,omitempty"`
	Location        string    `json:"location"`
	PropertyType    string    `json:"property_type"`
	SubType         string    `json:"subType,omitempty"`
	Status          string    `json:"status"`
	Bedrooms        int       `json:"bedrooms"`
	Bathrooms       int       `json:"bathrooms"`
	AreaSqft        float64   `json:"area_sqft"`
	Unit            string    `json:"unit"`
	Images          []string  `json:"images"`
	Slug            string    `json:"slug,omitempty"`
	MetaTitle       string    `json:"metaTitle,omitempty"`
	MetaDescription string    `json:"metaDescription,omitempty"`
	MetaTags        string    `json:"metaTags,omitempty"`
	IsStatus        int       `json:"IsStatus"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (p *Property) IsActive() bool {
	return p.IsStatus == PropertyActive
}

// PropertyUpdate carries the fields an administrator may change after
// creation. Nil fields are left untouched.
type PropertyUpdate struct {
	Price           *float64
	Status          *string
	Slug            *string
	MetaTitle       *string
	MetaDescription *string
	MetaTags        *string
}

func (u PropertyUpdate) IsEmpty() bool {
	return u.Price == nil && u.Status == nil && u.Slug == nil &&
		u.MetaTitle == nil && u.MetaDescription == nil && u.MetaTags == nil
}
