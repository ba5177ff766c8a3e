package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/usecase"
	"go.uber.org/zap"
)

type PropertyHandler struct {
	uc     *usecase.PropertyUseCase
	logger *zap.Logger
}

func NewPropertyHandler(uc *usecase.PropertyUseCase, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{uc: uc, logger: logger.Named("PropertyHandler")}
}

// propertyView is the public list shape.
type propertyView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"Location"`
	Price     float64   `json:"Price"`
	Type      string    `json:"Type"`
	Beds      int       `json:"Beds"`
	Baths     int       `json:"Baths"`
	AreaSqft  float64   `json:"area_sqft"`
	Status    string    `json:"Status"`
	Images    []string  `json:"Images"`
	CreatedAt time.Time `json:"createdAt"`
}

type propertyDetailView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"Location"`
	Price       float64   `json:"Price"`
	Type        string    `json:"Type"`
	Beds        int       `json:"Beds"`
	Baths       int       `json:"Baths"`
	AreaSqft    float64   `json:"area_sqft"`
	Status      string    `json:"Status"`
	Images      []string  `json:"Images"`
	CreatedAt   time.Time `json:"createdAt"`
}

type pictureView struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Type   string   `json:"Type"`
	Images []string `json:"Images"`
	Status int      `json:"Status"`
}

// editedPropertyView is returned after an update.
type editedPropertyView struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Price        float64   `json:"price"`
	PropertyType string    `json:"property_type"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Status       string    `json:"status"`
	Images       []string  `json:"images"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func imagesOrEmpty(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}

func toPropertyView(p *entity.Property) propertyView {
	return propertyView{
		ID:        p.ID,
		Title:     p.Title,
		Location:  p.Location,
		Price:     p.Price,
		Type:      p.PropertyType,
		Beds:      p.Bedrooms,
		Baths:     p.Bathrooms,
		AreaSqft:  p.AreaSqft,
		Status:    p.Status,
		Images:    imagesOrEmpty(p.Images),
		CreatedAt: p.CreatedAt,
	}
}

func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := entity.NewPropertyQuery(q.Get("city"), q.Get("status"), q.Get("type"))

	properties, err := h.uc.ListProperties(r.Context(), query)
	if err != nil {
		writeError(w, h.logger, err, "Property not found")
		return
	}

	views := make([]propertyView, 0, len(properties))
	for _, p := range properties {
		views = append(views, toPropertyView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err, "Property not found or is not active")
		return
	}
	writeJSON(w, http.StatusOK, propertyDetailView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Location:    p.Location,
		Price:       p.Price,
		Type:        p.PropertyType,
		Beds:        p.Bedrooms,
		Baths:       p.Bathrooms,
		AreaSqft:    p.AreaSqft,
		Status:      p.Status,
		Images:      imagesOrEmpty(p.Images),
		CreatedAt:   p.CreatedAt,
	})
}

func (h *PropertyHandler) ListPictures(w http.ResponseWriter, r *http.Request) {
	properties, err := h.uc.ListPictures(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Property not found")
		return
	}
	views := make([]pictureView, 0, len(properties))
	for _, p := range properties {
		views = append(views, pictureView{
			ID:     p.ID,
			Title:  p.Title,
			Type:   p.PropertyType,
			Images: imagesOrEmpty(p.Images),
			Status: p.IsStatus,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r); err != nil {
		writeError(w, h.logger, err, "")
		return
	}

	in, err := createPropertyInputFromForm(r)
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	images, err := formFiles(r, "images")
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}

	property, err := h.uc.CreateProperty(r.Context(), in, images)
	if err != nil {
		writeError(w, h.logger, err, "")
		return
	}
	property.Images = imagesOrEmpty(property.Images)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Property created successfully",
		"property": property,
	})
}

func createPropertyInputFromForm(r *http.Request) (usecase.CreatePropertyInput, error) {
	in := usecase.CreatePropertyInput{
		Title:           formValue(r, "title"),
		Description:     r.FormValue("description"),
		PriceUnit:       formValue(r, "price_unit"),
		Location:        formValue(r, "location"),
		PropertyType:    formValue(r, "property_type"),
		SubType:         formValue(r, "subType"),
		Status:          formValue(r, "status"),
		Unit:            formValue(r, "unit"),
		Slug:            formValue(r, "slug"),
		MetaTitle:       formValue(r, "metaTitle"),
		MetaDescription: formValue(r, "metaDescription"),
		MetaTags:        formValue(r, "metaTags"),
	}

	var err error
	if in.Price, err = formFloat(r, "price"); err != nil {
		return in, err
	}
	if in.Bedrooms, err = formInt(r, "bedrooms"); err != nil {
		return in, err
	}
	if in.Bathrooms, err = formInt(r, "bathrooms"); err != nil {
		return in, err
	}
	area, err := formFloat(r, "area_sqft")
	if err != nil {
		return in, err
	}
	if area != nil {
		in.AreaSqft = *area
	}
	return in, nil
}

type editPropertyRequest struct {
	Price           *float64 `json:"price"`
	Status          *string  `json:"status"`
	Slug            *string  `json:"slug"`
	MetaTitle       *string  `json:"metaTitle"`
	MetaDescription *string  `json:"metaDescription"`
	MetaTags        *string  `json:"metaTags"`
}

func (h *PropertyHandler) EditProperty(w http.ResponseWriter, r *http.Request) {
	var req editPropertyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err, "")
		return
	}

	p, err := h.uc.UpdateProperty(r.Context(), chi.URLParam(r, "id"), entity.PropertyUpdate{
		Price:           req.Price,
		Status:          req.Status,
		Slug:            req.Slug,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaTags:        req.MetaTags,
	})
	if err != nil {
		writeError(w, h.logger, err, "Property not found or deleted")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Property updated successfully",
		"property": editedPropertyView{
			ID:           p.ID,
			Title:        p.Title,
			Description:  p.Description,
			Location:     p.Location,
			Price:        p.Price,
			PropertyType: p.PropertyType,
			Bedrooms:     p.Bedrooms,
			Bathrooms:    p.Bathrooms,
			Status:       p.Status,
			Images:       imagesOrEmpty(p.Images),
			UpdatedAt:    p.UpdatedAt,
		},
	})
}

func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.uc.DeleteProperty(r.Context(), id); err != nil {
		writeError(w, h.logger, err, "Property not found or already deleted")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":      id,
		"message": "Property deleted successfully",
	})
}
