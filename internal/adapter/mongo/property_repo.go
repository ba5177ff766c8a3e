package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const propertiesCollectionName = "properties"

type PropertyMongoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewPropertyMongoRepository(db *mongo.Database, logger *zap.Logger) *PropertyMongoRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := db.Collection(propertiesCollectionName)
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "IsStatus", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create indexes for properties collection (may already exist)", zap.Error(err))
	}

	return &PropertyMongoRepository{
		coll:   coll,
		logger: logger.Named("PropertyRepository"),
	}
}

type propertyDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Price           float64            `bson:"price"`
	PriceUnit       string             `bson:"price_unit,omitempty"`
	Location        string             `bson:"location"`
	PropertyType    string             `bson:"property_type"`
	SubType         string             `bson:"subType,omitempty"`
	Status          string             `bson:"status"`
	Bedrooms        int                `bson:"bedrooms"`
	Bathrooms       int                `bson:"bathrooms"`
	AreaSqft        float64            `bson:"area_sqft"`
	Unit            string             `bson:"unit"`
	Images          []string           `bson:"images"`
	Slug            string             `bson:"slug,omitempty"`
	MetaTitle       string             `bson:"metaTitle,omitempty"`
	MetaDescription string             `bson:"metaDescription,omitempty"`
	MetaTags        string             `bson:"metaTags,omitempty"`
	IsStatus        int                `bson:"IsStatus"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func toPropertyDocument(p *entity.Property) (*propertyDocument, error) {
	doc := &propertyDocument{
		Title:           p.Title,
		Description:     p.Description,
		Price:           p.Price,
		PriceUnit:       p.PriceUnit,
		Location:        p.Location,
		PropertyType:    p.PropertyType,
		SubType:         p.SubType,
		Status:          p.Status,
		Bedrooms:        p.Bedrooms,
		Bathrooms:       p.Bathrooms,
		AreaSqft:        p.AreaSqft,
		Unit:            p.Unit,
		Images:          p.Images,
		Slug:            p.Slug,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		MetaTags:        p.MetaTags,
		IsStatus:        p.IsStatus,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if doc.Images == nil {
		doc.Images = []string{}
	}
	if p.ID != "" {
		objID, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid property ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toPropertyEntity(doc *propertyDocument) *entity.Property {
	images := doc.Images
	if images == nil {
		images = []string{}
	}
	return &entity.Property{
		ID:              doc.ID.Hex(),
		Title:           doc.Title,
		Description:     doc.Description,
		Price:           doc.Price,
		PriceUnit:       doc.PriceUnit,
		Location:        doc.Location,
		PropertyType:    doc.PropertyType,
		SubType:         doc.SubType,
		Status:          doc.Status,
		Bedrooms:        doc.Bedrooms,
		Bathrooms:       doc.Bathrooms,
		AreaSqft:        doc.AreaSqft,
		Unit:            doc.Unit,
		Images:          images,
		Slug:            doc.Slug,
		MetaTitle:       doc.MetaTitle,
		MetaDescription: doc.MetaDescription,
		MetaTags:        doc.MetaTags,
		IsStatus:        doc.IsStatus,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}

func (r *PropertyMongoRepository) Create(ctx context.Context, p *entity.Property) (string, error) {
	doc, err := toPropertyDocument(p)
	if err != nil {
		return "", err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", translateWriteError("failed to create property in mongo", err)
	}
	return doc.ID.Hex(), nil
}

func (r *PropertyMongoRepository) GetActiveByID(ctx context.Context, id string) (*entity.Property, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc propertyDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": objID, "IsStatus": entity.PropertyActive}).Decode(&doc)
	if err != nil {
		return nil, translateFindError("failed to get property by id from mongo", err)
	}
	return toPropertyEntity(&doc), nil
}

func (r *PropertyMongoRepository) ListActive(ctx context.Context, q entity.PropertyQuery) ([]*entity.Property, error) {
	filter := buildPropertyFilter(q)
	r.logger.Debug("Listing properties", zap.Any("filter", filter))
	return r.find(ctx, filter)
}

func (r *PropertyMongoRepository) ListActiveWithImages(ctx context.Context) ([]*entity.Property, error) {
	filter := bson.M{
		"IsStatus": entity.PropertyActive,
		"images.0": bson.M{"$exists": true},
	}
	return r.find(ctx, filter)
}

func (r *PropertyMongoRepository) find(ctx context.Context, filter bson.M) ([]*entity.Property, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []propertyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode properties from mongo: %w", err)
	}

	out := make([]*entity.Property, len(docs))
	for i := range docs {
		out[i] = toPropertyEntity(&docs[i])
	}
	return out, nil
}

func (r *PropertyMongoRepository) Update(ctx context.Context, id string, u entity.PropertyUpdate) (*entity.Property, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	unset := bson.M{}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	setOrUnset(set, unset, "slug", u.Slug)
	setOrUnset(set, unset, "metaTitle", u.MetaTitle)
	setOrUnset(set, unset, "metaDescription", u.MetaDescription)
	setOrUnset(set, unset, "metaTags", u.MetaTags)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var doc propertyDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": objID, "IsStatus": entity.PropertyActive},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, translateWriteError("failed to update property in mongo", err)
		}
		return nil, translateFindError("failed to update property in mongo", err)
	}
	return toPropertyEntity(&doc), nil
}

// setOrUnset stores a non-empty value under $set and an empty one under
// $unset, which keeps sparse unique indexes free of "" values.
func setOrUnset(set, unset bson.M, field string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		unset[field] = ""
		return
	}
	set[field] = *v
}

func (r *PropertyMongoRepository) SoftDelete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": objID, "IsStatus": entity.PropertyActive},
		bson.M{"$set": bson.M{"IsStatus": entity.PropertyDeleted, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to soft-delete property in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PropertyMongoRepository) CountActive(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"IsStatus": entity.PropertyActive})
	if err != nil {
		return 0, fmt.Errorf("failed to count properties in mongo: %w", err)
	}
	return n, nil
}

func (r *PropertyMongoRepository) ListSlugs(ctx context.Context) ([]repository.SlugEntry, error) {
	filter := bson.M{"IsStatus": entity.PropertyActive, "slug": bson.M{"$exists": true, "$ne": ""}}
	return listSlugs(ctx, r.coll, filter)
}

func listSlugs(ctx context.Context, coll *mongo.Collection, filter bson.M) ([]repository.SlugEntry, error) {
	opts := options.Find().SetProjection(bson.M{"slug": 1, "updatedAt": 1})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list slugs from %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Slug      string    `bson:"slug"`
		UpdatedAt time.Time `bson:"updatedAt"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode slugs from %s: %w", coll.Name(), err)
	}

	out := make([]repository.SlugEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, repository.SlugEntry{Slug: d.Slug, UpdatedAt: d.UpdatedAt})
	}
	return out, nil
}
