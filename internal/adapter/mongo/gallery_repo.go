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

const galleriesCollectionName = "galleries"

type GalleryMongoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewGalleryMongoRepository(db *mongo.Database, logger *zap.Logger) *GalleryMongoRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := db.Collection(galleriesCollectionName)
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
		{
			// At most one document may hold a single-image category.
			Keys: bson.D{{Key: "category", Value: 1}},
			Options: options.Index().
				SetName("unique_banner_category").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"category": entity.CategoryHomeBanner}),
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create indexes for galleries collection (may already exist)", zap.Error(err))
	}

	return &GalleryMongoRepository{
		coll:   coll,
		logger: logger.Named("GalleryRepository"),
	}
}

type galleryDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Image       string             `bson:"image"`
	Category    string             `bson:"category"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func toGalleryDocument(img *entity.GalleryImage) (*galleryDocument, error) {
	doc := &galleryDocument{
		Title:       img.Title,
		Description: img.Description,
		Image:       img.Image,
		Category:    img.Category,
		CreatedAt:   img.CreatedAt,
		UpdatedAt:   img.UpdatedAt,
	}
	if img.ID != "" {
		objID, err := primitive.ObjectIDFromHex(img.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid gallery image ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toGalleryEntity(doc *galleryDocument) *entity.GalleryImage {
	return &entity.GalleryImage{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Image:       doc.Image,
		Category:    doc.Category,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func (r *GalleryMongoRepository) Create(ctx context.Context, img *entity.GalleryImage) (string, error) {
	doc, err := toGalleryDocument(img)
	if err != nil {
		return "", err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", translateWriteError("failed to create gallery image in mongo", err)
	}
	return doc.ID.Hex(), nil
}

func (r *GalleryMongoRepository) GetByID(ctx context.Context, id string) (*entity.GalleryImage, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var doc galleryDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		return nil, translateFindError("failed to get gallery image by id from mongo", err)
	}
	return toGalleryEntity(&doc), nil
}

func (r *GalleryMongoRepository) FindOneByCategory(ctx context.Context, category string) (*entity.GalleryImage, error) {
	var doc galleryDocument
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if err := r.coll.FindOne(ctx, bson.M{"category": category}, opts).Decode(&doc); err != nil {
		return nil, translateFindError("failed to find gallery image by category in mongo", err)
	}
	return toGalleryEntity(&doc), nil
}

func (r *GalleryMongoRepository) List(ctx context.Context, category string) ([]*entity.GalleryImage, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery images from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []galleryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode gallery images from mongo: %w", err)
	}

	out := make([]*entity.GalleryImage, len(docs))
	for i := range docs {
		out[i] = toGalleryEntity(&docs[i])
	}
	return out, nil
}

func (r *GalleryMongoRepository) Update(ctx context.Context, img *entity.GalleryImage) error {
	doc, err := toGalleryDocument(img)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("gallery image ID is required for update")
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{
		"$set": bson.M{
			"title":       doc.Title,
			"description": doc.Description,
			"image":       doc.Image,
			"category":    doc.Category,
			"updatedAt":   doc.UpdatedAt,
		},
	})
	if err != nil {
		return translateWriteError("failed to update gallery image in mongo", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *GalleryMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete gallery image from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
