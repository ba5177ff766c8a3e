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

const blogsCollectionName = "blogs"

type BlogMongoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewBlogMongoRepository(db *mongo.Database, logger *zap.Logger) *BlogMongoRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := db.Collection(blogsCollectionName)
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create indexes for blogs collection (may already exist)", zap.Error(err))
	}

	return &BlogMongoRepository{
		coll:   coll,
		logger: logger.Named("BlogRepository"),
	}
}

type blogDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Image           string             `bson:"image"`
	Slug            string             `bson:"slug,omitempty"`
	MetaTitle       string             `bson:"metaTitle,omitempty"`
	MetaDescription string             `bson:"metaDescription,omitempty"`
	MetaKeywords    string             `bson:"metaKeywords,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func toBlogDocument(p *entity.BlogPost) (*blogDocument, error) {
	doc := &blogDocument{
		Title:           p.Title,
		Description:     p.Description,
		Image:           p.Image,
		Slug:            p.Slug,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		MetaKeywords:    p.MetaKeywords,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.ID != "" {
		objID, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid blog ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toBlogEntity(doc *blogDocument) *entity.BlogPost {
	return &entity.BlogPost{
		ID:              doc.ID.Hex(),
		Title:           doc.Title,
		Description:     doc.Description,
		Image:           doc.Image,
		Slug:            doc.Slug,
		MetaTitle:       doc.MetaTitle,
		MetaDescription: doc.MetaDescription,
		MetaKeywords:    doc.MetaKeywords,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}

func (r *BlogMongoRepository) Create(ctx context.Context, post *entity.BlogPost) (string, error) {
	doc, err := toBlogDocument(post)
	if err != nil {
		return "", err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", translateWriteError("failed to create blog in mongo", err)
	}
	return doc.ID.Hex(), nil
}

func (r *BlogMongoRepository) GetByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

func (r *BlogMongoRepository) GetBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	if slug == "" {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *BlogMongoRepository) findOne(ctx context.Context, filter bson.M) (*entity.BlogPost, error) {
	var doc blogDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translateFindError("failed to get blog from mongo", err)
	}
	return toBlogEntity(&doc), nil
}

func (r *BlogMongoRepository) List(ctx context.Context) ([]*entity.BlogPost, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []blogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode blogs from mongo: %w", err)
	}

	out := make([]*entity.BlogPost, len(docs))
	for i := range docs {
		out[i] = toBlogEntity(&docs[i])
	}
	return out, nil
}

func (r *BlogMongoRepository) Update(ctx context.Context, post *entity.BlogPost) error {
	doc, err := toBlogDocument(post)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("blog ID is required for update")
	}

	set := bson.M{
		"title":       doc.Title,
		"description": doc.Description,
		"image":       doc.Image,
		"updatedAt":   doc.UpdatedAt,
	}
	unset := bson.M{}
	for field, v := range map[string]string{
		"slug":            doc.Slug,
		"metaTitle":       doc.MetaTitle,
		"metaDescription": doc.MetaDescription,
		"metaKeywords":    doc.MetaKeywords,
	} {
		val := v
		setOrUnset(set, unset, field, &val)
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		return translateWriteError("failed to update blog in mongo", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BlogMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete blog from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BlogMongoRepository) ListSlugs(ctx context.Context) ([]repository.SlugEntry, error) {
	return listSlugs(ctx, r.coll, bson.M{"slug": bson.M{"$exists": true, "$ne": ""}})
}
