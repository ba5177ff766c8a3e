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

const inquiriesCollectionName = "inquiries"

// InquiryMongoRepository stores contact-form submissions. Unlike admins there
// is no uniqueness on email or phone: one visitor may write many times.
type InquiryMongoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewInquiryMongoRepository(db *mongo.Database, logger *zap.Logger) *InquiryMongoRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := db.Collection(inquiriesCollectionName)
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}); err != nil {
		logger.Warn("Failed to create indexes for inquiries collection (may already exist)", zap.Error(err))
	}

	return &InquiryMongoRepository{
		coll:   coll,
		logger: logger.Named("InquiryRepository"),
	}
}

type inquiryDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	PhoneNumber string             `bson:"phoneNumber"`
	Subject     string             `bson:"subject"`
	Message     string             `bson:"message"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d *inquiryDocument) toEntity() *entity.Inquiry {
	return &entity.Inquiry{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		Subject:     d.Subject,
		Message:     d.Message,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *InquiryMongoRepository) Create(ctx context.Context, in *entity.Inquiry) (string, error) {
	doc := &inquiryDocument{
		ID:          primitive.NewObjectID(),
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Subject:     in.Subject,
		Message:     in.Message,
		CreatedAt:   in.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", translateWriteError("failed to create inquiry in mongo", err)
	}
	return doc.ID.Hex(), nil
}

func (r *InquiryMongoRepository) List(ctx context.Context) ([]*entity.Inquiry, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []inquiryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode inquiries from mongo: %w", err)
	}

	out := make([]*entity.Inquiry, len(docs))
	for i := range docs {
		out[i] = docs[i].toEntity()
	}
	return out, nil
}

func (r *InquiryMongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete inquiry from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *InquiryMongoRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count inquiries in mongo: %w", err)
	}
	return n, nil
}
