package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const adminsCollectionName = "admins"

type AdminMongoRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

func NewAdminMongoRepository(db *mongo.Database, logger *zap.Logger) *AdminMongoRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := db.Collection(adminsCollectionName)
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phoneNumber", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("Failed to create indexes for admins collection (may already exist)", zap.Error(err))
	} else {
		logger.Info("Successfully ensured indexes for admins collection")
	}

	return &AdminMongoRepository{
		coll:   coll,
		logger: logger.Named("AdminRepository"),
	}
}

type adminDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	PhoneNumber string             `bson:"phoneNumber,omitempty"`
	Password    string             `bson:"password"`
	Role        string             `bson:"role"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *adminDocument) toEntity() *entity.Admin {
	return &entity.Admin{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PhoneNumber:  d.PhoneNumber,
		PasswordHash: d.Password,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *AdminMongoRepository) Create(ctx context.Context, a *entity.Admin) (string, error) {
	now := time.Now().UTC()
	doc := &adminDocument{
		ID:          primitive.NewObjectID(),
		Name:        a.Name,
		Email:       normalizeEmail(a.Email),
		PhoneNumber: a.PhoneNumber,
		Password:    a.PasswordHash,
		Role:        a.Role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate admin during creation", zap.String("email", doc.Email), zap.Error(err))
		}
		return "", translateWriteError("failed to create admin in mongo", err)
	}
	r.logger.Info("Admin created", zap.String("admin_id", doc.ID.Hex()))
	return doc.ID.Hex(), nil
}

func (r *AdminMongoRepository) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	var doc adminDocument
	if err := r.coll.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&doc); err != nil {
		return nil, translateFindError("failed to get admin by email from mongo", err)
	}
	return doc.toEntity(), nil
}

func (r *AdminMongoRepository) GetByID(ctx context.Context, id string) (*entity.Admin, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var doc adminDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		return nil, translateFindError("failed to get admin by id from mongo", err)
	}
	return doc.toEntity(), nil
}

func (r *AdminMongoRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{"password": passwordHash, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to update admin password in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
