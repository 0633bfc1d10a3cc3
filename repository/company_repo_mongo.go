package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nhtransport/models"
)

type MongoCompanyRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoCompanyRepo(db *mongo.Client, database string) *MongoCompanyRepo {
	return &MongoCompanyRepo{DB: db, Database: database}
}

func (r *MongoCompanyRepo) profiles() *mongo.Collection {
	return r.DB.Database(r.Database).Collection("company_profile")
}

func (r *MongoCompanyRepo) SaveCompany(ctx context.Context, c *models.CompanyProfile) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.profiles().ReplaceOne(ctx, bson.M{"_id": c.ID}, c, options.Replace().SetUpsert(true))
	return err
}

func (r *MongoCompanyRepo) GetCompany(ctx context.Context) (*models.CompanyProfile, error) {
	var c models.CompanyProfile
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := r.profiles().FindOne(ctx, bson.M{}, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
