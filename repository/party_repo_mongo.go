package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nhtransport/models"
)

type MongoPartyRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoPartyRepo(db *mongo.Client, database string) *MongoPartyRepo {
	return &MongoPartyRepo{DB: db, Database: database}
}

func (r *MongoPartyRepo) parties() *mongo.Collection {
	return r.DB.Database(r.Database).Collection("parties")
}

func (r *MongoPartyRepo) CreateParty(ctx context.Context, p *models.Party) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.parties().InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: party %s", ErrDuplicate, p.Name)
	}
	return err
}

func (r *MongoPartyRepo) UpdateParty(ctx context.Context, p *models.Party) error {
	now := time.Now().UTC()
	p.UpdatedAt = &now
	res, err := r.parties().UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"name":       p.Name,
		"address":    p.Address,
		"contact":    p.Contact,
		"gst_no":     p.GSTNo,
		"updated_at": now,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPartyRepo) GetPartyByID(ctx context.Context, id string) (*models.Party, error) {
	p := &models.Party{}
	err := r.parties().FindOne(ctx, bson.M{"_id": id}).Decode(p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *MongoPartyRepo) GetParties(ctx context.Context, search string) ([]*models.Party, error) {
	filter := bson.M{}
	if s := strings.TrimSpace(search); s != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		filter["$or"] = bson.A{bson.M{"name": re}, bson.M{"contact": re}, bson.M{"gst_no": re}}
	}
	cur, err := r.parties().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []*models.Party
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoPartyRepo) DeleteParty(ctx context.Context, id string) error {
	res, err := r.parties().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MongoVehicleRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoVehicleRepo(db *mongo.Client, database string) *MongoVehicleRepo {
	return &MongoVehicleRepo{DB: db, Database: database}
}

func (r *MongoVehicleRepo) vehicles() *mongo.Collection {
	return r.DB.Database(r.Database).Collection("vehicles")
}

func (r *MongoVehicleRepo) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	_, err := r.vehicles().InsertOne(ctx, v)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: vehicle %s", ErrDuplicate, v.VehicleNumber)
	}
	return err
}

func (r *MongoVehicleRepo) UpdateVehicle(ctx context.Context, v *models.Vehicle) error {
	now := time.Now().UTC()
	v.UpdatedAt = &now
	res, err := r.vehicles().UpdateOne(ctx, bson.M{"_id": v.ID}, bson.M{"$set": bson.M{
		"vehicle_number": v.VehicleNumber,
		"owner_name":     v.OwnerName,
		"contact_number": v.ContactNumber,
		"vehicle_type":   v.VehicleType,
		"updated_at":     now,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: vehicle %s", ErrDuplicate, v.VehicleNumber)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoVehicleRepo) GetVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	err := r.vehicles().FindOne(ctx, bson.M{"_id": id}).Decode(v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *MongoVehicleRepo) GetVehicles(ctx context.Context, search string) ([]*models.Vehicle, error) {
	filter := bson.M{}
	if s := strings.TrimSpace(search); s != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		filter["$or"] = bson.A{bson.M{"vehicle_number": re}, bson.M{"owner_name": re}}
	}
	cur, err := r.vehicles().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "vehicle_number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []*models.Vehicle
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoVehicleRepo) DeleteVehicle(ctx context.Context, id string) error {
	res, err := r.vehicles().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
