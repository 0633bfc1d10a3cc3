package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nhtransport/db"
)

var _ db.DB = (*MongoDB)(nil)

type MongoDB struct {
	Client   *mongo.Client
	Ctx      context.Context
	Cancel   context.CancelFunc
	URL      string
	Database string
}

func NewMongoDB(url, database string) *MongoDB {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	return &MongoDB{
		Ctx:      ctx,
		Cancel:   cancel,
		URL:      url,
		Database: database,
	}
}

func (m *MongoDB) Connect() error {
	client, err := mongo.Connect(m.Ctx, options.Client().ApplyURI(m.URL))
	if err != nil {
		return err
	}
	m.Client = client
	if err := m.Client.Ping(m.Ctx, nil); err != nil {
		return err
	}
	return m.EnsureIndexes(m.Ctx)
}

// EnsureIndexes creates the unique indexes the repositories rely on for
// duplicate detection.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	database := m.Client.Database(m.Database)

	indexes := map[string][]mongo.IndexModel{
		"bookings": {
			{Keys: bson.D{{Key: "booking_no", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "booking_date", Value: -1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "delivery.status", Value: 1}}},
		},
		"vehicles": {
			{Keys: bson.D{{Key: "vehicle_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"parties": {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := database.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func (m *MongoDB) Disconnect() error {
	m.Cancel()
	return m.Client.Disconnect(context.Background())
}

func (m *MongoDB) GetContext() context.Context {
	return m.Ctx
}
