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

// MongoBookingRepo keeps each booking, payment history included, as one document.
type MongoBookingRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoBookingRepo(db *mongo.Client, database string) *MongoBookingRepo {
	return &MongoBookingRepo{DB: db, Database: database}
}

func (r *MongoBookingRepo) bookings() *mongo.Collection {
	return r.DB.Database(r.Database).Collection("bookings")
}

func (r *MongoBookingRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := r.bookings().InsertOne(ctx, b)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: booking number %s", ErrDuplicate, b.BookingNo)
	}
	return err
}

func (r *MongoBookingRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	now := time.Now().UTC()
	b.UpdatedAt = &now

	res, err := r.bookings().ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: booking number %s", ErrDuplicate, b.BookingNo)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := r.bookings().FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoBookingRepo) GetBookings(ctx context.Context, f BookingFilter) ([]*models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "booking_date", Value: -1}, {Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit)).SetSkip(int64(f.Offset))
	}

	cur, err := r.bookings().Find(ctx, bookingFilterBSON(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Booking
	for cur.Next(ctx) {
		var b models.Booking
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, cur.Err()
}

func bookingFilterBSON(f BookingFilter) bson.M {
	filter := bson.M{}
	if s := strings.TrimSpace(f.Search); s != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"booking_no": re},
			bson.M{"party.name": re},
			bson.M{"vehicle.vehicle_number": re},
			bson.M{"journey.from_location": re},
			bson.M{"journey.to_location": re},
		}
	}
	if f.DeliveryStatus != "" {
		filter["delivery.status"] = string(f.DeliveryStatus)
	}
	date := bson.M{}
	if f.From != nil {
		date["$gte"] = f.From.UTC()
	}
	if f.To != nil {
		date["$lte"] = f.To.UTC()
	}
	if len(date) > 0 {
		filter["booking_date"] = date
	}
	return filter
}

func (r *MongoBookingRepo) LastBookingNo(ctx context.Context) (string, error) {
	var doc struct {
		BookingNo string `bson:"booking_no"`
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"booking_no": 1})
	err := r.bookings().FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	return doc.BookingNo, err
}

func (r *MongoBookingRepo) UpdateInvoiceInfo(ctx context.Context, id, url string, createdAt time.Time) error {
	res, err := r.bookings().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"invoice_url": url, "invoice_created_at": createdAt}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) DeleteBooking(ctx context.Context, id string) error {
	res, err := r.bookings().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
