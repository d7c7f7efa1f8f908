package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freightline/quoting-system/internal/core/domain"
)

const (
	collectionTariffRates    = "tariff_rates"
	collectionShippingRoutes = "shipping_routes"
)

// RateRepository implements ports.RateRepository using MongoDB. Rate rows are
// append-only: supersession inserts a higher version, and the resolver's sort
// order picks the winner.
type RateRepository struct {
	rates  *mongo.Collection
	routes *mongo.Collection
}

func NewRateRepository(db *mongo.Database) *RateRepository {
	return &RateRepository{
		rates:  db.Collection(collectionTariffRates),
		routes: db.Collection(collectionShippingRoutes),
	}
}

// FindApplicableRates returns the active, effective, unexpired rows for the
// key at asOf, most recently effective first, ties broken by version.
func (r *RateRepository) FindApplicableRates(ctx context.Context, originCountry, classificationCode string, asOf time.Time) ([]*domain.TariffRate, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"origin_country":      originCountry,
		"classification_code": classificationCode,
		"is_active":           true,
		"effective_date":      bson.M{"$lte": asOf},
		"$or": bson.A{
			bson.M{"expiry_date": bson.M{"$exists": false}},
			bson.M{"expiry_date": nil},
			bson.M{"expiry_date": bson.M{"$gt": asOf}},
		},
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "effective_date", Value: -1},
		{Key: "version", Value: -1},
	})

	cursor, err := r.rates.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rates []*domain.TariffRate
	if err := cursor.All(ctx, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// InsertRate appends a new row for the key with the next version number.
// Concurrent updates to the same key may race on the version read; the
// resolver breaks such ties by effective date first, so the newest effective
// row still wins.
func (r *RateRepository) InsertRate(ctx context.Context, rate *domain.TariffRate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var latest struct {
		Version int `bson:"version"`
	}
	err := r.rates.FindOne(ctx,
		bson.M{
			"origin_country":      rate.OriginCountry,
			"classification_code": rate.ClassificationCode,
		},
		options.FindOne().
			SetSort(bson.D{{Key: "version", Value: -1}}).
			SetProjection(bson.M{"version": 1}),
	).Decode(&latest)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	rate.Version = latest.Version + 1
	if rate.ID == "" {
		// String _id so the document round-trips into the string ID field.
		rate.ID = primitive.NewObjectID().Hex()
	}

	_, err = r.rates.InsertOne(ctx, rate)
	return err
}

// DeactivateRates flips is_active off on every active row for the key.
func (r *RateRepository) DeactivateRates(ctx context.Context, originCountry, classificationCode string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.rates.UpdateMany(ctx,
		bson.M{
			"origin_country":      originCountry,
			"classification_code": classificationCode,
			"is_active":           true,
		},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// FindRoute retrieves the unique active route for the lane.
func (r *RateRepository) FindRoute(ctx context.Context, originCountry, destinationCountry string, mode domain.TransportMode) (*domain.ShippingRoute, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var route domain.ShippingRoute
	err := r.routes.FindOne(ctx, bson.M{
		"origin_country":      originCountry,
		"destination_country": destinationCountry,
		"transport_mode":      mode,
		"is_active":           true,
	}).Decode(&route)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, err
	}
	return &route, nil
}

// EnsureIndexes creates the indexes backing rate resolution and route lookup.
func (r *RateRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.rates.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "origin_country", Value: 1},
			{Key: "classification_code", Value: 1},
			{Key: "effective_date", Value: -1},
			{Key: "version", Value: -1},
		}},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = r.routes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "origin_country", Value: 1},
			{Key: "destination_country", Value: 1},
			{Key: "transport_mode", Value: 1},
		}},
	})
	return err
}
