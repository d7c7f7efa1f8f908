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
	"github.com/freightline/quoting-system/internal/core/ports"
)

const (
	collectionShipments  = "shipments"
	collectionQuotes     = "quotes"
	collectionDutyAudits = "duty_audits"
)

// QuoteRepository implements ports.QuoteRepository using MongoDB. Stored
// quotes are immutable audit records; nothing here updates in place.
type QuoteRepository struct {
	shipments *mongo.Collection
	quotes    *mongo.Collection
	audits    *mongo.Collection
}

func NewQuoteRepository(db *mongo.Database) *QuoteRepository {
	return &QuoteRepository{
		shipments: db.Collection(collectionShipments),
		quotes:    db.Collection(collectionQuotes),
		audits:    db.Collection(collectionDutyAudits),
	}
}

func (r *QuoteRepository) SaveShipment(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.shipments.InsertOne(ctx, s)
	return err
}

func (r *QuoteRepository) SaveResult(ctx context.Context, result *domain.PricingResult) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.quotes.InsertOne(ctx, result)
	return err
}

func (r *QuoteRepository) SaveDutyAudit(ctx context.Context, audit *domain.DutyAudit) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if audit.ID == "" {
		audit.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.audits.InsertOne(ctx, audit)
	return err
}

// FindResultByID retrieves a stored quote. When clientID is non-empty, an
// additional filter by client_id is applied so a client can only read its own
// quotes.
func (r *QuoteRepository) FindResultByID(ctx context.Context, id, clientID string) (*domain.PricingResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if clientID != "" {
		filter["client_id"] = clientID
	}

	var result domain.PricingResult
	err := r.quotes.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, err
	}
	return &result, nil
}

// ListResults returns one page of quotes matching the filter, newest first,
// along with the total match count.
func (r *QuoteRepository) ListResults(ctx context.Context, filter ports.ListQuotesFilter) ([]*domain.PricingResult, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}
	if filter.OriginCountry != "" {
		query["origin.country"] = filter.OriginCountry
	}
	if filter.DestinationCountry != "" {
		query["destination.country"] = filter.DestinationCountry
	}
	if filter.Mode != "" {
		query["transport_mode"] = filter.Mode
	}
	created := bson.M{}
	if !filter.DateFrom.IsZero() {
		created["$gte"] = filter.DateFrom
	}
	if !filter.DateTo.IsZero() {
		created["$lte"] = filter.DateTo
	}
	if len(created) > 0 {
		query["created_at"] = created
	}

	total, err := r.quotes.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.quotes.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var results []*domain.PricingResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// EnsureIndexes creates the indexes backing quote retrieval and listing.
func (r *QuoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.quotes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "origin.country", Value: 1}}},
		{Keys: bson.D{{Key: "transport_mode", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = r.audits.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "quote_id", Value: 1}}},
	})
	return err
}
