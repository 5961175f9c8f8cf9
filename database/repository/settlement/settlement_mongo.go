package settlementRepo

import (
	"context"
	"fmt"
	"time"

	"medlease/database"
	"medlease/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSettlementRepo implements SettlementRepository using MongoDB.
type MongoSettlementRepo struct {
	batches  *mongo.Collection
	payments *mongo.Collection
}

// NewMongoSettlementRepo creates a new SettlementRepository backed by MongoDB.
func NewMongoSettlementRepo() SettlementRepository {
	db := database.MongoClient.Database(database.DBName)
	repo := &MongoSettlementRepo{
		batches:  db.Collection("batches"),
		payments: db.Collection("facility_payments"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSettlementRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.batches.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "facility_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create batch indexes: %w", err)
	}
	if _, err := r.payments.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "facility_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create payment indexes: %w", err)
	}
	return nil
}

func (r *MongoSettlementRepo) CreateBatch(batch *models.Batch) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	batch.CreatedAt = now
	batch.UpdatedAt = now

	if _, err := r.batches.InsertOne(ctx, batch); err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}
	return nil
}

func (r *MongoSettlementRepo) GetBatch(id string) (*models.Batch, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var batch models.Batch
	if err := r.batches.FindOne(ctx, bson.M{"id": id}).Decode(&batch); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch batch %s: %w", id, err)
	}
	return &batch, nil
}

func (r *MongoSettlementRepo) ListBatches(facilityID string, page, perPage int) ([]models.Batch, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if facilityID != "" {
		filter["facility_id"] = facilityID
	}

	total, err := r.batches.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count batches: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.batches.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list batches: %w", err)
	}
	defer cursor.Close(ctx)

	batches, err := database.DecodeAll[models.Batch](ctx, cursor, "batch")
	if err != nil {
		return nil, 0, err
	}
	return batches, total, nil
}

func (r *MongoSettlementRepo) UpdateBatch(batch *models.Batch) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	batch.UpdatedAt = time.Now()
	result, err := r.batches.UpdateOne(ctx, bson.M{"id": batch.ID}, bson.M{"$set": batch})
	if err != nil {
		return fmt.Errorf("failed to update batch %s: %w", batch.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoSettlementRepo) CreatePayment(payment *models.FacilityPayment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	payment.CreatedAt = time.Now()
	if _, err := r.payments.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to create facility payment: %w", err)
	}
	return nil
}

func (r *MongoSettlementRepo) ListPayments(facilityID string, page, perPage int) ([]models.FacilityPayment, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if facilityID != "" {
		filter["facility_id"] = facilityID
	}

	total, err := r.payments.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count facility payments: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage)).
		SetSort(bson.D{{Key: "paid_at", Value: -1}})

	cursor, err := r.payments.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list facility payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments, err := database.DecodeAll[models.FacilityPayment](ctx, cursor, "facility payment")
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
