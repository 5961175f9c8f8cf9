package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "facility_id", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "updated_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByNumber retrieves a booking by its human-facing booking number.
func (r *MongoBookingRepo) GetByNumber(number string) (*models.Booking, error) {
	return r.findOne(bson.M{"booking_number": number})
}

func (r *MongoBookingRepo) findOne(filter bson.M) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &booking, nil
}

// UpdateStatus performs a conditional one-shot transition. The filter pins the
// expected current status so a decided booking can never be re-decided.
func (r *MongoBookingRepo) UpdateStatus(id string, from, to models.BookingStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %s status: %w", id, err)
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing booking from a lost precondition.
		exists, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
		if err != nil {
			return fmt.Errorf("failed to check booking %s: %w", id, err)
		}
		if exists == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

// MarkConsent flags consent and starts every not_started service line.
func (r *MongoBookingRepo) MarkConsent(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"id": id}
	update := bson.M{
		"$set": bson.M{
			"consent_obtained":                true,
			"consent_obtained_at":             now,
			"updated_at":                      now,
			"services.$[pending].status":      models.ServiceInProgress,
			"services.$[pending].started_at":  now,
		},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"pending.status": models.ServiceNotStarted}},
	})

	result, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to mark consent on booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetServiceLineStatus transitions one service line, guarded by its expected
// current status.
func (r *MongoBookingRepo) SetServiceLineStatus(bookingID, serviceID string, from, to models.ServiceLineStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{
		"id": bookingID,
		"services": bson.M{"$elemMatch": bson.M{"service_id": serviceID, "status": from}},
	}
	set := bson.M{
		"services.$.status": to,
		"updated_at":        now,
	}
	switch to {
	case models.ServiceInProgress:
		set["services.$.started_at"] = now
	case models.ServiceCompleted:
		set["services.$.completed_at"] = now
	}

	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update service line %s/%s: %w", bookingID, serviceID, err)
	}
	if result.MatchedCount == 0 {
		exists, err := r.coll.CountDocuments(ctx, bson.M{
			"id":                  bookingID,
			"services.service_id": serviceID,
		})
		if err != nil {
			return fmt.Errorf("failed to check service line %s/%s: %w", bookingID, serviceID, err)
		}
		if exists == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

// Worklist returns a filtered, paginated page of bookings for practitioners.
func (r *MongoBookingRepo) Worklist(q models.WorklistQuery) ([]models.Booking, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.DateFrom != "" || q.DateTo != "" {
		dateRange := bson.M{}
		if q.DateFrom != "" {
			dateRange["$gte"] = q.DateFrom
		}
		if q.DateTo != "" {
			dateRange["$lte"] = q.DateTo
		}
		filter["date"] = dateRange
	}
	if q.Search != "" {
		regex := bson.M{"$regex": q.Search, "$options": "i"}
		filter["$or"] = []bson.M{
			{"booking_number": regex},
			{"patient_id": regex},
			{"services.name": regex},
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count worklist bookings: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((q.Page - 1) * q.PerPage)).
		SetLimit(int64(q.PerPage)).
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}})

	bookings, err := r.findMany(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// UpdatedSince returns bookings modified at or after the given instant.
func (r *MongoBookingRepo) UpdatedSince(since time.Time, page, perPage int) ([]models.Booking, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"updated_at": bson.M{"$gte": since}}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sync bookings: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage)).
		SetSort(bson.D{{Key: "updated_at", Value: 1}})

	bookings, err := r.findMany(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CompletedForFacility returns approved bookings of a facility whose service
// lines are all completed, within an optional date window.
func (r *MongoBookingRepo) CompletedForFacility(facilityID, dateFrom, dateTo string) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"facility_id": facilityID,
		"status":      models.BookingApproved,
		"services": bson.M{"$not": bson.M{"$elemMatch": bson.M{
			"status": bson.M{"$in": []models.ServiceLineStatus{models.ServiceNotStarted, models.ServiceInProgress}},
		}}},
	}
	if dateFrom != "" || dateTo != "" {
		dateRange := bson.M{}
		if dateFrom != "" {
			dateRange["$gte"] = dateFrom
		}
		if dateTo != "" {
			dateRange["$lte"] = dateTo
		}
		filter["date"] = dateRange
	}

	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

func (r *MongoBookingRepo) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	return database.DecodeAll[models.Booking](ctx, cursor, "booking")
}
