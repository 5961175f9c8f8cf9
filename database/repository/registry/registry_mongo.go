package registryRepo

import (
	"context"
	"fmt"
	"time"

	"medlease/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// crudColl wraps the shared CRUD mechanics of the registry collections
// (facilities, vendors, equipment, contracts). All of them share the same
// document shape conventions: a unique "id" field, "is_active", timestamps.
type crudColl[T any] struct {
	coll *mongo.Collection
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func newCrudColl[T any](name string, extraIndexes ...mongo.IndexModel) *crudColl[T] {
	coll := database.MongoClient.Database(database.DBName).Collection(name)
	c := &crudColl[T]{coll: coll}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := append([]mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}, extraIndexes...)
	if _, err := coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		fmt.Printf("failed to create indexes on %s: %v\n", name, err)
	}
	return c
}

func (c *crudColl[T]) insert(doc interface{}) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *crudColl[T]) getByID(id string) (*T, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc T
	if err := c.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch %s record %s: %w", c.coll.Name(), id, err)
	}
	return &doc, nil
}

func (c *crudColl[T]) list(filter bson.M, page, perPage int) ([]T, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	total, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count %s records: %w", c.coll.Name(), err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if perPage > 0 {
		opts.SetSkip(int64((page - 1) * perPage)).SetLimit(int64(perPage))
	}

	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s records: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs, err := database.DecodeAll[T](ctx, cursor, c.coll.Name())
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (c *crudColl[T]) update(id string, doc interface{}) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := c.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update %s record %s: %w", c.coll.Name(), id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *crudColl[T]) setFields(id string, fields bson.M) error {
	return c.update(id, fields)
}

func (c *crudColl[T]) delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := c.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s record %s: %w", c.coll.Name(), id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// listFilterToBson builds the Mongo filter for registry list queries.
func listFilterToBson(f ListFilter, searchFields ...string) bson.M {
	filter := bson.M{}
	if f.ActiveOnly {
		filter["is_active"] = true
	}
	if f.VendorID != "" {
		filter["vendor_id"] = f.VendorID
	}
	if f.FacilityID != "" {
		filter["facility_id"] = f.FacilityID
	}
	if f.Search != "" && len(searchFields) > 0 {
		regex := bson.M{"$regex": f.Search, "$options": "i"}
		var or []bson.M
		for _, field := range searchFields {
			or = append(or, bson.M{field: regex})
		}
		filter["$or"] = or
	}
	return filter
}

func normalizePaging(f *ListFilter) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 20
	}
	if f.PerPage > 100 {
		f.PerPage = 100
	}
}
