package operatorRepo

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

// MongoOperatorRepo implements OperatorRepository using MongoDB.
type MongoOperatorRepo struct {
	coll *mongo.Collection
}

// NewMongoOperatorRepo creates a new OperatorRepository backed by MongoDB.
func NewMongoOperatorRepo() OperatorRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("operators")
	repo := &MongoOperatorRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoOperatorRepo) Create(op *models.Operator) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	op.CreatedAt = now
	op.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, op); err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}
	return nil
}

func (r *MongoOperatorRepo) GetByID(id string) (*models.Operator, error) {
	return r.findOne(bson.M{"id": id})
}

func (r *MongoOperatorRepo) GetByEmail(email string) (*models.Operator, error) {
	return r.findOne(bson.M{"email": email})
}

func (r *MongoOperatorRepo) findOne(filter bson.M) (*models.Operator, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var op models.Operator
	if err := r.coll.FindOne(ctx, filter).Decode(&op); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch operator: %w", err)
	}
	return &op, nil
}
