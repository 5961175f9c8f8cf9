package registryRepo

import (
	"time"

	"medlease/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoFacilityRepo implements FacilityRepository using MongoDB.
type MongoFacilityRepo struct {
	crud *crudColl[models.Facility]
}

// NewMongoFacilityRepo creates a new FacilityRepository backed by MongoDB.
func NewMongoFacilityRepo() FacilityRepository {
	return &MongoFacilityRepo{
		crud: newCrudColl[models.Facility]("facilities",
			mongo.IndexModel{Keys: bson.D{{Key: "code", Value: 1}}},
		),
	}
}

func (r *MongoFacilityRepo) Create(f *models.Facility) error {
	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now
	return r.crud.insert(f)
}

func (r *MongoFacilityRepo) GetByID(id string) (*models.Facility, error) {
	return r.crud.getByID(id)
}

func (r *MongoFacilityRepo) List(filter ListFilter) ([]models.Facility, int64, error) {
	normalizePaging(&filter)
	return r.crud.list(listFilterToBson(filter, "name", "code", "region"), filter.Page, filter.PerPage)
}

func (r *MongoFacilityRepo) Update(f *models.Facility) error {
	f.UpdatedAt = time.Now()
	return r.crud.update(f.ID, f)
}

func (r *MongoFacilityRepo) Delete(id string) error {
	return r.crud.delete(id)
}
