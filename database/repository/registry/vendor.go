package registryRepo

import (
	"time"

	"medlease/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoVendorRepo implements VendorRepository using MongoDB.
type MongoVendorRepo struct {
	crud *crudColl[models.Vendor]
}

// NewMongoVendorRepo creates a new VendorRepository backed by MongoDB.
func NewMongoVendorRepo() VendorRepository {
	return &MongoVendorRepo{
		crud: newCrudColl[models.Vendor]("vendors",
			mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}},
		),
	}
}

func (r *MongoVendorRepo) Create(v *models.Vendor) error {
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	return r.crud.insert(v)
}

func (r *MongoVendorRepo) GetByID(id string) (*models.Vendor, error) {
	return r.crud.getByID(id)
}

func (r *MongoVendorRepo) List(filter ListFilter) ([]models.Vendor, int64, error) {
	normalizePaging(&filter)
	return r.crud.list(listFilterToBson(filter, "name", "registration_no"), filter.Page, filter.PerPage)
}

func (r *MongoVendorRepo) Update(v *models.Vendor) error {
	v.UpdatedAt = time.Now()
	return r.crud.update(v.ID, v)
}

func (r *MongoVendorRepo) Delete(id string) error {
	return r.crud.delete(id)
}
