package registryRepo

import (
	"time"

	"medlease/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoEquipmentRepo implements EquipmentRepository using MongoDB.
type MongoEquipmentRepo struct {
	crud *crudColl[models.Equipment]
}

// NewMongoEquipmentRepo creates a new EquipmentRepository backed by MongoDB.
func NewMongoEquipmentRepo() EquipmentRepository {
	return &MongoEquipmentRepo{
		crud: newCrudColl[models.Equipment]("equipment",
			mongo.IndexModel{Keys: bson.D{{Key: "vendor_id", Value: 1}}},
		),
	}
}

func (r *MongoEquipmentRepo) Create(e *models.Equipment) error {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	return r.crud.insert(e)
}

func (r *MongoEquipmentRepo) GetByID(id string) (*models.Equipment, error) {
	return r.crud.getByID(id)
}

func (r *MongoEquipmentRepo) List(filter ListFilter) ([]models.Equipment, int64, error) {
	normalizePaging(&filter)
	return r.crud.list(listFilterToBson(filter, "name", "model", "serial_no", "category"), filter.Page, filter.PerPage)
}

func (r *MongoEquipmentRepo) Update(e *models.Equipment) error {
	e.UpdatedAt = time.Now()
	return r.crud.update(e.ID, e)
}

func (r *MongoEquipmentRepo) Delete(id string) error {
	return r.crud.delete(id)
}
