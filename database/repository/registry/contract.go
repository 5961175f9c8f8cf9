package registryRepo

import (
	"time"

	"medlease/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoContractRepo implements ContractRepository using MongoDB.
type MongoContractRepo struct {
	crud *crudColl[models.Contract]
}

// NewMongoContractRepo creates a new ContractRepository backed by MongoDB.
func NewMongoContractRepo() ContractRepository {
	return &MongoContractRepo{
		crud: newCrudColl[models.Contract]("contracts",
			mongo.IndexModel{Keys: bson.D{{Key: "vendor_id", Value: 1}, {Key: "facility_id", Value: 1}}},
			mongo.IndexModel{Keys: bson.D{{Key: "reference", Value: 1}}},
		),
	}
}

func (r *MongoContractRepo) Create(c *models.Contract) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return r.crud.insert(c)
}

func (r *MongoContractRepo) GetByID(id string) (*models.Contract, error) {
	return r.crud.getByID(id)
}

func (r *MongoContractRepo) List(filter ListFilter) ([]models.Contract, int64, error) {
	normalizePaging(&filter)
	return r.crud.list(listFilterToBson(filter, "reference"), filter.Page, filter.PerPage)
}

func (r *MongoContractRepo) Update(c *models.Contract) error {
	c.UpdatedAt = time.Now()
	return r.crud.update(c.ID, c)
}

// SetDocumentID attaches an uploaded document's storage ID to the contract.
func (r *MongoContractRepo) SetDocumentID(id, documentID string) error {
	return r.crud.setFields(id, bson.M{"document_id": documentID, "updated_at": time.Now()})
}

func (r *MongoContractRepo) Delete(id string) error {
	return r.crud.delete(id)
}
