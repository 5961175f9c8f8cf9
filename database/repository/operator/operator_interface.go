package operatorRepo

import "medlease/models"

// OperatorRepository defines persistence operations for operator accounts.
type OperatorRepository interface {
	Create(op *models.Operator) error
	GetByID(id string) (*models.Operator, error)
	GetByEmail(email string) (*models.Operator, error)
}
