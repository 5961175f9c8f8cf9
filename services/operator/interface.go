package operator

import (
	operatorRepo "medlease/database/repository/operator"
	"medlease/models"

	"github.com/go-redis/redis/v8"
)

// AuthSession is the login result handed to the client.
type AuthSession struct {
	Operator *models.Operator `json:"operator"`
	Token    string           `json:"token"`
}

// OperatorService manages staff accounts and their authenticated sessions.
type OperatorService interface {
	Signup(input models.OperatorSignupInput) (*AuthSession, error)
	Login(input models.OperatorLoginInput) (*AuthSession, error)
	Logout(operatorID string) error
	GetOperator(id string) (*models.Operator, error)

	// VerifySession checks a bearer token against the session cache and
	// returns the authenticated operator ID.
	VerifySession(token string) (string, error)
}

// DefaultOperatorService is the production implementation. Session tokens are
// JWTs whose hashes are pinned in the auth cache; logout unpins them.
type DefaultOperatorService struct {
	Repo      operatorRepo.OperatorRepository
	AuthCache *redis.Client
}
