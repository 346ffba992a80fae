package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CIPMABUJA/hr-hub-backend/internal/adapter/repository"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
)

// Repositories holds all repository instances plus the transaction
// manager that reopens them inside a transaction scope.
type Repositories struct {
	domainRepo.Repositories
	Tx domainRepo.TransactionManager
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Repositories: repository.NewRepositories(db, logger),
		Tx:           repository.NewTransactionManager(db, logger),
	}
}
