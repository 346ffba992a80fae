package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
)

// gormTransactionManager implements TransactionManager on a gorm connection
type gormTransactionManager struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTransactionManager creates a new transaction manager instance
func NewTransactionManager(db *gorm.DB, logger *zap.Logger) domainRepo.TransactionManager {
	return &gormTransactionManager{
		db:     db,
		logger: logger,
	}
}

// WithinTransaction runs fn with a repository bundle bound to one database
// transaction. An error from fn rolls every write back.
func (m *gormTransactionManager) WithinTransaction(ctx context.Context, fn func(repos domainRepo.Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx, m.logger))
	})
}

// NewRepositories builds a repository bundle on the given connection, which
// may be a transaction.
func NewRepositories(db *gorm.DB, logger *zap.Logger) domainRepo.Repositories {
	return domainRepo.Repositories{
		Payments:      NewPaymentRepository(db, logger),
		Members:       NewMemberRepository(db, logger),
		Memberships:   NewMembershipRepository(db, logger),
		Applications:  NewApplicationRepository(db, logger),
		Events:        NewEventRepository(db, logger),
		Registrations: NewEventRegistrationRepository(db, logger),
		CPD:           NewCPDRepository(db, logger),
	}
}
