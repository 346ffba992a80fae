package repository

import "context"

// Repositories bundles the repositories that participate in payment
// settlement. A TransactionManager hands a transaction-scoped bundle to
// the settlement closure.
type Repositories struct {
	Payments      PaymentRepository
	Members       MemberRepository
	Memberships   MembershipRepository
	Applications  ApplicationRepository
	Events        EventRepository
	Registrations EventRegistrationRepository
	CPD           CPDRepository
}

// TransactionManager runs a unit of work atomically. Every write made
// through the bundle passed to fn commits or rolls back as one.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error
}
