package repositories

import (
	"context"

	"github.com/google/uuid"
	"payday.backend/internal/domain/entities"
)

// EmployeeRepository interface
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entities.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Employee, error)
	Update(ctx context.Context, employee *entities.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, owner string) ([]*entities.Employee, error)
}
