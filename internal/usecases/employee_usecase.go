package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"payday.backend/internal/domain/entities"
	domainerrors "payday.backend/internal/domain/errors"
	"payday.backend/internal/domain/repositories"
)

// EmployeeUsecase manages the payroll recipient roster
type EmployeeUsecase struct {
	repo repositories.EmployeeRepository
}

func NewEmployeeUsecase(repo repositories.EmployeeRepository) *EmployeeUsecase {
	return &EmployeeUsecase{repo: repo}
}

// Create adds an employee to the owner's roster
func (u *EmployeeUsecase) Create(ctx context.Context, owner string, input *entities.CreateEmployeeInput) (*entities.Employee, error) {
	if input.Name == "" || input.WalletAddress == "" {
		return nil, domainerrors.BadRequest("name and wallet address are required")
	}
	if input.SalaryAmount != nil {
		if v, err := ParseAmount(*input.SalaryAmount); err != nil || v < 0 {
			return nil, domainerrors.BadRequest("salary must be a non-negative decimal")
		}
	}

	e := &entities.Employee{
		ID:            uuid.New(),
		OwnerAddress:  owner,
		Name:          input.Name,
		WalletAddress: input.WalletAddress,
		Position:      null.StringFromPtr(input.Position),
		SalaryAmount:  null.StringFromPtr(input.SalaryAmount),
		SalaryToken:   null.StringFromPtr(input.SalaryToken),
		IsActive:      true,
	}

	if err := u.repo.Create(ctx, e); err != nil {
		return nil, domainerrors.StorageFailure(err)
	}
	return e, nil
}

// Update merges partial fields into the employee record
func (u *EmployeeUsecase) Update(ctx context.Context, owner string, id uuid.UUID, input *entities.UpdateEmployeeInput) (*entities.Employee, error) {
	e, err := u.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domainerrors.BadRequest("name cannot be empty")
		}
		e.Name = *input.Name
	}
	if input.WalletAddress != nil {
		if *input.WalletAddress == "" {
			return nil, domainerrors.BadRequest("wallet address cannot be empty")
		}
		e.WalletAddress = *input.WalletAddress
	}
	if input.Position != nil {
		e.Position = null.StringFrom(*input.Position)
	}
	if input.SalaryAmount != nil {
		if v, err := ParseAmount(*input.SalaryAmount); err != nil || v < 0 {
			return nil, domainerrors.BadRequest("salary must be a non-negative decimal")
		}
		e.SalaryAmount = null.StringFrom(*input.SalaryAmount)
	}
	if input.SalaryToken != nil {
		e.SalaryToken = null.StringFrom(*input.SalaryToken)
	}
	if input.IsActive != nil {
		e.IsActive = *input.IsActive
	}

	if err := u.repo.Update(ctx, e); err != nil {
		return nil, domainerrors.StorageFailure(err)
	}
	return e, nil
}

// Delete removes an employee. Schedules that snapshotted this employee keep
// their recipient fields and continue to fire.
func (u *EmployeeUsecase) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	if _, err := u.getOwned(ctx, owner, id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return domainerrors.StorageFailure(err)
	}
	return nil
}

// List returns the owner's roster
func (u *EmployeeUsecase) List(ctx context.Context, owner string) ([]*entities.Employee, error) {
	employees, err := u.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, domainerrors.StorageFailure(err)
	}
	return employees, nil
}

// Get returns one employee owned by the wallet
func (u *EmployeeUsecase) Get(ctx context.Context, owner string, id uuid.UUID) (*entities.Employee, error) {
	return u.getOwned(ctx, owner, id)
}

func (u *EmployeeUsecase) getOwned(ctx context.Context, owner string, id uuid.UUID) (*entities.Employee, error) {
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NotFound("employee not found")
		}
		return nil, domainerrors.StorageFailure(err)
	}
	if e.OwnerAddress != owner {
		return nil, domainerrors.Forbidden("employee belongs to another wallet")
	}
	return e, nil
}
