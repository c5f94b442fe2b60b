package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"payday.backend/internal/domain/entities"
	"payday.backend/internal/infrastructure/models"
)

// EmployeeRepositoryImpl implements EmployeeRepository
type EmployeeRepositoryImpl struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepositoryImpl {
	return &EmployeeRepositoryImpl{db: db}
}

func (r *EmployeeRepositoryImpl) Create(ctx context.Context, e *entities.Employee) error {
	m := employeeToModel(e)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e.CreatedAt = m.CreatedAt
	e.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *EmployeeRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Employee, error) {
	var m models.Employee
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return employeeToEntity(&m), nil
}

func (r *EmployeeRepositoryImpl) Update(ctx context.Context, e *entities.Employee) error {
	m := employeeToModel(e)
	m.UpdatedAt = time.Now()
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Employee{}).
		Where("id = ?", e.ID).
		Select("*").Omit("id", "created_at").
		Updates(m).Error
	if err != nil {
		return err
	}
	e.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *EmployeeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Employee{}).Error
}

func (r *EmployeeRepositoryImpl) ListByOwner(ctx context.Context, owner string) ([]*entities.Employee, error) {
	var ms []models.Employee
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("owner_address = ?", owner).
		Order("name ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var employees []*entities.Employee
	for _, m := range ms {
		model := m
		employees = append(employees, employeeToEntity(&model))
	}
	return employees, nil
}

func employeeToModel(e *entities.Employee) *models.Employee {
	return &models.Employee{
		ID:            e.ID,
		OwnerAddress:  e.OwnerAddress,
		Name:          e.Name,
		WalletAddress: e.WalletAddress,
		Position:      e.Position.Ptr(),
		SalaryAmount:  e.SalaryAmount.Ptr(),
		SalaryToken:   e.SalaryToken.Ptr(),
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func employeeToEntity(m *models.Employee) *entities.Employee {
	return &entities.Employee{
		ID:            m.ID,
		OwnerAddress:  m.OwnerAddress,
		Name:          m.Name,
		WalletAddress: m.WalletAddress,
		Position:      null.StringFromPtr(m.Position),
		SalaryAmount:  null.StringFromPtr(m.SalaryAmount),
		SalaryToken:   null.StringFromPtr(m.SalaryToken),
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
