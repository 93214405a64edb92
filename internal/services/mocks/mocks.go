// Package mocks provides testify mocks for the service interfaces,
// consumed by the handler tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) AddItem(ctx context.Context, sessionID string, medicineID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, sessionID, medicineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, sessionID string, medicineID uuid.UUID, quantity int) (*models.Cart, error) {
	args := m.Called(ctx, sessionID, medicineID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, sessionID string, medicineID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, sessionID, medicineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartService) GetCart(ctx context.Context, sessionID string) (*models.CartView, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartView), args.Error(1)
}

type MedicineService struct {
	mock.Mock
}

func (m *MedicineService) CreateMedicine(ctx context.Context, req *models.CreateMedicineRequest) (*models.Medicine, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Medicine), args.Error(1)
}

func (m *MedicineService) GetMedicineByID(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Medicine), args.Error(1)
}

func (m *MedicineService) UpdateMedicine(ctx context.Context, id uuid.UUID, req *models.UpdateMedicineRequest) (*models.Medicine, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Medicine), args.Error(1)
}

func (m *MedicineService) DeleteMedicine(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)

	return args.String(0), args.Error(1)
}

func (m *MedicineService) ListMedicines(ctx context.Context, query string, page, pageSize int) ([]*models.Medicine, int, error) {
	args := m.Called(ctx, query, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]*models.Medicine), args.Int(1), args.Error(2)
}

type CheckoutService struct {
	mock.Mock
}

func (m *CheckoutService) Checkout(ctx context.Context, claims *models.Claims, discount decimal.Decimal) (*models.Order, error) {
	args := m.Called(ctx, claims, discount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) GetOrderByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderService) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page int, size int) ([]models.Order, int, error) {
	args := m.Called(ctx, userID, page, size)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]models.Order), args.Int(1), args.Error(2)
}

type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

type DrugInfoService struct {
	mock.Mock
}

func (m *DrugInfoService) Lookup(ctx context.Context, medicineName string) *models.DrugInfo {
	args := m.Called(ctx, medicineName)
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(*models.DrugInfo)
}
