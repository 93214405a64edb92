package service_test

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	args := m.Called(ctx, sessionID)

	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}

func (m *MockCartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	args := m.Called(ctx, cart)

	return args.Error(0)
}

func (m *MockCartRepository) ClearCart(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)

	return args.Error(0)
}

type MockMedicineRepository struct {
	mock.Mock
}

func (m *MockMedicineRepository) CreateMedicine(ctx context.Context, medicine *models.Medicine) error {
	args := m.Called(ctx, medicine)

	return args.Error(0)
}

func (m *MockMedicineRepository) GetMedicineByID(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {
	args := m.Called(ctx, id)

	medicine, _ := args.Get(0).(*models.Medicine)

	return medicine, args.Error(1)
}

func (m *MockMedicineRepository) UpdateMedicine(ctx context.Context, medicine *models.Medicine) error {
	args := m.Called(ctx, medicine)

	return args.Error(0)
}

func (m *MockMedicineRepository) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockMedicineRepository) ListMedicines(ctx context.Context, query string, page, size int) ([]*models.Medicine, int, error) {
	args := m.Called(ctx, query, page, size)

	medicines, _ := args.Get(0).([]*models.Medicine)

	return medicines, args.Int(1), args.Error(2)
}

func (m *MockMedicineRepository) GetMedicineForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*models.Medicine, error) {
	args := m.Called(ctx, tx, id)

	medicine, _ := args.Get(0).(*models.Medicine)

	return medicine, args.Error(1)
}

func (m *MockMedicineRepository) DecrementStock(ctx context.Context, tx *sql.Tx, id uuid.UUID, by int) error {
	args := m.Called(ctx, tx, id, by)

	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)

	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

type MockRateLimitRepository struct {
	mock.Mock
}

func (m *MockRateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)

	return args.Error(0)
}
