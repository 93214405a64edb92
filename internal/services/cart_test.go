package service_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	apperrors "github.com/pharmakart/pharmacy-store-platform/internal/errors"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	service "github.com/pharmakart/pharmacy-store-platform/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T) (service.CartService, *MockCartRepository, *MockMedicineRepository) {
	t.Helper()

	cartRepo := new(MockCartRepository)
	medicineRepo := new(MockMedicineRepository)

	return service.NewCartService(cartRepo, medicineRepo), cartRepo, medicineRepo
}

func sampleMedicine(price string, stock int) *models.Medicine {
	return &models.Medicine{
		ID:          uuid.New(),
		Name:        "Paracetamol",
		Components:  "Acetaminophen",
		Quantity:    stock,
		CompanyName: "Acme Pharma",
		Power:       "500mg",
		Price:       decimal.RequireFromString(price),
	}
}

func TestCartService_AddItem(t *testing.T) {
	ctx := t.Context()
	sessionID := uuid.NewString()

	t.Run("Success - New Item Snapshots Price And Stock", func(t *testing.T) {
		// Arrange
		svc, cartRepo, medicineRepo := newCartFixture(t)
		medicine := sampleMedicine("4.99", 30)

		medicineRepo.On("GetMedicineByID", ctx, medicine.ID).Return(medicine, nil)
		cartRepo.On("GetCart", ctx, sessionID).Return(models.NewCart(sessionID), nil)
		cartRepo.On("SaveCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil)

		// Act
		cart, err := svc.AddItem(ctx, sessionID, medicine.ID)

		// Assert
		require.NoError(t, err)
		item := cart.Items[medicine.ID.String()]
		assert.Equal(t, 1, item.Quantity)
		assert.Equal(t, 30, item.MaxQuantity)
		assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("4.99")))
		cartRepo.AssertExpectations(t)
		medicineRepo.AssertExpectations(t)
	})

	t.Run("Success - Existing Item Bumps Quantity Without Stock Check", func(t *testing.T) {
		// Arrange
		svc, cartRepo, medicineRepo := newCartFixture(t)
		medicine := sampleMedicine("4.99", 1)

		existing := models.NewCart(sessionID)
		existing.Items[medicine.ID.String()] = models.CartItem{
			MedicineID: medicine.ID,
			Name:       medicine.Name,
			Quantity:   3,
			UnitPrice:  medicine.Price,
		}

		medicineRepo.On("GetMedicineByID", ctx, medicine.ID).Return(medicine, nil)
		cartRepo.On("GetCart", ctx, sessionID).Return(existing, nil)
		cartRepo.On("SaveCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil)

		// Act
		cart, err := svc.AddItem(ctx, sessionID, medicine.ID)

		// Assert
		require.NoError(t, err, "adding past the stock ceiling is allowed; checkout is the gate")
		assert.Equal(t, 4, cart.Items[medicine.ID.String()].Quantity)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Medicine", func(t *testing.T) {
		// Arrange
		svc, cartRepo, medicineRepo := newCartFixture(t)
		medicineID := uuid.New()

		medicineRepo.On("GetMedicineByID", ctx, medicineID).Return(nil, errors.New("no rows"))

		// Act
		cart, err := svc.AddItem(ctx, sessionID, medicineID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, cart)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
		cartRepo.AssertNotCalled(t, "SaveCart", mock.Anything, mock.Anything)
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	ctx := t.Context()
	sessionID := uuid.NewString()

	t.Run("Success - Sets Quantity Exactly", func(t *testing.T) {
		// Arrange
		svc, cartRepo, medicineRepo := newCartFixture(t)
		medicine := sampleMedicine("7.25", 10)

		existing := models.NewCart(sessionID)
		existing.Items[medicine.ID.String()] = models.CartItem{MedicineID: medicine.ID, Name: medicine.Name, Quantity: 1, UnitPrice: medicine.Price}

		cartRepo.On("GetCart", ctx, sessionID).Return(existing, nil)
		medicineRepo.On("GetMedicineByID", ctx, medicine.ID).Return(medicine, nil)
		cartRepo.On("SaveCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil)

		// Act
		cart, err := svc.UpdateQuantity(ctx, sessionID, medicine.ID, 5)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5, cart.Items[medicine.ID.String()].Quantity, "quantity is set, not incremented")
		cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Quantity Above Live Stock", func(t *testing.T) {
		// Arrange
		svc, cartRepo, medicineRepo := newCartFixture(t)
		medicine := sampleMedicine("7.25", 3)

		existing := models.NewCart(sessionID)
		existing.Items[medicine.ID.String()] = models.CartItem{MedicineID: medicine.ID, Name: medicine.Name, Quantity: 1, UnitPrice: medicine.Price, MaxQuantity: 10}

		cartRepo.On("GetCart", ctx, sessionID).Return(existing, nil)
		medicineRepo.On("GetMedicineByID", ctx, medicine.ID).Return(medicine, nil)

		// Act
		cart, err := svc.UpdateQuantity(ctx, sessionID, medicine.ID, 5)

		// Assert
		require.Error(t, err)
		assert.Nil(t, cart)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeOutOfStock, appErr.Code)
		assert.Contains(t, appErr.Message, "Only 3 available")
		cartRepo.AssertNotCalled(t, "SaveCart", mock.Anything, mock.Anything)
	})

	t.Run("Success - Zero Removes The Entry", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := newCartFixture(t)
		medicineID := uuid.New()

		existing := models.NewCart(sessionID)
		existing.Items[medicineID.String()] = models.CartItem{MedicineID: medicineID, Quantity: 2}

		cartRepo.On("GetCart", ctx, sessionID).Return(existing, nil)
		cartRepo.On("SaveCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil)

		// Act
		cart, err := svc.UpdateQuantity(ctx, sessionID, medicineID, 0)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success - Zero For Absent Entry Is A NoOp", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := newCartFixture(t)

		cartRepo.On("GetCart", ctx, sessionID).Return(models.NewCart(sessionID), nil)

		// Act
		cart, err := svc.UpdateQuantity(ctx, sessionID, uuid.New(), -1)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		cartRepo.AssertNotCalled(t, "SaveCart", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Positive Quantity For Absent Entry", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := newCartFixture(t)

		cartRepo.On("GetCart", ctx, sessionID).Return(models.NewCart(sessionID), nil)

		// Act
		cart, err := svc.UpdateQuantity(ctx, sessionID, uuid.New(), 2)

		// Assert
		require.Error(t, err)
		assert.Nil(t, cart)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := t.Context()
	sessionID := uuid.NewString()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := newCartFixture(t)
		medicineID := uuid.New()

		existing := models.NewCart(sessionID)
		existing.Items[medicineID.String()] = models.CartItem{MedicineID: medicineID, Quantity: 1}

		cartRepo.On("GetCart", ctx, sessionID).Return(existing, nil)
		cartRepo.On("SaveCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil)

		// Act
		cart, err := svc.RemoveItem(ctx, sessionID, medicineID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Success - Absent Entry Is Idempotent", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := newCartFixture(t)

		cartRepo.On("GetCart", ctx, sessionID).Return(models.NewCart(sessionID), nil)

		// Act
		cart, err := svc.RemoveItem(ctx, sessionID, uuid.New())

		// Assert
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		cartRepo.AssertNotCalled(t, "SaveCart", mock.Anything, mock.Anything)
	})
}

func TestCartService_GetCart(t *testing.T) {
	ctx := t.Context()
	sessionID := uuid.NewString()

	t.Run("Success - Exact Decimal Totals", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := newCartFixture(t)

		first := uuid.New()
		second := uuid.New()

		existing := models.NewCart(sessionID)
		existing.Items[first.String()] = models.CartItem{MedicineID: first, Name: "Paracetamol", Quantity: 3, UnitPrice: decimal.RequireFromString("4.99")}
		existing.Items[second.String()] = models.CartItem{MedicineID: second, Name: "Ibuprofen", Quantity: 2, UnitPrice: decimal.RequireFromString("7.25")}

		cartRepo.On("GetCart", ctx, sessionID).Return(existing, nil)

		// Act
		view, err := svc.GetCart(ctx, sessionID)

		// Assert
		require.NoError(t, err)
		require.Len(t, view.Lines, 2)
		assert.True(t, view.Total.Equal(decimal.RequireFromString("29.47")), "3x4.99 + 2x7.25 = 29.47, got %s", view.Total)
	})

	t.Run("Success - Empty Cart", func(t *testing.T) {
		// Arrange
		svc, cartRepo, _ := newCartFixture(t)

		cartRepo.On("GetCart", ctx, sessionID).Return(models.NewCart(sessionID), nil)

		// Act
		view, err := svc.GetCart(ctx, sessionID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, view.Lines)
		assert.True(t, view.Total.IsZero())
	})
}
