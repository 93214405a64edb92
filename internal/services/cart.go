package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	apperrors "github.com/pharmakart/pharmacy-store-platform/internal/errors"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	repository "github.com/pharmakart/pharmacy-store-platform/internal/repositories"
	"github.com/shopspring/decimal"
)

type CartService interface {
	AddItem(ctx context.Context, sessionID string, medicineID uuid.UUID) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, medicineID uuid.UUID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, medicineID uuid.UUID) (*models.Cart, error)
	GetCart(ctx context.Context, sessionID string) (*models.CartView, error)
}

type cartService struct {
	cartRepo     repository.CartRepository
	medicineRepo repository.MedicineRepository
}

func NewCartService(cartRepo repository.CartRepository, medicineRepo repository.MedicineRepository) CartService {
	return &cartService{cartRepo: cartRepo, medicineRepo: medicineRepo}
}

// AddItem puts one unit of the medicine in the session's cart, snapshotting
// price, image and the stock ceiling. An item already in the cart gets its
// quantity bumped by one. Stock is deliberately not checked here; the
// authoritative check happens at update and checkout time.
func (s *cartService) AddItem(ctx context.Context, sessionID string, medicineID uuid.UUID) (*models.Cart, error) {

	medicine, err := s.medicineRepo.GetMedicineByID(ctx, medicineID)
	if err != nil {
		return nil, apperrors.NotFoundError("Medicine not found").WithError(err)
	}

	cart, err := s.cartRepo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	key := medicineID.String()

	if item, exists := cart.Items[key]; exists {
		item.Quantity++
		cart.Items[key] = item
	} else {
		cart.Items[key] = models.CartItem{
			MedicineID:  medicine.ID,
			Name:        medicine.Name,
			Quantity:    1,
			UnitPrice:   medicine.Price,
			ImageURL:    medicine.ImageURL,
			MaxQuantity: medicine.Quantity,
		}
	}

	if err := s.cartRepo.SaveCart(ctx, cart); err != nil {
		return nil, apperrors.ThirdPartyError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// UpdateQuantity sets the quantity exactly. Zero or below removes the entry;
// removing an absent entry is a no-op. A quantity above the live stock is
// rejected and leaves the cart unchanged.
func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, medicineID uuid.UUID, quantity int) (*models.Cart, error) {

	cart, err := s.cartRepo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	key := medicineID.String()

	if quantity <= 0 {
		if _, exists := cart.Items[key]; !exists {
			return cart, nil
		}

		delete(cart.Items, key)

		if err := s.cartRepo.SaveCart(ctx, cart); err != nil {
			return nil, apperrors.ThirdPartyError("Failed to update cart").WithError(err)
		}

		return cart, nil
	}

	item, exists := cart.Items[key]
	if !exists {
		return nil, apperrors.BadRequestError("Item not found in the cart")
	}

	medicine, err := s.medicineRepo.GetMedicineByID(ctx, medicineID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Medicine not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to check stock").WithError(err)
	}

	if quantity > medicine.Quantity {
		return nil, apperrors.OutOfStockError(medicine.Name, medicine.Quantity)
	}

	item.Quantity = quantity
	cart.Items[key] = item

	if err := s.cartRepo.SaveCart(ctx, cart); err != nil {
		return nil, apperrors.ThirdPartyError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// RemoveItem is idempotent; removing an absent entry is not an error.
func (s *cartService) RemoveItem(ctx context.Context, sessionID string, medicineID uuid.UUID) (*models.Cart, error) {

	cart, err := s.cartRepo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	key := medicineID.String()

	if _, exists := cart.Items[key]; exists {
		delete(cart.Items, key)

		if err := s.cartRepo.SaveCart(ctx, cart); err != nil {
			return nil, apperrors.ThirdPartyError("Failed to update cart").WithError(err)
		}
	}

	return cart, nil
}

// GetCart renders the cart with per-line and grand totals. All arithmetic
// is exact decimal; nothing is rounded here.
func (s *cartService) GetCart(ctx context.Context, sessionID string) (*models.CartView, error) {

	cart, err := s.cartRepo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	view := &models.CartView{
		Lines: make([]models.CartLine, 0, len(cart.Items)),
		Total: decimal.Zero,
	}

	for _, item := range cart.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))

		view.Lines = append(view.Lines, models.CartLine{
			MedicineID: item.MedicineID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			ImageURL:   item.ImageURL,
			LineTotal:  lineTotal,
		})

		view.Total = view.Total.Add(lineTotal)
	}

	return view, nil
}
