package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pharmakart/pharmacy-store-platform/internal/api/middleware"
	apperrors "github.com/pharmakart/pharmacy-store-platform/internal/errors"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	repository "github.com/pharmakart/pharmacy-store-platform/internal/repositories"
	"github.com/pharmakart/pharmacy-store-platform/pkg/email"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

type CheckoutService interface {
	Checkout(ctx context.Context, claims *models.Claims, discount decimal.Decimal) (*models.Order, error)
}

type checkoutService struct {
	repo         *repository.Repository
	cartRepo     repository.CartRepository
	medicineRepo repository.MedicineRepository
	orderRepo    *repository.OrderRepository
	userRepo     repository.UserRepository
	emailSender  email.Sender
}

func NewCheckoutService(repo *repository.Repository, cartRepo repository.CartRepository, emailSender email.Sender) CheckoutService {
	return &checkoutService{
		repo:         repo,
		cartRepo:     cartRepo,
		medicineRepo: repo.Medicine,
		orderRepo:    repo.Order,
		userRepo:     repo.User,
		emailSender:  emailSender,
	}
}

// Checkout converts the session's cart into a durable order.
//
// Every cart entry is re-read with a row lock inside a single transaction:
// add-time stock snapshots are not authoritative, only the checkout-time
// read is. The order, its items and the stock decrements commit together or
// not at all. On any failure the cart is left intact so the caller can
// retry; it is cleared only after the transaction commits.
func (s *checkoutService) Checkout(ctx context.Context, claims *models.Claims, discount decimal.Decimal) (*models.Order, error) {

	cart, err := s.cartRepo.GetCart(ctx, claims.SessionID)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	if len(cart.Items) == 0 {
		return nil, apperrors.EmptyCartError()
	}

	// Only staff may apply a discount; anything a non-staff caller supplies
	// is forced to zero.
	if !claims.IsStaff {
		discount = decimal.Zero
	}

	if discount.IsNegative() || discount.GreaterThan(oneHundred) {
		return nil, apperrors.ValidationError("Discount must be between 0 and 100")
	}

	order := &models.Order{
		ID:          uuid.New(),
		UserID:      claims.UserID,
		IsCompleted: true,
	}

	txErr := s.repo.WithinTx(ctx, func(tx *sql.Tx) error {

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(cart.Items))

		for _, entry := range cart.Items {

			medicine, err := s.medicineRepo.GetMedicineForUpdate(ctx, tx, entry.MedicineID)
			if err != nil {
				if err == sql.ErrNoRows {
					return apperrors.NotFoundError("Medicine no longer available: " + entry.Name).WithError(err)
				}

				return err
			}

			if entry.Quantity > medicine.Quantity {
				return apperrors.OutOfStockError(medicine.Name, medicine.Quantity)
			}

			// unit price fixed at the add-time snapshot, not the live price
			total = total.Add(entry.UnitPrice.Mul(decimal.NewFromInt(int64(entry.Quantity))))

			items = append(items, models.OrderItem{
				ID:           uuid.New(),
				MedicineID:   medicine.ID,
				MedicineName: medicine.Name,
				Quantity:     entry.Quantity,
				Price:        entry.UnitPrice,
			})

			if err := s.medicineRepo.DecrementStock(ctx, tx, medicine.ID, entry.Quantity); err != nil {
				return err
			}
		}

		discountAmount := total.Mul(discount).Div(oneHundred)

		order.TotalAmount = total.Round(2)
		order.DiscountPercentage = discount
		order.FinalAmount = total.Sub(discountAmount).Round(2)
		order.Items = items

		return s.orderRepo.CreateOrder(ctx, tx, order)
	})

	if txErr != nil {
		if appErr, ok := apperrors.IsAppError(txErr); ok {
			return nil, appErr
		}

		// Anything else is a persistence failure: everything rolled back,
		// surface a generic retryable outcome.
		return nil, apperrors.DatabaseError("Checkout failed. Please try again.").WithError(txErr)
	}

	if err := s.cartRepo.ClearCart(ctx, claims.SessionID); err != nil {
		// the order is committed; a stale cart is an annoyance, not a failure
		middleware.LoggerFromContext(ctx).Warn("Failed to clear cart after checkout",
			slog.String("sessionId", claims.SessionID), slog.String("error", err.Error()))
	}

	s.sendConfirmation(ctx, claims, order)

	return order, nil
}

// best-effort; a failed email never affects the committed order.
func (s *checkoutService) sendConfirmation(ctx context.Context, claims *models.Claims, order *models.Order) {

	logger := middleware.LoggerFromContext(ctx)

	subject := fmt.Sprintf("Order confirmation #%s", order.ID)
	body := fmt.Sprintf("Thanks for your purchase! Your order total is %s.", order.FinalAmount.StringFixed(2))

	if err := s.emailSender.Send(ctx, claims.Email, subject, body); err != nil {
		logger.Warn("Failed to send order confirmation email",
			slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))
	}
}
