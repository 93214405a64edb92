package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pharmakart/pharmacy-store-platform/internal/api/middleware"
	"github.com/pharmakart/pharmacy-store-platform/internal/errors"
	"github.com/pharmakart/pharmacy-store-platform/internal/metrics"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	service "github.com/pharmakart/pharmacy-store-platform/internal/services"
	"github.com/pharmakart/pharmacy-store-platform/internal/utils"
	"github.com/pharmakart/pharmacy-store-platform/internal/utils/response"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	checkoutService service.CheckoutService
	orderService    service.OrderService
	validator       *validator.Validate
}

func NewOrderHandler(checkoutService service.CheckoutService, orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
		validator:       validator.New(),
	}
}

func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		discount := decimal.Zero

		// the body is optional: an empty body means no discount
		if r.ContentLength > 0 {
			var req models.CheckoutRequest
			if !utils.ParseAndValidate(r, w, &req, h.validator) {
				return
			}

			if req.Discount != "" {
				parsed, err := decimal.NewFromString(req.Discount)
				if err != nil {
					response.Error(w, errors.AddValidationError("discount", "must be a decimal number"))

					return
				}

				discount = parsed
			}
		}

		order, err := h.checkoutService.Checkout(r.Context(), claims, discount)
		if err != nil {
			logger.Warn("Checkout failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Order placed successfully",
			slog.String("orderId", order.ID.String()),
			slog.String("finalAmount", order.FinalAmount.StringFixed(2)))

		metrics.RecordOrderPlaced(order.FinalAmount.InexactFloat64())

		response.Success(w, http.StatusCreated, models.CheckoutResponse{
			OrderID:     order.ID,
			FinalAmount: order.FinalAmount,
		})
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid order id"))

			return
		}

		order, svcErr := h.orderService.GetOrderByID(r.Context(), id, claims.UserID)
		if svcErr != nil {
			response.Error(w, svcErr)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// order history, newest first
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

		if page < 1 {
			page = 1
		}

		if pageSize < 1 || pageSize > 50 {
			pageSize = 12
		}

		orders, total, err := h.orderService.ListOrdersByUser(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.NewPaginatedResponse(orders, total, page, pageSize))
	}
}
