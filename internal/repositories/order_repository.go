package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	"github.com/pharmakart/pharmacy-store-platform/internal/utils"
)

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// CreateOrder inserts the order and all of its items on the caller's
// transaction. It never commits; the unit of work owns that.
func (r *OrderRepository) CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO orders (id, user_id, order_date, total_amount, discount_percentage, final_amount, is_completed)
		VALUES ($1, $2, NOW(), $3, $4, $5, $6)
		RETURNING order_date
	`

	err := tx.QueryRowContext(dbCtx, query, order.ID, order.UserID, order.TotalAmount, order.DiscountPercentage, order.FinalAmount, order.IsCompleted).Scan(&order.OrderDate)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, medicine_id, medicine_name, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i := range order.Items {

		item := &order.Items[i]
		item.OrderID = order.ID

		_, err := tx.ExecContext(dbCtx, itemQuery, item.ID, item.OrderID, item.MedicineID, item.MedicineName, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}
	}

	return nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{
		ID: id,
	}

	query := `
		SELECT user_id, order_date, total_amount, discount_percentage, final_amount, is_completed
		FROM orders
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&order.UserID, &order.OrderDate, &order.TotalAmount, &order.DiscountPercentage, &order.FinalAmount, &order.IsCompleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	items, err := r.getOrderItems(dbCtx, id)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *OrderRepository) getOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {

	query := `
		SELECT id, medicine_id, medicine_name, quantity, price
		FROM order_items
		WHERE order_id = $1
	`

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {

		var item models.OrderItem

		err := rows.Scan(&item.ID, &item.MedicineID, &item.MedicineName, &item.Quantity, &item.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		item.OrderID = orderID

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// ListOrdersByUser returns the user's completed orders, newest first.
func (r *OrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page int, size int) ([]models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM orders WHERE user_id = $1 AND is_completed = TRUE`

	err := r.DB.QueryRowContext(dbCtx, countQuery, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, order_date, total_amount, discount_percentage, final_amount, is_completed
		FROM orders
		WHERE user_id = $1 AND is_completed = TRUE
		ORDER BY order_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {

		var order models.Order

		order.UserID = userID

		err := rows.Scan(&order.ID, &order.OrderDate, &order.TotalAmount, &order.DiscountPercentage, &order.FinalAmount, &order.IsCompleted)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		items, err := r.getOrderItems(dbCtx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}

		orders[i].Items = items
	}

	return orders, total, nil
}
