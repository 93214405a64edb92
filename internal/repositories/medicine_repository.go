package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	"github.com/pharmakart/pharmacy-store-platform/internal/utils"
)

type MedicineRepository interface {
	CreateMedicine(ctx context.Context, medicine *models.Medicine) error
	GetMedicineByID(ctx context.Context, id uuid.UUID) (*models.Medicine, error)
	UpdateMedicine(ctx context.Context, medicine *models.Medicine) error
	DeleteMedicine(ctx context.Context, id uuid.UUID) error
	ListMedicines(ctx context.Context, query string, page, size int) ([]*models.Medicine, int, error)
	GetMedicineForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*models.Medicine, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, id uuid.UUID, by int) error
}

type medicineRepository struct {
	DB *sql.DB
}

func NewMedicineRepo(db *sql.DB) MedicineRepository {
	return &medicineRepository{DB: db}
}

func (r *medicineRepository) CreateMedicine(ctx context.Context, medicine *models.Medicine) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO medicines (id, name, components, product_number, quantity, company_name, power, price, image_url)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING created_at
	`

	medicine.ID = uuid.New()

	return r.DB.QueryRowContext(dbCtx, query, medicine.ID, medicine.Name, medicine.Components, medicine.ProductNumber, medicine.Quantity, medicine.CompanyName, medicine.Power, medicine.Price, medicine.ImageURL).Scan(&medicine.CreatedAt)
}

func (r *medicineRepository) GetMedicineByID(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	medicine := &models.Medicine{}

	query := `
		SELECT id, name, components, product_number, quantity, company_name, power, price, image_url, created_at
		FROM medicines
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&medicine.ID, &medicine.Name, &medicine.Components, &medicine.ProductNumber, &medicine.Quantity, &medicine.CompanyName, &medicine.Power, &medicine.Price, &medicine.ImageURL, &medicine.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return medicine, nil
}

func (r *medicineRepository) UpdateMedicine(ctx context.Context, medicine *models.Medicine) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE medicines SET name = $1, components = $2, quantity = $3, company_name = $4, power = $5, price = $6, image_url = $7
		WHERE id = $8
	`

	result, err := r.DB.ExecContext(dbCtx, query, medicine.Name, medicine.Components, medicine.Quantity, medicine.CompanyName, medicine.Power, medicine.Price, medicine.ImageURL, medicine.ID)
	if err != nil {
		return fmt.Errorf("failed to update medicine: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// DeleteMedicine removes the catalog row unconditionally. Historical order
// items keep their own copy of name and price, so they survive the delete.
func (r *medicineRepository) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete medicine: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ListMedicines searches name, company and components when query is set,
// newest first, with pagination.
func (r *medicineRepository) ListMedicines(ctx context.Context, query string, page, size int) ([]*models.Medicine, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	pattern := "%" + query + "%"

	var total int

	countQuery := `SELECT COUNT(*) FROM medicines WHERE ($1 = '%%' OR name ILIKE $1 OR company_name ILIKE $1 OR components ILIKE $1)`

	err := r.DB.QueryRowContext(dbCtx, countQuery, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	// Offset
	offset := (page - 1) * size

	listQuery := `
		SELECT id, name, components, product_number, quantity, company_name, power, price, image_url, created_at
		FROM medicines
		WHERE ($1 = '%%' OR name ILIKE $1 OR company_name ILIKE $1 OR components ILIKE $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, listQuery, pattern, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var medicines []*models.Medicine

	for rows.Next() {
		medicine := &models.Medicine{}

		err := rows.Scan(&medicine.ID, &medicine.Name, &medicine.Components, &medicine.ProductNumber, &medicine.Quantity, &medicine.CompanyName, &medicine.Power, &medicine.Price, &medicine.ImageURL, &medicine.CreatedAt)
		if err != nil {
			return nil, 0, err
		}

		medicines = append(medicines, medicine)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return medicines, total, nil
}

// GetMedicineForUpdate reads the live row with a row lock so concurrent
// checkouts serialize on it. Must run inside the checkout transaction.
func (r *medicineRepository) GetMedicineForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*models.Medicine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	medicine := &models.Medicine{}

	query := `
		SELECT id, name, components, product_number, quantity, company_name, power, price, image_url, created_at
		FROM medicines
		WHERE id = $1
		FOR UPDATE`

	err := tx.QueryRowContext(dbCtx, query, id).Scan(&medicine.ID, &medicine.Name, &medicine.Components, &medicine.ProductNumber, &medicine.Quantity, &medicine.CompanyName, &medicine.Power, &medicine.Price, &medicine.ImageURL, &medicine.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return medicine, nil
}

func (r *medicineRepository) DecrementStock(ctx context.Context, tx *sql.Tx, id uuid.UUID, by int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// quantity is guarded by a CHECK (quantity >= 0) constraint as well; the
	// WHERE clause keeps the decrement from ever going below zero.
	query := `UPDATE medicines SET quantity = quantity - $1 WHERE id = $2 AND quantity >= $1`

	result, err := tx.ExecContext(dbCtx, query, by, id)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
