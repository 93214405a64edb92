package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	apperrors "github.com/pharmakart/pharmacy-store-platform/internal/errors"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	repository "github.com/pharmakart/pharmacy-store-platform/internal/repositories"
	"github.com/shopspring/decimal"
)

var minPrice = decimal.NewFromFloat(0.01)

type MedicineService interface {
	CreateMedicine(ctx context.Context, req *models.CreateMedicineRequest) (*models.Medicine, error)
	GetMedicineByID(ctx context.Context, id uuid.UUID) (*models.Medicine, error)
	UpdateMedicine(ctx context.Context, id uuid.UUID, req *models.UpdateMedicineRequest) (*models.Medicine, error)
	DeleteMedicine(ctx context.Context, id uuid.UUID) (string, error)
	ListMedicines(ctx context.Context, query string, page, pageSize int) ([]*models.Medicine, int, error)
}

type medicineService struct {
	repo      repository.MedicineRepository
	sanitizer *bluemonday.Policy
}

func NewMedicineService(repo repository.MedicineRepository) MedicineService {
	return &medicineService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *medicineService) CreateMedicine(ctx context.Context, req *models.CreateMedicineRequest) (*models.Medicine, error) {

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	medicine := &models.Medicine{
		Name:          s.sanitizer.Sanitize(req.Name),
		Components:    s.sanitizer.Sanitize(req.Components),
		ProductNumber: req.ProductNumber,
		Quantity:      req.Quantity,
		CompanyName:   s.sanitizer.Sanitize(req.CompanyName),
		Power:         req.Power,
		Price:         price,
		ImageURL:      req.ImageURL,
	}

	if err := s.repo.CreateMedicine(ctx, medicine); err != nil {
		return nil, apperrors.DatabaseError("Failed to create medicine").WithError(err)
	}

	return medicine, nil
}

func (s *medicineService) GetMedicineByID(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {

	medicine, err := s.repo.GetMedicineByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundError("Medicine not found").WithError(err)
	}

	return medicine, nil
}

// UpdateMedicine applies a partial field set: only non-nil fields change,
// everything else keeps its current value.
func (s *medicineService) UpdateMedicine(ctx context.Context, id uuid.UUID, req *models.UpdateMedicineRequest) (*models.Medicine, error) {

	medicine, err := s.repo.GetMedicineByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundError("Medicine not found").WithError(err)
	}

	if req.Name != nil {
		medicine.Name = s.sanitizer.Sanitize(*req.Name)
	}

	if req.Components != nil {
		medicine.Components = s.sanitizer.Sanitize(*req.Components)
	}

	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, apperrors.AddValidationError("quantity", "must not be negative")
		}

		medicine.Quantity = *req.Quantity
	}

	if req.CompanyName != nil {
		medicine.CompanyName = s.sanitizer.Sanitize(*req.CompanyName)
	}

	if req.Power != nil {
		medicine.Power = *req.Power
	}

	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return nil, err
		}

		medicine.Price = price
	}

	if req.ImageURL != nil {
		medicine.ImageURL = *req.ImageURL
	}

	if err := s.repo.UpdateMedicine(ctx, medicine); err != nil {
		return nil, apperrors.DatabaseError("Failed to update medicine").WithError(err)
	}

	return medicine, nil
}

// DeleteMedicine removes the medicine unconditionally and returns its name
// for the confirmation message. Historical order items are untouched.
func (s *medicineService) DeleteMedicine(ctx context.Context, id uuid.UUID) (string, error) {

	medicine, err := s.repo.GetMedicineByID(ctx, id)
	if err != nil {
		return "", apperrors.NotFoundError("Medicine not found").WithError(err)
	}

	if err := s.repo.DeleteMedicine(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.NotFoundError("Medicine not found").WithError(err)
		}

		return "", apperrors.DatabaseError("Failed to delete medicine").WithError(err)
	}

	return medicine.Name, nil
}

func (s *medicineService) ListMedicines(ctx context.Context, query string, page, pageSize int) ([]*models.Medicine, int, error) {

	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 50 {
		pageSize = 12
	}

	medicines, total, err := s.repo.ListMedicines(ctx, query, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.DatabaseError("Failed to fetch medicines").WithError(err)
	}

	return medicines, total, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperrors.AddValidationError("price", "must be a decimal number").WithError(err)
	}

	if price.LessThan(minPrice) {
		return decimal.Zero, apperrors.AddValidationError("price", "must be at least 0.01")
	}

	return price, nil
}
