package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pharmakart/pharmacy-store-platform/internal/api/middleware"
	"github.com/pharmakart/pharmacy-store-platform/internal/errors"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	service "github.com/pharmakart/pharmacy-store-platform/internal/services"
	"github.com/pharmakart/pharmacy-store-platform/internal/utils"
	"github.com/pharmakart/pharmacy-store-platform/internal/utils/response"
)

type MedicineHandler struct {
	medicineService service.MedicineService
	drugInfoService service.DrugInfoService
	validator       *validator.Validate
}

func NewMedicineHandler(medicineService service.MedicineService, drugInfoService service.DrugInfoService) *MedicineHandler {
	return &MedicineHandler{
		medicineService: medicineService,
		drugInfoService: drugInfoService,
		validator:       validator.New(),
	}
}

// for eg: GET /medicines?q=paracetamol&page=1&pageSize=12
func (h *MedicineHandler) ListMedicines() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		query := r.URL.Query().Get("q")
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

		if page < 1 {
			page = 1
		}

		if pageSize < 1 || pageSize > 50 {
			pageSize = 12
		}

		medicines, total, err := h.medicineService.ListMedicines(r.Context(), query, page, pageSize)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to fetch medicines", "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.NewPaginatedResponse(medicines, total, page, pageSize))
	}
}

// GetMedicine returns the medicine together with its drug label info. The
// enrichment is best-effort; the handler succeeds even when the lookup is
// down.
func (h *MedicineHandler) GetMedicine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid medicine id"))

			return
		}

		medicine, svcErr := h.medicineService.GetMedicineByID(r.Context(), id)
		if svcErr != nil {
			response.Error(w, svcErr)

			return
		}

		info := h.drugInfoService.Lookup(r.Context(), medicine.Name)

		response.Success(w, http.StatusOK, models.MedicineDetailResponse{
			Medicine: medicine,
			DrugInfo: info,
		})
	}
}

func (h *MedicineHandler) CreateMedicine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateMedicineRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		medicine, err := h.medicineService.CreateMedicine(r.Context(), &req)
		if err != nil {
			logger.Error("Error during medicine creation", "error", err.Error())
			response.Error(w, err)

			return
		}

		logger.Info("Medicine created successfully", "medicineId", medicine.ID.String())

		response.WriteJson(w, http.StatusCreated, models.MedicineMutationResponse{
			Status:   "success",
			Message:  "Medicine added successfully",
			Medicine: medicine,
		})
	}
}

func (h *MedicineHandler) UpdateMedicine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid medicine id"))

			return
		}

		var req models.UpdateMedicineRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		medicine, svcErr := h.medicineService.UpdateMedicine(r.Context(), id, &req)
		if svcErr != nil {
			logger.Error("Error during medicine update", "error", svcErr.Error())
			response.Error(w, svcErr)

			return
		}

		logger.Info("Medicine updated successfully", "medicineId", medicine.ID.String())

		response.WriteJson(w, http.StatusOK, models.MedicineMutationResponse{
			Status:   "success",
			Message:  "Medicine updated successfully",
			Medicine: medicine,
		})
	}
}

func (h *MedicineHandler) DeleteMedicine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid medicine id"))

			return
		}

		name, svcErr := h.medicineService.DeleteMedicine(r.Context(), id)
		if svcErr != nil {
			response.Error(w, svcErr)

			return
		}

		logger.Info("Medicine deleted", "medicineId", id.String())

		response.WriteJson(w, http.StatusOK, models.MedicineMutationResponse{
			Status:  "success",
			Message: fmt.Sprintf("Medicine %q deleted successfully", name),
		})
	}
}
