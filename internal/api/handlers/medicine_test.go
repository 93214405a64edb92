package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmakart/pharmacy-store-platform/internal/api/handlers"
	apperrors "github.com/pharmakart/pharmacy-store-platform/internal/errors"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	"github.com/pharmakart/pharmacy-store-platform/internal/services/mocks"
	"github.com/pharmakart/pharmacy-store-platform/internal/testutils"
	"github.com/pharmakart/pharmacy-store-platform/internal/utils/response"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupMedicineTest() (*mocks.MedicineService, *mocks.DrugInfoService, *handlers.MedicineHandler) {
	mockMedicineService := new(mocks.MedicineService)
	mockDrugInfoService := new(mocks.DrugInfoService)
	medicineHandler := handlers.NewMedicineHandler(mockMedicineService, mockDrugInfoService)

	return mockMedicineService, mockDrugInfoService, medicineHandler
}

func sampleCatalogMedicine() *models.Medicine {
	return &models.Medicine{
		ID:            uuid.New(),
		Name:          "Paracetamol",
		Components:    "Acetaminophen",
		ProductNumber: "PCM-500",
		Quantity:      20,
		CompanyName:   "Acme Pharma",
		Power:         "500mg",
		Price:         decimal.RequireFromString("4.99"),
	}
}

func TestMedicineHandler_ListMedicines(t *testing.T) {
	t.Run("Success - Search With Pagination", func(t *testing.T) {
		// Arrange
		mockMedicineService, _, medicineHandler := setupMedicineTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/medicines?q=para&page=2&pageSize=5", nil, nil)
		recorder := httptest.NewRecorder()

		mockMedicineService.On("ListMedicines", mock.Anything, "para", 2, 5).
			Return([]*models.Medicine{sampleCatalogMedicine()}, 6, nil).Once()

		// Act
		medicineHandler.ListMedicines()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		page := resp.Data.(map[string]any)
		assert.InDelta(t, 6, page["total"], 0)
		assert.InDelta(t, 2, page["page"], 0)
		assert.InDelta(t, 5, page["pageSize"], 0)

		mockMedicineService.AssertExpectations(t)
	})

	t.Run("Success - Out Of Range Paging Is Clamped", func(t *testing.T) {
		// Arrange
		mockMedicineService, _, medicineHandler := setupMedicineTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/medicines?page=0&pageSize=500", nil, nil)
		recorder := httptest.NewRecorder()

		mockMedicineService.On("ListMedicines", mock.Anything, "", 1, 12).
			Return([]*models.Medicine{}, 0, nil).Once()

		// Act
		medicineHandler.ListMedicines()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockMedicineService.AssertExpectations(t)
	})

	t.Run("Failure - Repository Error", func(t *testing.T) {
		// Arrange
		mockMedicineService, _, medicineHandler := setupMedicineTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/medicines", nil, nil)
		recorder := httptest.NewRecorder()

		mockMedicineService.On("ListMedicines", mock.Anything, "", 1, 12).
			Return(nil, 0, apperrors.DatabaseError("Failed to fetch medicines")).Once()

		// Act
		medicineHandler.ListMedicines()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		mockMedicineService.AssertExpectations(t)
	})
}

func TestMedicineHandler_GetMedicine(t *testing.T) {
	t.Run("Success - Detail With Drug Info", func(t *testing.T) {
		// Arrange
		mockMedicineService, mockDrugInfoService, medicineHandler := setupMedicineTest()

		medicine := sampleCatalogMedicine()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/medicines/"+medicine.ID.String(), nil,
			map[string]string{"id": medicine.ID.String()})
		recorder := httptest.NewRecorder()

		info := &models.DrugInfo{Uses: "Pain relief", SideEffects: "Nausea"}

		mockMedicineService.On("GetMedicineByID", mock.Anything, medicine.ID).Return(medicine, nil).Once()
		mockDrugInfoService.On("Lookup", mock.Anything, medicine.Name).Return(info).Once()

		// Act
		medicineHandler.GetMedicine()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		detail := resp.Data.(map[string]any)
		drugInfo := detail["drug_info"].(map[string]any)
		assert.Equal(t, "Pain relief", drugInfo["uses"])

		mockMedicineService.AssertExpectations(t)
		mockDrugInfoService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		mockMedicineService, _, medicineHandler := setupMedicineTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/medicines/not-a-uuid", nil,
			map[string]string{"id": "not-a-uuid"})
		recorder := httptest.NewRecorder()

		// Act
		medicineHandler.GetMedicine()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockMedicineService.AssertNotCalled(t, "GetMedicineByID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockMedicineService, mockDrugInfoService, medicineHandler := setupMedicineTest()

		id := uuid.New()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/medicines/"+id.String(), nil,
			map[string]string{"id": id.String()})
		recorder := httptest.NewRecorder()

		mockMedicineService.On("GetMedicineByID", mock.Anything, id).
			Return(nil, apperrors.NotFoundError("Medicine not found")).Once()

		// Act
		medicineHandler.GetMedicine()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		mockDrugInfoService.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})
}

func TestMedicineHandler_CreateMedicine(t *testing.T) {
	t.Run("Success - Medicine Created", func(t *testing.T) {
		// Arrange
		mockMedicineService, _, medicineHandler := setupMedicineTest()

		createReq := models.CreateMedicineRequest{
			Name:          "Paracetamol",
			Components:    "Acetaminophen",
			ProductNumber: "PCM-500",
			Quantity:      20,
			CompanyName:   "Acme Pharma",
			Power:         "500mg",
			Price:         "4.99",
		}
		body, _ := json.Marshal(createReq)

		req := testutils.CreateStaffTestRequestWithContext(http.MethodPost, "/api/v1/medicines", bytes.NewReader(body), uuid.New(), nil)
		recorder := httptest.NewRecorder()

		mockMedicineService.On("CreateMedicine", mock.Anything, &createReq).Return(sampleCatalogMedicine(), nil).Once()

		// Act
		medicineHandler.CreateMedicine()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp models.MedicineMutationResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, "Medicine added successfully", resp.Message)
		assert.NotNil(t, resp.Medicine)

		mockMedicineService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Required Fields", func(t *testing.T) {
		// Arrange
		mockMedicineService, _, medicineHandler := setupMedicineTest()

		req := testutils.CreateStaffTestRequestWithContext(http.MethodPost, "/api/v1/medicines", bytes.NewReader([]byte(`{"name": "X"}`)), uuid.New(), nil)
		recorder := httptest.NewRecorder()

		// Act
		medicineHandler.CreateMedicine()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockMedicineService.AssertNotCalled(t, "CreateMedicine", mock.Anything, mock.Anything)
	})
}

func TestMedicineHandler_UpdateMedicine(t *testing.T) {
	t.Run("Success - Partial Update", func(t *testing.T) {
		// Arrange
		mockMedicineService, _, medicineHandler := setupMedicineTest()

		medicine := sampleCatalogMedicine()
		body := []byte(`{"quantity": 50}`)

		req := testutils.CreateStaffTestRequestWithContext(http.MethodPatch, "/api/v1/medicines/"+medicine.ID.String(), bytes.NewReader(body), uuid.New(),
			map[string]string{"id": medicine.ID.String()})
		recorder := httptest.NewRecorder()

		mockMedicineService.On("UpdateMedicine", mock.Anything, medicine.ID, mock.MatchedBy(func(r *models.UpdateMedicineRequest) bool {
			return r.Quantity != nil && *r.Quantity == 50 && r.Name == nil
		})).Return(medicine, nil).Once()

		// Act
		medicineHandler.UpdateMedicine()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp models.MedicineMutationResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "Medicine updated successfully", resp.Message)

		mockMedicineService.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockMedicineService, _, medicineHandler := setupMedicineTest()

		id := uuid.New()
		req := testutils.CreateStaffTestRequestWithContext(http.MethodPatch, "/api/v1/medicines/"+id.String(), bytes.NewReader([]byte(`{"quantity": 50}`)), uuid.New(),
			map[string]string{"id": id.String()})
		recorder := httptest.NewRecorder()

		mockMedicineService.On("UpdateMedicine", mock.Anything, id, mock.Anything).
			Return(nil, apperrors.NotFoundError("Medicine not found")).Once()

		// Act
		medicineHandler.UpdateMedicine()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		mockMedicineService.AssertExpectations(t)
	})
}

func TestMedicineHandler_DeleteMedicine(t *testing.T) {
	t.Run("Success - Medicine Deleted", func(t *testing.T) {
		// Arrange
		mockMedicineService, _, medicineHandler := setupMedicineTest()

		id := uuid.New()
		req := testutils.CreateStaffTestRequestWithContext(http.MethodDelete, "/api/v1/medicines/"+id.String(), nil, uuid.New(),
			map[string]string{"id": id.String()})
		recorder := httptest.NewRecorder()

		mockMedicineService.On("DeleteMedicine", mock.Anything, id).Return("Paracetamol", nil).Once()

		// Act
		medicineHandler.DeleteMedicine()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp models.MedicineMutationResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.Contains(t, resp.Message, `"Paracetamol"`)
		assert.Nil(t, resp.Medicine)

		mockMedicineService.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockMedicineService, _, medicineHandler := setupMedicineTest()

		id := uuid.New()
		req := testutils.CreateStaffTestRequestWithContext(http.MethodDelete, "/api/v1/medicines/"+id.String(), nil, uuid.New(),
			map[string]string{"id": id.String()})
		recorder := httptest.NewRecorder()

		mockMedicineService.On("DeleteMedicine", mock.Anything, id).
			Return("", apperrors.NotFoundError("Medicine not found")).Once()

		// Act
		medicineHandler.DeleteMedicine()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		mockMedicineService.AssertExpectations(t)
	})
}
