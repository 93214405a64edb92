package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pharmakart/pharmacy-store-platform/internal/api/middleware"
	"github.com/pharmakart/pharmacy-store-platform/internal/errors"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	service "github.com/pharmakart/pharmacy-store-platform/internal/services"
	"github.com/pharmakart/pharmacy-store-platform/internal/utils"
	"github.com/pharmakart/pharmacy-store-platform/internal/utils/response"
)

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.RegisterRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			slog.Error("User registration failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("User registered successfully", slog.String("userId", user.ID.String()))

		response.Success(w, http.StatusCreated, user)
	}
}

func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.LoginRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		if !resp.Success {
			statusCode := http.StatusUnauthorized
			if resp.RetryAfter > 0 {
				statusCode = http.StatusTooManyRequests
			}

			response.WriteJson(w, statusCode, resp)

			return
		}

		response.WriteJson(w, http.StatusOK, resp)
	}
}

func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		user, err := h.userService.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, user)
	}
}
