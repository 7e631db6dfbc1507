package users

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/platform/httpx"
	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/shared"
)

// Handler wires HTTP endpoints for account flows.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	guard    *Guard
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard *Guard) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{logger: logger, service: service, guard: guard, validate: v}
}

// MountRoutes registers account routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Get("/verify/{verificationToken}", h.verifyEmail)
	r.Post("/verify", h.resendVerification)

	r.Group(func(r chi.Router) {
		r.Use(h.guard.Middleware)
		r.Post("/logout", h.logout)
		r.Get("/current", h.current)
		r.Patch("/subscription", h.updateSubscription)
	})
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type resendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type registerResponse struct {
	User *RegisteredUser `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	// Registration reports every failed field at once.
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, joinedValidationMessage(err))
		return
	}

	registered, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, registerResponse{User: registered})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, joinedValidationMessage(err))
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())
	if user == nil {
		httpx.Error(w, http.StatusUnauthorized, msgNotAuthorized)
		return
	}
	if err := h.service.Logout(r.Context(), user.ID); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())
	if user == nil {
		httpx.Error(w, http.StatusUnauthorized, msgNotAuthorized)
		return
	}
	projection, err := h.service.Current(r.Context(), user.ID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, projection)
}

func (h *Handler) updateSubscription(w http.ResponseWriter, r *http.Request) {
	user := shared.UserFromContext(r.Context())
	if user == nil {
		httpx.Error(w, http.StatusUnauthorized, msgNotAuthorized)
		return
	}

	var body map[string]string
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Body must have one field: subscription")
		return
	}
	subscription, ok := body["subscription"]
	if !ok || len(body) != 1 {
		httpx.Error(w, http.StatusBadRequest, "Body must have one field: subscription")
		return
	}

	projection, err := h.service.UpdateSubscription(r.Context(), user.ID, Subscription(subscription))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, projection)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	verificationToken := chi.URLParam(r, "verificationToken")
	if err := h.service.VerifyEmail(r.Context(), verificationToken); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.MessageBody{Message: "Verification successful"})
}

func (h *Handler) resendVerification(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	// Single-field check: first error only.
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, firstValidationMessage(err))
		return
	}

	if err := h.service.ResendVerification(r.Context(), req.Email); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.MessageBody{Message: "Verification email sent"})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var ve *shared.ValidationError
	switch {
	case errors.As(err, &ve):
		httpx.Error(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, shared.ErrEmailInUse):
		httpx.Error(w, http.StatusConflict, "Email in use!")
	case errors.Is(err, shared.ErrInvalidCredentials):
		httpx.Error(w, http.StatusUnauthorized, "Email or password is wrong")
	case errors.Is(err, shared.ErrNotVerified):
		httpx.Error(w, http.StatusUnauthorized, "Please verify your email")
	case errors.Is(err, shared.ErrAlreadyVerified):
		httpx.Error(w, http.StatusBadRequest, "Verification has already been passed")
	case errors.Is(err, shared.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "User not found")
	default:
		h.logger.Error("account operation failed", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Server error")
	}
}

// fieldMessage renders one validator failure as a client-facing sentence.
func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fieldErr.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldErr.Field())
	}
}

func joinedValidationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Invalid request body"
	}
	messages := make([]string, len(fieldErrs))
	for i, fieldErr := range fieldErrs {
		messages[i] = fieldMessage(fieldErr)
	}
	return strings.Join(messages, ", ")
}

func firstValidationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Invalid request body"
	}
	return fieldMessage(fieldErrs[0])
}
