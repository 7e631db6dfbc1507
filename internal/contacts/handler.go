package contacts

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/platform/httpx"
	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/shared"
)

// Handler wires HTTP endpoints for the contacts registry. All routes sit
// behind the session guard; the owner comes from the request context.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{logger: logger, service: service, validate: v}
}

// MountRoutes registers contact routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/favorite", h.setFavorite)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	owner := shared.UserFromContext(r.Context())
	if owner == nil {
		httpx.Error(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	list, err := h.service.List(r.Context(), owner.ID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.ownerAndID(w, r)
	if !ok {
		return
	}
	contact, err := h.service.Get(r.Context(), owner, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, contact)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	owner := shared.UserFromContext(r.Context())
	if owner == nil {
		httpx.Error(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	var req CreateContactRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	// Creation reports every failed field at once.
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, joinedMessage(err))
		return
	}

	contact, err := h.service.Create(r.Context(), owner.ID, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, contact)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.ownerAndID(w, r)
	if !ok {
		return
	}
	var req UpdateContactRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Empty() {
		httpx.Error(w, http.StatusBadRequest, "Body must have at least one field")
		return
	}
	// Updates report the first failed field only.
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, firstMessage(err))
		return
	}

	contact, err := h.service.Update(r.Context(), owner, id, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, contact)
}

func (h *Handler) setFavorite(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.ownerAndID(w, r)
	if !ok {
		return
	}
	var req FavoriteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Favorite == nil {
		httpx.Error(w, http.StatusBadRequest, "favorite is required")
		return
	}

	contact, err := h.service.SetFavorite(r.Context(), owner, id, *req.Favorite)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, contact)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := h.ownerAndID(w, r)
	if !ok {
		return
	}
	contact, err := h.service.Delete(r.Context(), owner, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, contact)
}

// ownerAndID resolves the authenticated owner and the path id, writing the
// error response itself when either is missing.
func (h *Handler) ownerAndID(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	owner := shared.UserFromContext(r.Context())
	if owner == nil {
		httpx.Error(w, http.StatusUnauthorized, "Not authorized")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Not found")
		return uuid.Nil, uuid.Nil, false
	}
	return owner.ID, id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, "Not found")
		return
	}
	h.logger.Error("contact operation failed", slog.Any("error", err))
	httpx.Error(w, http.StatusInternalServerError, "Server error")
}

func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fieldErr.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fieldErr.Field(), fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldErr.Field())
	}
}

func joinedMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Invalid request body"
	}
	messages := make([]string, len(fieldErrs))
	for i, fieldErr := range fieldErrs {
		messages[i] = message(fieldErr)
	}
	return strings.Join(messages, ", ")
}

func firstMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Invalid request body"
	}
	return message(fieldErrs[0])
}
