package contacts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/shared"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*Contact
}

func newMockRepository() *mockRepository {
	return &mockRepository{byID: make(map[uuid.UUID]*Contact)}
}

func (m *mockRepository) List(ctx context.Context, owner uuid.UUID) ([]Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := []Contact{}
	for _, c := range m.byID {
		if c.Owner == owner {
			list = append(list, *c)
		}
	}
	return list, nil
}

func (m *mockRepository) Get(ctx context.Context, owner, id uuid.UUID) (*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locked(owner, id)
}

func (m *mockRepository) locked(owner, id uuid.UUID) (*Contact, error) {
	c, ok := m.byID[id]
	if !ok || c.Owner != owner {
		return nil, shared.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (m *mockRepository) Create(ctx context.Context, contact *Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *contact
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	m.byID[contact.ID] = &clone
	return nil
}

func (m *mockRepository) Update(ctx context.Context, owner, id uuid.UUID, req UpdateContactRequest) (*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok || c.Owner != owner {
		return nil, shared.ErrNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	clone := *c
	return &clone, nil
}

func (m *mockRepository) SetFavorite(ctx context.Context, owner, id uuid.UUID, favorite bool) (*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok || c.Owner != owner {
		return nil, shared.ErrNotFound
	}
	c.Favorite = favorite
	clone := *c
	return &clone, nil
}

func (m *mockRepository) Delete(ctx context.Context, owner, id uuid.UUID) (*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok || c.Owner != owner {
		return nil, shared.ErrNotFound
	}
	delete(m.byID, id)
	clone := *c
	return &clone, nil
}

var _ Repository = (*mockRepository)(nil)

// ============================================================================
// HELPERS
// ============================================================================

func newTestRouter(t *testing.T, owner uuid.UUID) (http.Handler, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	handler := NewHandler(slog.New(slog.DiscardHandler), NewService(repo))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := shared.ContextWithUser(req.Context(), &shared.AuthUser{ID: owner, Email: "owner@test.local"})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Route("/api/contacts", handler.MountRoutes)
	return r, repo
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func bodyMap(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &m))
	return m
}

// ============================================================================
// TESTS
// ============================================================================

func TestCreateAndListContacts(t *testing.T) {
	owner := uuid.New()
	router, _ := newTestRouter(t, owner)

	res := do(t, router, http.MethodPost, "/api/contacts", `{"name":"Alice Doe","email":"alice@x.com","phone":"123-45-67"}`)
	require.Equal(t, http.StatusCreated, res.Code)
	created := bodyMap(t, res)
	assert.Equal(t, "Alice Doe", created["name"])
	assert.Equal(t, false, created["favorite"])

	res = do(t, router, http.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusOK, res.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestCreateContactValidationJoinsAllErrors(t *testing.T) {
	router, _ := newTestRouter(t, uuid.New())

	res := do(t, router, http.MethodPost, "/api/contacts", `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, res.Code)

	message, _ := bodyMap(t, res)["message"].(string)
	assert.Contains(t, message, "name is required")
	assert.Contains(t, message, "email must be a valid email")
	assert.Contains(t, message, "phone is required")
}

func TestGetUnknownContact(t *testing.T) {
	router, _ := newTestRouter(t, uuid.New())

	res := do(t, router, http.MethodGet, "/api/contacts/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Not found", bodyMap(t, res)["message"])
}

func TestUpdateContact(t *testing.T) {
	owner := uuid.New()
	router, _ := newTestRouter(t, owner)

	res := do(t, router, http.MethodPost, "/api/contacts", `{"name":"Alice Doe","email":"alice@x.com","phone":"123-45-67"}`)
	id := bodyMap(t, res)["id"].(string)

	res = do(t, router, http.MethodPut, "/api/contacts/"+id, `{"name":"Alice Smith"}`)
	require.Equal(t, http.StatusOK, res.Code)
	updated := bodyMap(t, res)
	assert.Equal(t, "Alice Smith", updated["name"])
	assert.Equal(t, "alice@x.com", updated["email"])

	res = do(t, router, http.MethodPut, "/api/contacts/"+id, `{}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Body must have at least one field", bodyMap(t, res)["message"])

	// Update-style validation reports the first error only.
	res = do(t, router, http.MethodPut, "/api/contacts/"+id, `{"name":"A","email":"broken"}`)
	require.Equal(t, http.StatusBadRequest, res.Code)
	message, _ := bodyMap(t, res)["message"].(string)
	assert.Equal(t, "name must be at least 2 characters", message)
}

func TestFavoriteAndDeleteContact(t *testing.T) {
	owner := uuid.New()
	router, repo := newTestRouter(t, owner)

	res := do(t, router, http.MethodPost, "/api/contacts", `{"name":"Alice Doe","email":"alice@x.com","phone":"123-45-67"}`)
	id := bodyMap(t, res)["id"].(string)

	res = do(t, router, http.MethodPatch, "/api/contacts/"+id+"/favorite", `{"favorite":true}`)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, true, bodyMap(t, res)["favorite"])

	res = do(t, router, http.MethodPatch, "/api/contacts/"+id+"/favorite", `{}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = do(t, router, http.MethodDelete, "/api/contacts/"+id, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Alice Doe", bodyMap(t, res)["name"])
	assert.Empty(t, repo.byID)

	res = do(t, router, http.MethodDelete, "/api/contacts/"+id, "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestContactsScopedToOwner(t *testing.T) {
	owner := uuid.New()
	router, repo := newTestRouter(t, owner)

	foreign := &Contact{ID: uuid.New(), Owner: uuid.New(), Name: "Someone Else", Email: "other@x.com", Phone: "000-00-00"}
	require.NoError(t, repo.Create(context.Background(), foreign))

	res := do(t, router, http.MethodGet, "/api/contacts/"+foreign.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = do(t, router, http.MethodGet, "/api/contacts", "")
	var list []map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &list))
	assert.Empty(t, list)
}
