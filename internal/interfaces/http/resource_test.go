package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"ledgerly/internal/domain/budget"
	"ledgerly/internal/domain/resource"
	"ledgerly/internal/shared/middleware"
)

// MockBudgetRepo implements budget.Repository for testing
type MockBudgetRepo struct {
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*budget.Entry, error)
	GetByIDFunc      func(ctx context.Context, userID, id int64) (*budget.Entry, error)
	CreateFunc       func(ctx context.Context, userID int64, params budget.CreateParams) (int64, error)
	UpdateFunc       func(ctx context.Context, userID, id int64, params budget.UpdateParams) error
	DeleteFunc       func(ctx context.Context, userID, id int64) error
}

func (m *MockBudgetRepo) ListByUserID(ctx context.Context, userID int64) ([]*budget.Entry, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBudgetRepo) GetByID(ctx context.Context, userID, id int64) (*budget.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, resource.ErrNotFound
}

func (m *MockBudgetRepo) Create(ctx context.Context, userID int64, params budget.CreateParams) (int64, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return 1, nil
}

func (m *MockBudgetRepo) Update(ctx context.Context, userID, id int64, params budget.UpdateParams) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil
}

func (m *MockBudgetRepo) Delete(ctx context.Context, userID, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func newBudgetHandler(repo *MockBudgetRepo) *ResourceHandler[budget.Entry, budget.CreateParams, budget.UpdateParams] {
	return NewResourceHandler[budget.Entry, budget.CreateParams, budget.UpdateParams](budget.NewService(repo), BudgetLabels)
}

func authedRequest(method, target, body string, userID int64) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func TestResourceHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		repo           *MockBudgetRepo
		expectedStatus int
		expectedLen    int
	}{
		{
			name: "Success",
			repo: &MockBudgetRepo{
				ListByUserIDFunc: func(ctx context.Context, userID int64) ([]*budget.Entry, error) {
					return []*budget.Entry{
						{ID: 1, UserID: userID, Category: "Food", Amount: decimal.NewFromInt(300)},
						{ID: 2, UserID: userID, Category: "Rent", Amount: decimal.NewFromInt(1200)},
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name:           "Empty List",
			repo:           &MockBudgetRepo{},
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name: "Repository Error",
			repo: &MockBudgetRepo{
				ListByUserIDFunc: func(ctx context.Context, userID int64) ([]*budget.Entry, error) {
					return nil, errors.New("db error")
				},
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			newBudgetHandler(tt.repo).HandleCollection(rr, authedRequest(http.MethodGet, "/api/budgeting", "", 1))

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			raw := strings.TrimSpace(rr.Body.String())
			if tt.expectedLen == 0 && raw != "[]" {
				t.Errorf("empty list body = %s, want []", raw)
			}
			var got []budget.Entry
			if err := json.Unmarshal([]byte(raw), &got); err != nil {
				t.Fatalf("failed to decode list: %v", err)
			}
			if len(got) != tt.expectedLen {
				t.Errorf("len = %d, want %d", len(got), tt.expectedLen)
			}
		})
	}
}

func TestResourceHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   map[string]any
		expectInsert   bool
	}{
		{
			name:           "Success",
			body:           `{"category":"Food","amount":300}`,
			expectedStatus: http.StatusCreated,
			expectedBody:   map[string]any{"message": "Budgeting entry created successfully", "id": float64(9)},
			expectInsert:   true,
		},
		{
			name:           "Body user_id is ignored",
			body:           `{"category":"Food","amount":"12.50","user_id":99}`,
			expectedStatus: http.StatusCreated,
			expectInsert:   true,
		},
		{
			name:           "Missing amount",
			body:           `{"category":"Food"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "amount is required"},
		},
		{
			name:           "Missing everything",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "category and amount are required"},
		},
		{
			name:           "Amount overflows money column",
			body:           `{"category":"Food","amount":1e15}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "amount is out of range"},
		},
		{
			name:           "Amount with sub-cent precision",
			body:           `{"category":"Food","amount":"3.333"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "amount must have at most 2 decimal places"},
		},
		{
			name:           "Malformed JSON",
			body:           `{"category":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "Invalid request body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inserted := false
			repo := &MockBudgetRepo{
				CreateFunc: func(ctx context.Context, userID int64, params budget.CreateParams) (int64, error) {
					inserted = true
					if userID != 1 {
						t.Errorf("owner = %d, want 1", userID)
					}
					return 9, nil
				},
			}

			rr := httptest.NewRecorder()
			newBudgetHandler(repo).HandleCollection(rr, authedRequest(http.MethodPost, "/api/budgeting", tt.body, 1))

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if inserted != tt.expectInsert {
				t.Errorf("inserted = %v, want %v", inserted, tt.expectInsert)
			}
			if tt.expectedBody != nil {
				body := decodeBody(t, rr)
				for k, v := range tt.expectedBody {
					if body[k] != v {
						t.Errorf("body[%q] = %v, want %v", k, body[k], v)
					}
				}
			}
		})
	}
}

func TestResourceHandler_Get(t *testing.T) {
	repo := &MockBudgetRepo{
		GetByIDFunc: func(ctx context.Context, userID, id int64) (*budget.Entry, error) {
			if userID == 1 && id == 5 {
				return &budget.Entry{ID: 5, UserID: 1, Category: "Food", Amount: decimal.RequireFromString("42.10")}, nil
			}
			return nil, resource.ErrNotFound
		},
	}
	h := newBudgetHandler(repo)

	tests := []struct {
		name           string
		id             string
		userID         int64
		expectedStatus int
	}{
		{"Owner", "5", 1, http.StatusOK},
		{"Other owner", "5", 2, http.StatusNotFound},
		{"Missing", "6", 1, http.StatusNotFound},
		{"Non-numeric id", "abc", 1, http.StatusNotFound},
		{"Zero id", "0", 1, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodGet, "/api/budgeting/"+tt.id, "", tt.userID)
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()
			h.HandleByID(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			body := decodeBody(t, rr)
			if tt.expectedStatus == http.StatusNotFound && body["error"] != "Record not found" {
				t.Errorf("error = %v, want Record not found", body["error"])
			}
			if tt.expectedStatus == http.StatusOK && body["amount"] != "42.1" {
				t.Errorf("amount = %v, want \"42.1\"", body["amount"])
			}
		})
	}
}

func TestResourceHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		updateErr      error
		expectedStatus int
		expectedMsg    string
		expectCall     bool
	}{
		{"Success", `{"amount":250}`, nil, http.StatusOK, "Budgeting entry updated successfully", true},
		{"No fields", `{}`, nil, http.StatusBadRequest, "No fields to update", false},
		{"Empty body", ``, nil, http.StatusBadRequest, "No fields to update", false},
		{"Not owned", `{"amount":1}`, resource.ErrNotFound, http.StatusNotFound, "Record not found or not yours", true},
		{"Storage failure", `{"amount":1}`, errors.New("deadlock"), http.StatusInternalServerError, "Database error", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			repo := &MockBudgetRepo{
				UpdateFunc: func(ctx context.Context, userID, id int64, params budget.UpdateParams) error {
					called = true
					if params.Category != nil {
						t.Error("category should be absent")
					}
					return tt.updateErr
				},
			}

			req := authedRequest(http.MethodPut, "/api/budgeting/3", tt.body, 1)
			req.SetPathValue("id", "3")
			rr := httptest.NewRecorder()
			newBudgetHandler(repo).HandleByID(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if called != tt.expectCall {
				t.Errorf("repository called = %v, want %v", called, tt.expectCall)
			}
			body := decodeBody(t, rr)
			got := body["message"]
			if rr.Code != http.StatusOK {
				got = body["error"]
			}
			if got != tt.expectedMsg {
				t.Errorf("message = %v, want %q", got, tt.expectedMsg)
			}
		})
	}
}

func TestResourceHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		deleteErr      error
		expectedStatus int
	}{
		{"Success", nil, http.StatusOK},
		{"Not owned", resource.ErrNotFound, http.StatusNotFound},
		{"Storage failure", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockBudgetRepo{
				DeleteFunc: func(ctx context.Context, userID, id int64) error { return tt.deleteErr },
			}

			req := authedRequest(http.MethodDelete, "/api/budgeting/3", "", 1)
			req.SetPathValue("id", "3")
			rr := httptest.NewRecorder()
			newBudgetHandler(repo).HandleByID(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestResourceHandler_MethodNotAllowed(t *testing.T) {
	h := newBudgetHandler(&MockBudgetRepo{})

	rr := httptest.NewRecorder()
	h.HandleCollection(rr, authedRequest(http.MethodPatch, "/api/budgeting", "", 1))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("collection PATCH status = %d, want 405", rr.Code)
	}

	req := authedRequest(http.MethodPost, "/api/budgeting/1", "", 1)
	req.SetPathValue("id", "1")
	rr = httptest.NewRecorder()
	h.HandleByID(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("by-id POST status = %d, want 405", rr.Code)
	}
	if got := rr.Header().Get("Allow"); got != "GET, PUT, DELETE" {
		t.Errorf("Allow = %q", got)
	}
}

func TestResourceHandler_NoIdentity(t *testing.T) {
	rr := httptest.NewRecorder()
	newBudgetHandler(&MockBudgetRepo{}).HandleCollection(rr, httptest.NewRequest(http.MethodGet, "/api/budgeting", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}
