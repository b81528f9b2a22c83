package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/OmerAlfiel/Shahen-website/internal/contacts"
	"github.com/OmerAlfiel/Shahen-website/pkg/db/models"
	"github.com/OmerAlfiel/Shahen-website/pkg/enums"
	pkgerrors "github.com/OmerAlfiel/Shahen-website/pkg/errors"
	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
	"github.com/OmerAlfiel/Shahen-website/pkg/pagination"
)

type testContactsService struct {
	submitFn       func(ctx context.Context, submission contacts.Submission) (*contacts.SubmitResult, error)
	listFn         func(ctx context.Context, params contacts.ListParams) (*contacts.Page, error)
	getFn          func(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, update contacts.StatusUpdate) (*models.Contact, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
	searchFn       func(ctx context.Context, params contacts.SearchParams) (*contacts.Page, error)
	statsFn        func(ctx context.Context) (*contacts.Stats, error)
}

func (s *testContactsService) Submit(ctx context.Context, submission contacts.Submission) (*contacts.SubmitResult, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, submission)
	}
	return &contacts.SubmitResult{Success: true}, nil
}

func (s *testContactsService) List(ctx context.Context, params contacts.ListParams) (*contacts.Page, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return &contacts.Page{Contacts: []models.Contact{}}, nil
}

func (s *testContactsService) Get(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Contact submission not found")
}

func (s *testContactsService) UpdateStatus(ctx context.Context, id uuid.UUID, update contacts.StatusUpdate) (*models.Contact, error) {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, id, update)
	}
	return nil, nil
}

func (s *testContactsService) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *testContactsService) Search(ctx context.Context, params contacts.SearchParams) (*contacts.Page, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, params)
	}
	return &contacts.Page{Contacts: []models.Contact{}}, nil
}

func (s *testContactsService) Stats(ctx context.Context) (*contacts.Stats, error) {
	if s.statsFn != nil {
		return s.statsFn(ctx)
	}
	return &contacts.Stats{}, nil
}

func contactsTestRouter(svc contacts.Service) http.Handler {
	logg := logger.Nop()
	r := chi.NewRouter()
	r.Post("/api/contact", SubmitContact(svc, logg))
	r.Get("/api/contact", ListContacts(svc, logg))
	r.Get("/api/contact/search", SearchContacts(svc, logg))
	r.Get("/api/contact/stats", ContactStats(svc, logg))
	r.Get("/api/contact/{id}", GetContact(svc, logg))
	r.Put("/api/contact/{id}/status", UpdateContactStatus(svc, logg))
	r.Delete("/api/contact/{id}", DeleteContact(svc, logg))
	return r
}

func serveContacts(t *testing.T, svc contacts.Service, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	resp := httptest.NewRecorder()
	contactsTestRouter(svc).ServeHTTP(resp, req)

	var env map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, env
}

func TestSubmitContactCreated(t *testing.T) {
	id := uuid.New()
	var captured contacts.Submission
	svc := &testContactsService{
		submitFn: func(ctx context.Context, submission contacts.Submission) (*contacts.SubmitResult, error) {
			captured = submission
			return &contacts.SubmitResult{Success: true, Message: contacts.MessageReceived, ID: id}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":"Nora","message":"Need a lorry on Friday","extra":"ignored"}`))
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req.Header.Set("User-Agent", "shahen-web/1.0")
	resp, env := serveContacts(t, svc, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if env["message"] != "Contact form submitted successfully" {
		t.Fatalf("unexpected message %v", env["message"])
	}
	data, _ := env["data"].(map[string]any)
	if data["id"] != id.String() || data["success"] != true {
		t.Fatalf("unexpected data %v", data)
	}
	if captured.IPAddress != "203.0.113.9" || captured.UserAgent != "shahen-web/1.0" {
		t.Fatalf("unexpected request metadata %+v", captured)
	}
	if captured.Form.Name != "Nora" {
		t.Fatalf("unexpected form %+v", captured.Form)
	}
}

func TestSubmitContactValidationFailure(t *testing.T) {
	svc := &testContactsService{
		submitFn: func(ctx context.Context, submission contacts.Submission) (*contacts.SubmitResult, error) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").WithDetails([]string{
				"Name must be at least 2 characters long",
				"Message must be at least 10 characters long",
			})
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":"x"}`))
	resp, env := serveContacts(t, svc, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	want := "Name must be at least 2 characters long; Message must be at least 10 characters long"
	if env["error"] != want {
		t.Fatalf("unexpected error %v", env["error"])
	}
}

func TestSubmitContactStoreFailure(t *testing.T) {
	svc := &testContactsService{
		submitFn: func(ctx context.Context, submission contacts.Submission) (*contacts.SubmitResult, error) {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, contacts.MessageStoreFailed)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":"Nora","message":"Need a lorry on Friday"}`))
	resp, env := serveContacts(t, svc, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if env["message"] != contacts.MessageStoreFailed {
		t.Fatalf("unexpected message %v", env["message"])
	}
	if _, ok := env["error"]; ok {
		t.Fatalf("dependency failures must not leak details: %v", env["error"])
	}
}

func TestListContactsParsesQuery(t *testing.T) {
	var got contacts.ListParams
	svc := &testContactsService{
		listFn: func(ctx context.Context, params contacts.ListParams) (*contacts.Page, error) {
			got = params
			return &contacts.Page{Contacts: []models.Contact{}, Total: 7}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/contact?status=replied&limit=500&offset=20&sortBy=name&sortOrder=ASC", nil)
	resp, env := serveContacts(t, svc, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if env["message"] != "Contact submissions retrieved successfully" {
		t.Fatalf("unexpected message %v", env["message"])
	}
	want := contacts.ListParams{
		Status:    enums.ContactStatusReplied,
		SortBy:    "name",
		SortOrder: contacts.SortAsc,
		Page:      pagination.Params{Limit: pagination.MaxLimit, Offset: 20},
	}
	if got != want {
		t.Fatalf("unexpected params %+v", got)
	}
}

func TestListContactsDefaults(t *testing.T) {
	var got contacts.ListParams
	svc := &testContactsService{
		listFn: func(ctx context.Context, params contacts.ListParams) (*contacts.Page, error) {
			got = params
			return &contacts.Page{Contacts: []models.Contact{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/contact?sortBy=password", nil)
	if resp, _ := serveContacts(t, svc, req); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got.SortBy != "createdAt" || got.SortOrder != contacts.SortDesc || got.Page.Limit != pagination.DefaultLimit || got.Page.Offset != 0 {
		t.Fatalf("unexpected defaults %+v", got)
	}
}

func TestListContactsRejectsNonNumericLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/contact?limit=ten", nil)
	resp, _ := serveContacts(t, &testContactsService{}, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetContactNotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/contact/"+uuid.NewString(), nil)
	resp, env := serveContacts(t, &testContactsService{}, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if env["message"] != "Contact submission not found" {
		t.Fatalf("unexpected message %v", env["message"])
	}
}

func TestGetContactMalformedID(t *testing.T) {
	called := false
	svc := &testContactsService{
		getFn: func(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
			called = true
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/contact/not-a-uuid", nil)
	resp, _ := serveContacts(t, svc, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if called {
		t.Fatal("service must not be called with a malformed id")
	}
}

func TestGetContactSuccess(t *testing.T) {
	id := uuid.New()
	svc := &testContactsService{
		getFn: func(ctx context.Context, got uuid.UUID) (*models.Contact, error) {
			return &models.Contact{ID: got, Name: "Nora", Status: enums.ContactStatusPending}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/contact/"+id.String(), nil)
	resp, env := serveContacts(t, svc, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	data, _ := env["data"].(map[string]any)
	if data["id"] != id.String() || data["status"] != "pending" {
		t.Fatalf("unexpected data %v", data)
	}
}

func TestUpdateContactStatus(t *testing.T) {
	id := uuid.New()
	var got contacts.StatusUpdate
	svc := &testContactsService{
		updateStatusFn: func(ctx context.Context, gotID uuid.UUID, update contacts.StatusUpdate) (*models.Contact, error) {
			if gotID != id {
				t.Fatalf("unexpected id %s", gotID)
			}
			got = update
			return &models.Contact{ID: id, Status: update.Status}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/contact/"+id.String()+"/status", strings.NewReader(`{"status":"processed","adminNotes":"called back"}`))
	resp, env := serveContacts(t, svc, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if env["message"] != "Contact status updated successfully" {
		t.Fatalf("unexpected message %v", env["message"])
	}
	if got.Status != enums.ContactStatusProcessed || got.AdminNotes != "called back" {
		t.Fatalf("unexpected update %+v", got)
	}
}

func TestUpdateContactStatusInvalid(t *testing.T) {
	svc := &testContactsService{
		updateStatusFn: func(ctx context.Context, id uuid.UUID, update contacts.StatusUpdate) (*models.Contact, error) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid status value")
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/contact/"+uuid.NewString()+"/status", strings.NewReader(`{"status":"archived"}`))
	resp, env := serveContacts(t, svc, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if env["message"] != "Invalid status value" {
		t.Fatalf("unexpected message %v", env["message"])
	}
}

func TestDeleteContact(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/contact/"+uuid.NewString(), nil)
	resp, env := serveContacts(t, &testContactsService{}, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if env["message"] != "Contact deleted successfully" {
		t.Fatalf("unexpected message %v", env["message"])
	}
	if _, ok := env["data"]; ok {
		t.Fatalf("delete must not return data")
	}
}

func TestSearchContactsRequiresTerm(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/contact/search?q=%20", nil)
	resp, env := serveContacts(t, &testContactsService{}, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if env["message"] != "Search term is required" {
		t.Fatalf("unexpected message %v", env["message"])
	}
}

func TestSearchContacts(t *testing.T) {
	var got contacts.SearchParams
	svc := &testContactsService{
		searchFn: func(ctx context.Context, params contacts.SearchParams) (*contacts.Page, error) {
			got = params
			return &contacts.Page{Contacts: []models.Contact{}, Total: 0}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/contact/search?q=flatbed&limit=5", nil)
	resp, env := serveContacts(t, svc, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if env["message"] != "Search results retrieved successfully" {
		t.Fatalf("unexpected message %v", env["message"])
	}
	if got.Term != "flatbed" || got.Page.Limit != 5 {
		t.Fatalf("unexpected params %+v", got)
	}
}

func TestContactStats(t *testing.T) {
	svc := &testContactsService{
		statsFn: func(ctx context.Context) (*contacts.Stats, error) {
			return &contacts.Stats{Total: 4, Pending: 2, Processed: 1, Replied: 1, TodayCount: 3}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/contact/stats", nil)
	resp, env := serveContacts(t, svc, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	data, _ := env["data"].(map[string]any)
	if data["todayCount"] != float64(3) || data["total"] != float64(4) {
		t.Fatalf("unexpected stats %v", data)
	}
}
