package settlementhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"finiquitos/internal/domain/auth"
	"finiquitos/internal/domain/settlement"
	"finiquitos/internal/transport/http/middleware"
)

const testSecret = "test-secret"

type memStore struct {
	seq         int
	records     map[string]settlement.Record
	attachments map[string][]settlement.Attachment
}

func newMemStore() *memStore {
	return &memStore{records: map[string]settlement.Record{}, attachments: map[string][]settlement.Attachment{}}
}

func (m *memStore) Create(_ context.Context, tenantID string, input settlement.Input, result settlement.Result) (string, error) {
	m.seq++
	id := fmt.Sprintf("rec-%d", m.seq)
	now := time.Now().UTC()
	m.records[id] = settlement.Record{
		ID: id, TenantID: tenantID, Version: settlement.CurrentVersion,
		Input: input, Result: result, CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (m *memStore) Get(_ context.Context, tenantID, id string) (settlement.Record, error) {
	rec, ok := m.records[id]
	if !ok || rec.TenantID != tenantID {
		return settlement.Record{}, settlement.ErrRecordNotFound
	}
	return rec, nil
}

func (m *memStore) Count(_ context.Context, tenantID string) (int, error) {
	total := 0
	for _, rec := range m.records {
		if rec.TenantID == tenantID {
			total++
		}
	}
	return total, nil
}

func (m *memStore) List(_ context.Context, tenantID string, limit, offset int) ([]settlement.Record, error) {
	var out []settlement.Record
	for _, rec := range m.records {
		if rec.TenantID == tenantID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memStore) UpdateInput(_ context.Context, tenantID, id string, input settlement.Input) error {
	rec, ok := m.records[id]
	if !ok || rec.TenantID != tenantID {
		return settlement.ErrRecordNotFound
	}
	rec.Input = input
	m.records[id] = rec
	return nil
}

func (m *memStore) UpdateInputAndResult(_ context.Context, tenantID, id string, input settlement.Input, result settlement.Result) error {
	rec, ok := m.records[id]
	if !ok || rec.TenantID != tenantID {
		return settlement.ErrRecordNotFound
	}
	rec.Input = input
	rec.Result = result
	m.records[id] = rec
	return nil
}

func (m *memStore) Delete(_ context.Context, tenantID, id string) error {
	rec, ok := m.records[id]
	if !ok || rec.TenantID != tenantID {
		return settlement.ErrRecordNotFound
	}
	delete(m.records, id)
	delete(m.attachments, id)
	return nil
}

func (m *memStore) AddAttachment(_ context.Context, tenantID, settlementID, fileURL string) (string, error) {
	m.seq++
	id := fmt.Sprintf("att-%d", m.seq)
	m.attachments[settlementID] = append(m.attachments[settlementID], settlement.Attachment{
		ID: id, SettlementID: settlementID, FileURL: fileURL,
	})
	return id, nil
}

func (m *memStore) ListAttachments(_ context.Context, tenantID, settlementID string) ([]settlement.Attachment, error) {
	return m.attachments[settlementID], nil
}

type allowAll struct{}

func (allowAll) HasPermission(context.Context, string, string) (bool, error) { return true, nil }

func newTestRouter(t *testing.T) (*chi.Mux, *memStore) {
	t.Helper()
	store := newMemStore()
	svc := settlement.NewService(store, nil, settlement.DefaultCaps(), settlement.StandardDefaults(), "")
	handler := NewHandler(svc, nil, allowAll{})

	router := chi.NewRouter()
	router.Use(middleware.Auth(testSecret))
	router.Route("/api/v1", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return router, store
}

func bearerToken(t *testing.T, tenantID string) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{
		UserID: "u1", TenantID: tenantID, RoleID: "r1", RoleName: auth.RolePreparer,
	}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, payload)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createPayload() map[string]any {
	return map[string]any{
		"employeeName":    "Laura Mendoza",
		"position":        "Analista",
		"hireDate":        "2020-01-01",
		"terminationDate": "2024-06-30",
		"dailySalary":     500,
		"workedDays":      30,
	}
}

func TestCreateSettlementJourney(t *testing.T) {
	router, _ := newTestRouter(t)
	token := bearerToken(t, "t1")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/settlements", token, createPayload())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Success bool              `json:"success"`
		Data    settlement.Record `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !envelope.Success || envelope.Data.ID == "" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
	if envelope.Data.Result.Totales.TotalAPagar.StringFixed(2) != "24979.46" {
		t.Fatalf("unexpected total: %s", envelope.Data.Result.Totales.TotalAPagar)
	}
	if envelope.Data.Input.AguinaldoDays != settlement.DefaultAguinaldoDays {
		t.Fatal("benefit-plan defaults must be resolved on create")
	}

	got := doJSON(t, router, http.MethodGet, "/api/v1/settlements/"+envelope.Data.ID, token, nil)
	if got.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", got.Code)
	}
}

func TestCreateSettlementFlagsDaysFactorOverride(t *testing.T) {
	router, store := newTestRouter(t)
	token := bearerToken(t, "t1")

	payload := createPayload()
	payload["daysPerMonth"] = 31
	rec := doJSON(t, router, http.MethodPost, "/api/v1/settlements", token, payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("an override without a reason must be rejected, got %d: %s", rec.Code, rec.Body.String())
	}

	payload["daysPerMonthReason"] = "nómina mensual de 31 días"
	rec = doJSON(t, router, http.MethodPost, "/api/v1/settlements", token, payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	for _, stored := range store.records {
		if !stored.Input.DaysPerMonthOverridden {
			t.Fatal("a created record with a non-default days factor must carry the override flag")
		}
		if stored.Input.DaysPerMonthReason == "" {
			t.Fatal("the override reason must be persisted with the record")
		}
	}
}

func TestCreateSettlementRejectsBadDates(t *testing.T) {
	router, _ := newTestRouter(t)
	token := bearerToken(t, "t1")

	payload := createPayload()
	payload["hireDate"] = "not-a-date"
	rec := doJSON(t, router, http.MethodPost, "/api/v1/settlements", token, payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("validation_error")) {
		t.Fatalf("expected validation_error envelope, got %s", rec.Body.String())
	}
}

func TestCreateSettlementRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/settlements", "", createPayload())
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPatchSettlementRecalculates(t *testing.T) {
	router, store := newTestRouter(t)
	token := bearerToken(t, "t1")

	created := doJSON(t, router, http.MethodPost, "/api/v1/settlements", token, createPayload())
	var envelope struct {
		Data settlement.Record `json:"data"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	before := store.records[envelope.Data.ID].Result

	rec := doJSON(t, router, http.MethodPatch, "/api/v1/settlements/"+envelope.Data.ID, token, map[string]any{
		"dailySalary": 600,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	after := store.records[envelope.Data.ID].Result
	if after.Totales.TotalAPagar.Equal(before.Totales.TotalAPagar) {
		t.Fatal("salary patch must recalculate the stored result")
	}

	nameOnly := doJSON(t, router, http.MethodPatch, "/api/v1/settlements/"+envelope.Data.ID, token, map[string]any{
		"employeeName": "Otro Nombre",
	})
	if nameOnly.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", nameOnly.Code)
	}
	if !store.records[envelope.Data.ID].Result.Totales.TotalAPagar.Equal(after.Totales.TotalAPagar) {
		t.Fatal("a name-only patch must leave the stored result untouched")
	}
}

func TestPatchLegacySettlementConflicts(t *testing.T) {
	router, store := newTestRouter(t)
	token := bearerToken(t, "t1")

	created := doJSON(t, router, http.MethodPost, "/api/v1/settlements", token, createPayload())
	var envelope struct {
		Data settlement.Record `json:"data"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	legacy := store.records[envelope.Data.ID]
	legacy.Version = settlement.LegacyVersion
	store.records[envelope.Data.ID] = legacy

	rec := doJSON(t, router, http.MethodPatch, "/api/v1/settlements/"+envelope.Data.ID, token, map[string]any{
		"employeeName": "X",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestDeleteSettlement(t *testing.T) {
	router, _ := newTestRouter(t)
	token := bearerToken(t, "t1")

	created := doJSON(t, router, http.MethodPost, "/api/v1/settlements", token, createPayload())
	var envelope struct {
		Data settlement.Record `json:"data"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/settlements/"+envelope.Data.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	gone := doJSON(t, router, http.MethodGet, "/api/v1/settlements/"+envelope.Data.ID, token, nil)
	if gone.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", gone.Code)
	}
}

func TestTenantIsolationAcrossRequests(t *testing.T) {
	router, _ := newTestRouter(t)

	created := doJSON(t, router, http.MethodPost, "/api/v1/settlements", bearerToken(t, "t1"), createPayload())
	var envelope struct {
		Data settlement.Record `json:"data"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/settlements/"+envelope.Data.ID, bearerToken(t, "t2"), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 across tenants, got %d", rec.Code)
	}
}

func TestDuplicateSettlementReturnsDraft(t *testing.T) {
	router, _ := newTestRouter(t)
	token := bearerToken(t, "t1")

	created := doJSON(t, router, http.MethodPost, "/api/v1/settlements", token, createPayload())
	var envelope struct {
		Data settlement.Record `json:"data"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/settlements/"+envelope.Data.ID+"/duplicate", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var draftEnvelope struct {
		Data settlement.WizardDraft `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &draftEnvelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if draftEnvelope.Data.Base.EmployeeName != "Laura Mendoza" {
		t.Fatalf("draft must carry source fields: %+v", draftEnvelope.Data.Base)
	}
}

func TestStatementDownload(t *testing.T) {
	router, _ := newTestRouter(t)
	token := bearerToken(t, "t1")

	created := doJSON(t, router, http.MethodPost, "/api/v1/settlements", token, createPayload())
	var envelope struct {
		Data settlement.Record `json:"data"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/settlements/"+envelope.Data.ID+"/statement", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected PDF bytes")
	}

	grouped := doJSON(t, router, http.MethodGet, "/api/v1/settlements/"+envelope.Data.ID+"/statement?mode=grouped", token, nil)
	if grouped.Code != http.StatusOK {
		t.Fatalf("expected 200 for grouped mode, got %d", grouped.Code)
	}
}
