package settlement

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type memStore struct {
	seq         int
	records     map[string]Record
	attachments map[string][]Attachment
}

func newMemStore() *memStore {
	return &memStore{records: map[string]Record{}, attachments: map[string][]Attachment{}}
}

func (m *memStore) Create(_ context.Context, tenantID string, input Input, result Result) (string, error) {
	m.seq++
	id := fmt.Sprintf("rec-%d", m.seq)
	now := time.Now().UTC()
	m.records[id] = Record{
		ID: id, TenantID: tenantID, Version: CurrentVersion,
		Input: input, Result: result, CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (m *memStore) Get(_ context.Context, tenantID, id string) (Record, error) {
	rec, ok := m.records[id]
	if !ok || rec.TenantID != tenantID {
		return Record{}, ErrRecordNotFound
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

func (m *memStore) List(_ context.Context, tenantID string, limit, offset int) ([]Record, error) {
	var out []Record
	for _, rec := range m.records {
		if rec.TenantID == tenantID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memStore) UpdateInput(_ context.Context, tenantID, id string, input Input) error {
	rec, ok := m.records[id]
	if !ok || rec.TenantID != tenantID {
		return ErrRecordNotFound
	}
	rec.Input = input
	rec.UpdatedAt = time.Now().UTC()
	m.records[id] = rec
	return nil
}

func (m *memStore) UpdateInputAndResult(_ context.Context, tenantID, id string, input Input, result Result) error {
	rec, ok := m.records[id]
	if !ok || rec.TenantID != tenantID {
		return ErrRecordNotFound
	}
	rec.Input = input
	rec.Result = result
	rec.UpdatedAt = time.Now().UTC()
	m.records[id] = rec
	return nil
}

func (m *memStore) Delete(_ context.Context, tenantID, id string) error {
	rec, ok := m.records[id]
	if !ok || rec.TenantID != tenantID {
		return ErrRecordNotFound
	}
	delete(m.records, id)
	delete(m.attachments, id)
	return nil
}

func (m *memStore) AddAttachment(_ context.Context, tenantID, settlementID, fileURL string) (string, error) {
	m.seq++
	id := fmt.Sprintf("att-%d", m.seq)
	m.attachments[settlementID] = append(m.attachments[settlementID], Attachment{
		ID: id, SettlementID: settlementID, FileURL: fileURL, CreatedAt: time.Now().UTC(),
	})
	return id, nil
}

func (m *memStore) ListAttachments(_ context.Context, tenantID, settlementID string) ([]Attachment, error) {
	return m.attachments[settlementID], nil
}

func newTestService(store StoreAPI) *Service {
	return NewService(store, nil, DefaultCaps(), StandardDefaults(), "")
}

func TestServiceCreatePersistsDerivedFields(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	in := baseInput()
	in.DaysPerMonth = 0
	rec, err := svc.Create(context.Background(), "t1", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Version != CurrentVersion {
		t.Fatalf("expected version %d, got %d", CurrentVersion, rec.Version)
	}
	if rec.Result.Totales.TotalAPagar.StringFixed(2) != "24979.46" {
		t.Fatalf("unexpected total: %s", rec.Result.Totales.TotalAPagar)
	}
	if rec.Input.DaysPerMonth != DefaultDaysPerMonth {
		t.Fatalf("defaults must be resolved before persisting, got %v", rec.Input.DaysPerMonth)
	}
}

func TestServiceCreateFlagsDaysFactorOverride(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	in := baseInput()
	in.DaysPerMonth = 31
	if _, err := svc.Create(context.Background(), "t1", in); err == nil {
		t.Fatal("an overridden days factor without a reason must be rejected")
	}

	in.DaysPerMonthReason = "nómina mensual de 31 días"
	rec, err := svc.Create(context.Background(), "t1", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.Input.DaysPerMonthOverridden {
		t.Fatal("a created record with a non-default days factor must carry the override flag")
	}
	if !rec.Result.Metadata.DaysPerMonthOverridden || rec.Result.Metadata.DaysPerMonthReason == "" {
		t.Fatal("the override flag and reason must land in the result metadata")
	}
}

func TestServiceUpdateExplicitZeroSurvives(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), "t1", baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Update(context.Background(), "t1", created.ID, Patch{
		VacationPremiumPercent: floatPtr(0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Input.VacationPremiumPercent != 0 {
		t.Fatalf("an explicitly patched zero must not be re-defaulted, got %v", updated.Input.VacationPremiumPercent)
	}
	if !updated.Result.Amounts.Finiquito.VacationPremium.Amount.IsZero() {
		t.Fatalf("a zero premium must yield a zero amount, got %s", updated.Result.Amounts.Finiquito.VacationPremium.Amount)
	}
}

func TestServiceUpdateRederivesDaysFactorOverride(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), "t1", baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Update(context.Background(), "t1", created.ID, Patch{
		DaysPerMonth:       floatPtr(31),
		DaysPerMonthReason: strPtr("contrato colectivo"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Input.DaysPerMonthOverridden {
		t.Fatal("patching a non-default days factor must set the override flag")
	}

	restored, err := svc.Update(context.Background(), "t1", created.ID, Patch{
		DaysPerMonth: floatPtr(DefaultDaysPerMonth),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.Input.DaysPerMonthOverridden {
		t.Fatal("restoring the default must clear the override flag")
	}
}

func TestServiceCreateRejectsInvalidInput(t *testing.T) {
	svc := newTestService(newMemStore())
	in := baseInput()
	in.DailySalary = decimal.Zero

	_, err := svc.Create(context.Background(), "t1", in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceUpdateNameOnlySkipsRecalculation(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), "t1", baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := created.Result

	updated, err := svc.Update(context.Background(), "t1", created.ID, Patch{EmployeeName: strPtr("Otro Nombre")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Input.EmployeeName != "Otro Nombre" {
		t.Fatal("direct field write must land")
	}
	if !reflect.DeepEqual(before, updated.Result) {
		t.Fatal("a name-only update must not alter any stored factor or amount")
	}
}

func TestServiceUpdateTriggerFieldRecalculates(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), "t1", baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Update(context.Background(), "t1", created.ID, Patch{
		DailySalary: decPtr(decimal.NewFromInt(600)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Result.Totales.TotalAPagar.Equal(created.Result.Totales.TotalAPagar) {
		t.Fatal("a salary change must regenerate the derived fields")
	}
	if !updated.Result.Amounts.Finiquito.WorkedDays.DailySalary.Equal(decimal.NewFromInt(600)) {
		t.Fatal("recalculation must use the merged salary")
	}
}

func TestServiceUpdateDisablingComponentClearsIt(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	in := baseInput()
	in.Liquidation = &LiquidationInput{SeveranceDays: 90, SeniorityPremiumDays: 12}
	created, err := svc.Create(context.Background(), "t1", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Result.Amounts.Liquidacion == nil {
		t.Fatal("expected liquidación in the created record")
	}

	updated, err := svc.Update(context.Background(), "t1", created.ID, Patch{EnableLiquidation: boolPtr(false)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Result.Amounts.Liquidacion != nil || updated.Result.Factors.Liquidacion != nil {
		t.Fatal("disabling liquidación must clear its result fields, not leave stale values")
	}
}

func TestServiceUpdateRejectsLegacyRecord(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), "t1", baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	legacy := store.records[created.ID]
	legacy.Version = LegacyVersion
	store.records[created.ID] = legacy

	_, err = svc.Update(context.Background(), "t1", created.ID, Patch{EmployeeName: strPtr("X")})
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestServiceDuplicateRejectsLegacyRecord(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), "t1", baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	legacy := store.records[created.ID]
	legacy.Version = LegacyVersion
	store.records[created.ID] = legacy

	draft, err := svc.Duplicate(context.Background(), "t1", created.ID)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
	if draft != nil {
		t.Fatal("legacy duplication must never partially succeed")
	}
}

func TestServiceDuplicateProducesDraft(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), "t1", baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	draft, err := svc.Duplicate(context.Background(), "t1", created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Base.EmployeeName != created.Input.EmployeeName {
		t.Fatal("draft must carry the source record's fields")
	}
}

func TestServiceTenantIsolation(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), "t1", baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(context.Background(), "t2", created.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound across tenants, got %v", err)
	}
}

func TestServiceDeleteRemovesRecordAndAttachments(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), "t1", baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.AddAttachment(context.Background(), "t1", created.ID, "storage/x.pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), "t1", created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(context.Background(), "t1", created.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Fatal("record must be gone after delete")
	}
	if atts, _ := store.ListAttachments(context.Background(), "t1", created.ID); len(atts) != 0 {
		t.Fatal("attachments must be removed with the record")
	}
}

func TestServiceGenerateStatement(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), "t1", baseInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := svc.GenerateStatement(context.Background(), "t1", created.ID, DisplayConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected PDF bytes")
	}
}
