package settlement

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) Create(ctx context.Context, tenantID string, input Input, result Result) (string, error) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO settlements (tenant_id, version, employee_name, position, input_json, result_json)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, tenantID, CurrentVersion, input.EmployeeName, input.Position, inputJSON, resultJSON).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, tenantID, id string) (Record, error) {
	var rec Record
	var inputJSON, resultJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT id, tenant_id, version, input_json, result_json, created_at, updated_at
    FROM settlements
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, id).Scan(&rec.ID, &rec.TenantID, &rec.Version, &inputJSON, &resultJSON, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	if err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(inputJSON, &rec.Input); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(resultJSON, &rec.Result); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Store) Count(ctx context.Context, tenantID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM settlements WHERE tenant_id = $1", tenantID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) List(ctx context.Context, tenantID string, limit, offset int) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, tenant_id, version, input_json, result_json, created_at, updated_at
    FROM settlements
    WHERE tenant_id = $1
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var inputJSON, resultJSON []byte
		if err := rows.Scan(&rec.ID, &rec.TenantID, &rec.Version, &inputJSON, &resultJSON, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(inputJSON, &rec.Input); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(resultJSON, &rec.Result); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// UpdateInput writes only the input document and its denormalized columns.
// Used by the no-op recalculation path; derived fields stay untouched.
func (s *Store) UpdateInput(ctx context.Context, tenantID, id string, input Input) error {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE settlements
    SET employee_name = $1, position = $2, input_json = $3, updated_at = now()
    WHERE tenant_id = $4 AND id = $5 AND version = $6
  `, input.EmployeeName, input.Position, inputJSON, tenantID, id, CurrentVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// UpdateInputAndResult replaces the merged input and every derived field in
// one statement, so readers never observe a half-recalculated record.
func (s *Store) UpdateInputAndResult(ctx context.Context, tenantID, id string, input Input, result Result) error {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return err
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE settlements
    SET employee_name = $1, position = $2, input_json = $3, result_json = $4, updated_at = now()
    WHERE tenant_id = $5 AND id = $6 AND version = $7
  `, input.EmployeeName, input.Position, inputJSON, resultJSON, tenantID, id, CurrentVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes the record and its attachments as a unit.
func (s *Store) Delete(ctx context.Context, tenantID, id string) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM settlement_attachments WHERE tenant_id = $1 AND settlement_id = $2", tenantID, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, "DELETE FROM settlements WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return tx.Commit(ctx)
}

func (s *Store) AddAttachment(ctx context.Context, tenantID, settlementID, fileURL string) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO settlement_attachments (tenant_id, settlement_id, file_url)
    VALUES ($1,$2,$3)
    RETURNING id
  `, tenantID, settlementID, fileURL).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListAttachments(ctx context.Context, tenantID, settlementID string) ([]Attachment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, settlement_id, file_url, created_at
    FROM settlement_attachments
    WHERE tenant_id = $1 AND settlement_id = $2
    ORDER BY created_at
  `, tenantID, settlementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []Attachment
	for rows.Next() {
		var att Attachment
		if err := rows.Scan(&att.ID, &att.SettlementID, &att.FileURL, &att.CreatedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, att)
	}
	return attachments, nil
}
