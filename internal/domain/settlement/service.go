package settlement

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	cryptoutil "finiquitos/internal/platform/crypto"
)

type Service struct {
	store        StoreAPI
	crypto       *cryptoutil.Service
	caps         Caps
	defaults     Defaults
	statementDir string
}

func NewService(store StoreAPI, crypto *cryptoutil.Service, caps Caps, defaults Defaults, statementDir string) *Service {
	return &Service{store: store, crypto: crypto, caps: caps, defaults: defaults, statementDir: statementDir}
}

func (s *Service) Create(ctx context.Context, tenantID string, in Input) (Record, error) {
	in = s.defaults.Apply(in)
	result, err := Calculate(in, s.caps)
	if err != nil {
		return Record{}, err
	}
	id, err := s.store.Create(ctx, tenantID, in, *result)
	if err != nil {
		return Record{}, err
	}
	return s.store.Get(ctx, tenantID, id)
}

func (s *Service) Get(ctx context.Context, tenantID, id string) (Record, error) {
	return s.store.Get(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID string, limit, offset int) ([]Record, int, error) {
	total, err := s.store.Count(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}
	records, err := s.store.List(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Update applies a partial update under the recalculation policy. Trigger
// fields re-run the whole pipeline over the merged input and replace every
// derived field atomically; otherwise only the direct field writes land and
// the stored result is left byte-for-byte intact. Version-1 records are
// rejected before anything is merged.
func (s *Service) Update(ctx context.Context, tenantID, id string, patch Patch) (Record, error) {
	rec, err := s.store.Get(ctx, tenantID, id)
	if err != nil {
		return Record{}, err
	}
	if rec.Version != CurrentVersion {
		return Record{}, ErrUnsupportedVersion
	}

	merged := patch.Apply(rec.Input)

	if !patch.RequiresRecalculation() {
		if err := s.store.UpdateInput(ctx, tenantID, id, merged); err != nil {
			return Record{}, err
		}
		return s.store.Get(ctx, tenantID, id)
	}

	// Defaults were resolved at create time; a patched field wins as-is,
	// explicit zeros included. Only the override flag is re-derived.
	merged = s.defaults.flagOverride(merged)
	result, err := Calculate(merged, s.caps)
	if err != nil {
		return Record{}, err
	}
	if err := s.store.UpdateInputAndResult(ctx, tenantID, id, merged, *result); err != nil {
		return Record{}, err
	}
	return s.store.Get(ctx, tenantID, id)
}

func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	return s.store.Delete(ctx, tenantID, id)
}

// Duplicate maps an existing record into the wizard draft shapes. Legacy
// records fail fast with ErrUnsupportedVersion.
func (s *Service) Duplicate(ctx context.Context, tenantID, id string) (*WizardDraft, error) {
	rec, err := s.store.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return WizardDraftFromRecord(rec)
}

// GenerateStatement renders the settlement statement and, when an encryption
// key is configured, archives an encrypted copy registered as an attachment.
func (s *Service) GenerateStatement(ctx context.Context, tenantID, id string, cfg DisplayConfig) ([]byte, error) {
	rec, err := s.store.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	data, err := RenderStatement(rec, cfg)
	if err != nil {
		return nil, err
	}

	if s.crypto != nil && s.crypto.Configured() && s.statementDir != "" {
		if err := s.archiveStatement(ctx, tenantID, rec.ID, data); err != nil {
			slog.Warn("statement archive failed", "settlementId", rec.ID, "err", err)
		}
	}
	return data, nil
}

func (s *Service) archiveStatement(ctx context.Context, tenantID, id string, data []byte) error {
	if err := os.MkdirAll(s.statementDir, 0o755); err != nil {
		return err
	}
	encrypted, err := s.crypto.Encrypt(data)
	if err != nil {
		return err
	}
	path := filepath.Join(s.statementDir, fmt.Sprintf("%s.pdf.enc", id))
	if err := os.WriteFile(path, encrypted, 0o600); err != nil {
		return err
	}
	_, err = s.store.AddAttachment(ctx, tenantID, id, path)
	return err
}
