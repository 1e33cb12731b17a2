package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/apperrors"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/model"
)

// DraftRepository provides data access methods for the draft table. Each
// wizard section is stored as its own JSON column; the personal profile
// contains PII and is fernet-encrypted at rest when a key is configured.
type DraftRepository struct {
	db  *sql.DB
	tx  *sql.Tx
	key *fernet.Key
}

// NewDraftRepository creates a new DraftRepository with the provided
// database connection. encryptionKey is a base64-encoded fernet key; empty
// disables encryption.
func NewDraftRepository(db *sql.DB, encryptionKey string) (*DraftRepository, error) {
	repo := &DraftRepository{db: db}
	if encryptionKey != "" {
		key, err := fernet.DecodeKey(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode draft encryption key: %w", err)
		}
		repo.key = key
	}
	return repo, nil
}

func (r *DraftRepository) WithTx(tx *sql.Tx) *DraftRepository {
	return &DraftRepository{
		db:  r.db,
		tx:  tx,
		key: r.key,
	}
}

func (r *DraftRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetDraft retrieves a draft by ID. Returns apperrors.ErrDraftNotFound if
// no draft with that ID exists.
func (r *DraftRepository) GetDraft(id string) (model.Draft, error) {
	query := `
		SELECT id, wizard_step, profile, snapshot, risk_answers, risk_profile, allocation_plan, created_at, updated_at
		FROM draft
		WHERE id = ?
	`

	var draft model.Draft
	var profile, snapshot, riskAnswers, riskProfile, plan sql.NullString

	err := r.getQuerier().QueryRow(query, id).Scan(
		&draft.ID,
		&draft.Step,
		&profile,
		&snapshot,
		&riskAnswers,
		&riskProfile,
		&plan,
		&draft.CreatedAt,
		&draft.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Draft{}, apperrors.ErrDraftNotFound
	}
	if err != nil {
		return model.Draft{}, fmt.Errorf("failed to query draft table: %w", err)
	}

	if err := r.decodeSection(profile, true, &draft.Profile); err != nil {
		return model.Draft{}, err
	}
	if err := r.decodeSection(snapshot, false, &draft.Snapshot); err != nil {
		return model.Draft{}, err
	}
	if err := r.decodeSection(riskAnswers, false, &draft.RiskAnswers); err != nil {
		return model.Draft{}, err
	}
	if err := r.decodeSection(riskProfile, false, &draft.RiskProfile); err != nil {
		return model.Draft{}, err
	}
	if err := r.decodeSection(plan, false, &draft.Plan); err != nil {
		return model.Draft{}, err
	}

	return draft, nil
}

// SaveDraft inserts or replaces the draft row. UpdatedAt is set to the
// current UTC time; CreatedAt is preserved on updates.
func (r *DraftRepository) SaveDraft(draft model.Draft) error {
	profile, err := r.encodeSection(draft.Profile, true)
	if err != nil {
		return err
	}
	snapshot, err := r.encodeSection(draft.Snapshot, false)
	if err != nil {
		return err
	}
	riskAnswers, err := r.encodeSection(draft.RiskAnswers, false)
	if err != nil {
		return err
	}
	riskProfile, err := r.encodeSection(draft.RiskProfile, false)
	if err != nil {
		return err
	}
	plan, err := r.encodeSection(draft.Plan, false)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO draft (id, wizard_step, profile, snapshot, risk_answers, risk_profile, allocation_plan, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			wizard_step = excluded.wizard_step,
			profile = excluded.profile,
			snapshot = excluded.snapshot,
			risk_answers = excluded.risk_answers,
			risk_profile = excluded.risk_profile,
			allocation_plan = excluded.allocation_plan,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC()
	createdAt := draft.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err = r.getQuerier().Exec(query,
		draft.ID, draft.Step, profile, snapshot, riskAnswers, riskProfile, plan, createdAt, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// DeleteDraft removes a draft by ID. Returns apperrors.ErrDraftNotFound if
// no row was deleted.
func (r *DraftRepository) DeleteDraft(id string) error {
	result, err := r.getQuerier().Exec(`DELETE FROM draft WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDraftNotFound
	}
	return nil
}

// DeleteStale removes all drafts not updated since the cutoff and returns
// how many were deleted.
func (r *DraftRepository) DeleteStale(cutoff time.Time) (int64, error) {
	result, err := r.getQuerier().Exec(`DELETE FROM draft WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale drafts: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return deleted, nil
}

// encodeSection marshals one wizard section to JSON, encrypting it when it
// holds personal data and a key is configured. Nil sections become NULL.
func (r *DraftRepository) encodeSection(section any, sensitive bool) (sql.NullString, error) {
	if isNilSection(section) {
		return sql.NullString{}, nil
	}

	payload, err := json.Marshal(section)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to marshal draft section: %w", err)
	}

	if sensitive && r.key != nil {
		token, err := fernet.EncryptAndSign(payload, r.key)
		if err != nil {
			return sql.NullString{}, fmt.Errorf("failed to encrypt draft section: %w", err)
		}
		return sql.NullString{String: string(token), Valid: true}, nil
	}
	return sql.NullString{String: string(payload), Valid: true}, nil
}

// decodeSection unmarshals one wizard section, decrypting it first when it
// holds personal data and a key is configured.
func (r *DraftRepository) decodeSection(column sql.NullString, sensitive bool, target any) error {
	if !column.Valid || column.String == "" {
		return nil
	}

	payload := []byte(column.String)
	if sensitive && r.key != nil {
		decrypted := fernet.VerifyAndDecrypt(payload, 0, []*fernet.Key{r.key})
		if decrypted == nil {
			return fmt.Errorf("failed to decrypt draft section")
		}
		payload = decrypted
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("failed to unmarshal draft section: %w", err)
	}
	return nil
}

// isNilSection reports whether the section pointer or map is nil, so NULL
// is stored instead of the JSON literal "null".
func isNilSection(section any) bool {
	switch v := section.(type) {
	case nil:
		return true
	case *model.PersonalProfile:
		return v == nil
	case *model.FinancialSnapshot:
		return v == nil
	case *model.RiskProfile:
		return v == nil
	case *model.AllocationPlan:
		return v == nil
	case model.RiskAnswers:
		return v == nil
	}
	return false
}
