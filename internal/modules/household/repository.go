package household

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/arcadia-advisors/intake/internal/domain"
	"github.com/arcadia-advisors/intake/internal/utils"
)

// historyKeep is how many checkpoint rows Save retains in snapshot_history
const historyKeep = 20

// Repository persists household snapshots in intake.db. The live snapshot
// is a single msgpack blob keyed to row 1; every save also appends a
// checkpoint row and prunes the history to a bounded length.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a household snapshot repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "household").Logger(),
	}
}

// Save writes the current snapshot. The caller treats this as best-effort:
// an error here is logged, never surfaced as a blocking failure.
func (r *Repository) Save(h *domain.Household) error {
	if h == nil {
		return fmt.Errorf("household is nil")
	}

	defer utils.OperationTimer("snapshot_save", r.log)()

	data, err := msgpack.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to encode household snapshot: %w", err)
	}

	now := time.Now().Unix()

	_, err = r.db.Exec(`
		INSERT INTO household_snapshot (id, household_id, data, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			household_id = excluded.household_id,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, h.ID, data, now)
	if err != nil {
		return fmt.Errorf("failed to save household snapshot: %w", err)
	}

	if _, err := r.db.Exec(`
		INSERT INTO snapshot_history (household_id, data, created_at)
		VALUES (?, ?, ?)
	`, h.ID, data, now); err != nil {
		r.log.Warn().Err(err).Msg("Failed to append snapshot checkpoint")
	} else if _, err := r.db.Exec(`
		DELETE FROM snapshot_history
		WHERE id NOT IN (
			SELECT id FROM snapshot_history ORDER BY id DESC LIMIT ?
		)
	`, historyKeep); err != nil {
		r.log.Warn().Err(err).Msg("Failed to prune snapshot history")
	}

	r.log.Debug().
		Str("household_id", h.ID).
		Int("size_bytes", len(data)).
		Msg("Saved household snapshot")

	return nil
}

// Load reads the live snapshot. Returns nil without error when no snapshot
// has been saved yet (fresh session).
func (r *Repository) Load() (*domain.Household, error) {
	var data []byte
	err := r.db.QueryRow("SELECT data FROM household_snapshot WHERE id = 1").Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load household snapshot: %w", err)
	}

	var h domain.Household
	if err := msgpack.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to decode household snapshot: %w", err)
	}

	return &h, nil
}
