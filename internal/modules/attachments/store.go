// Package attachments implements the identity-attachment collaborator:
// given uploaded file bytes it stores them under the data directory and
// returns an opaque reference string. The engine stores the reference
// verbatim and never inspects file contents.
package attachments

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Attachment describes one stored file
type Attachment struct {
	Ref          string    `json:"ref"`
	OriginalName string    `json:"original_name"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store persists uploaded files on disk with an index row in intake.db
type Store struct {
	dir string
	db  *sql.DB
	log zerolog.Logger
}

// NewStore creates an attachment store rooted at dataDir/attachments
func NewStore(dataDir string, db *sql.DB, log zerolog.Logger) (*Store, error) {
	dir := filepath.Join(dataDir, "attachments")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create attachments directory: %w", err)
	}

	return &Store{
		dir: dir,
		db:  db,
		log: log.With().Str("component", "attachments").Logger(),
	}, nil
}

// Put stores file bytes and returns the opaque reference. The reference is
// a fresh uuid with the original extension, so original names never leak
// into paths.
func (s *Store) Put(originalName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	ref := uuid.New().String() + ext

	path := filepath.Join(s.dir, ref)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}

	_, err := s.db.Exec(`
		INSERT INTO attachments (ref, original_name, size_bytes, created_at)
		VALUES (?, ?, ?, ?)
	`, ref, originalName, len(data), time.Now().Unix())
	if err != nil {
		// The file is already on disk; keep it but report the index failure.
		return "", fmt.Errorf("failed to index attachment: %w", err)
	}

	s.log.Info().
		Str("ref", ref).
		Int("size_bytes", len(data)).
		Msg("Stored attachment")

	return ref, nil
}

// Open returns the stored bytes for a reference
func (s *Store) Open(ref string) ([]byte, error) {
	// Reject path traversal in refs coming from clients
	if ref != filepath.Base(ref) {
		return nil, fmt.Errorf("invalid attachment reference: %s", ref)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, ref))
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment %s: %w", ref, err)
	}
	return data, nil
}

// Describe returns the index row for a reference
func (s *Store) Describe(ref string) (*Attachment, error) {
	var a Attachment
	var createdAt int64
	err := s.db.QueryRow(`
		SELECT ref, original_name, size_bytes, created_at
		FROM attachments WHERE ref = ?
	`, ref).Scan(&a.Ref, &a.OriginalName, &a.SizeBytes, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("attachment not found: %s", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to describe attachment %s: %w", ref, err)
	}

	a.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &a, nil
}
