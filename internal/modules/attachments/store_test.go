package attachments

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intaketesting "github.com/arcadia-advisors/intake/internal/testing"
)

func newTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	db, cleanup := intaketesting.NewTestDB(t)

	store, err := NewStore(t.TempDir(), db.Conn(), zerolog.Nop())
	require.NoError(t, err)
	return store, cleanup
}

func TestPutAndOpen(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	payload := []byte("scanned passport bytes")
	ref, err := store.Put("passport.pdf", payload)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(ref, ".pdf"), "reference keeps the original extension")
	assert.NotContains(t, ref, "passport", "original name never leaks into the reference")

	data, err := store.Open(ref)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestDescribe(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	ref, err := store.Put("license.png", []byte{1, 2, 3})
	require.NoError(t, err)

	a, err := store.Describe(ref)
	require.NoError(t, err)
	assert.Equal(t, ref, a.Ref)
	assert.Equal(t, "license.png", a.OriginalName)
	assert.Equal(t, int64(3), a.SizeBytes)
	assert.False(t, a.CreatedAt.IsZero())

	_, err = store.Describe("missing-ref")
	assert.Error(t, err)
}

func TestOpen_RejectsPathTraversal(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	for _, ref := range []string{"../intake.db", "sub/dir.pdf", "../../etc/passwd"} {
		_, err := store.Open(ref)
		assert.Error(t, err, ref)
	}
}
