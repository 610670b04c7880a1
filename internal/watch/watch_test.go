package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ccprops/internal/logging"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) record(p string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, p)
}

func (r *recorder) seen(p string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, got := range r.paths {
		if got == p {
			return true
		}
	}
	return false
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "compile_commands.json")
	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(target, []byte("[]"), 0o644))

	rec := &recorder{}
	w := New(rec.record, WithLogger(logging.ForTest(t)))
	defer w.Close()

	w.Set([]string{target})
	assert.Equal(t, []string{target}, w.Watching())

	require.NoError(t, os.WriteFile(other, []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte(`[{"file":"a.c"}]`), 0o644))

	require.Eventually(t, func() bool { return rec.seen(target) }, 5*time.Second, 20*time.Millisecond)
	assert.False(t, rec.seen(other))
}

func TestWatcher_SetReplacesPrevious(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")

	rec := &recorder{}
	w := New(rec.record)
	defer w.Close()

	w.Set([]string{first})
	w.Set([]string{second, second, ""})
	assert.Equal(t, []string{second}, w.Watching())

	require.NoError(t, os.WriteFile(second, []byte("x"), 0o644))
	require.Eventually(t, func() bool { return rec.seen(second) }, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(first, []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.False(t, rec.seen(first))
}

func TestWatcher_MissingDirectoryDegrades(t *testing.T) {
	w := New(func(string) {})
	w.Set([]string{filepath.Join(t.TempDir(), "missing", "compile_commands.json")})
	assert.Empty(t, w.Watching())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatcher_EmptySet(t *testing.T) {
	w := New(func(string) {})
	w.Set(nil)
	assert.Empty(t, w.Watching())
}
