package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type changeRecorder struct {
	mu      sync.Mutex
	changes [][]string
}

func (r *changeRecorder) record(files []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, files)
	return nil
}

func (r *changeRecorder) all() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.changes...)
}

func TestFileWatcherDetectsWrites(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "cpp-classes.json")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(watched, []byte(`{}`), 0o644))

	rec := &changeRecorder{}
	watcher, err := NewFileWatcher([]string{watched, ""}, rec.record, WithDebounce(30*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte(`{"Classes":[]}`), 0o644))

	require.Eventually(t, func() bool { return len(rec.all()) > 0 }, 2*time.Second, 10*time.Millisecond)

	for _, batch := range rec.all() {
		for _, f := range batch {
			assert.Equal(t, "cpp-classes.json", filepath.Base(f))
		}
	}
}

func TestFileWatcherDetectsReplaceByRename(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "cpp-classes.json")
	require.NoError(t, os.WriteFile(watched, []byte(`{}`), 0o644))

	rec := &changeRecorder{}
	watcher, err := NewFileWatcher([]string{watched}, rec.record, WithDebounce(30*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer watcher.Stop()

	tmp := filepath.Join(dir, "cpp-classes.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"Enums":[]}`), 0o644))
	require.NoError(t, os.Rename(tmp, watched))

	require.Eventually(t, func() bool { return len(rec.all()) > 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestNewFileWatcherRequiresFiles(t *testing.T) {
	_, err := NewFileWatcher([]string{"", ""}, func([]string) error { return nil })
	assert.Error(t, err)
}

func TestFileWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	watcher, err := NewFileWatcher([]string{filepath.Join(dir, "a.json")}, func([]string) error { return nil })
	require.NoError(t, err)
	require.NoError(t, watcher.Start())

	assert.NoError(t, watcher.Stop())
	assert.NoError(t, watcher.Stop())
}

func TestDebouncerCoalesces(t *testing.T) {
	rec := &changeRecorder{}
	debouncer := NewDebouncer(50 * time.Millisecond)
	debouncer.SetCallback(func(f []string) { _ = rec.record(f) })
	defer debouncer.Stop()

	debouncer.Add("b.json")
	debouncer.Add("a.json")
	debouncer.Add("b.json")

	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"a.json", "b.json"}, rec.all()[0])
}

func TestDebouncerMultipleFlushes(t *testing.T) {
	rec := &changeRecorder{}
	debouncer := NewDebouncer(20 * time.Millisecond)
	debouncer.SetCallback(func(f []string) { _ = rec.record(f) })
	defer debouncer.Stop()

	debouncer.Add("a.json")
	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, time.Second, 5*time.Millisecond)

	debouncer.Add("b.json")
	require.Eventually(t, func() bool { return len(rec.all()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncerStopDropsPending(t *testing.T) {
	rec := &changeRecorder{}
	debouncer := NewDebouncer(20 * time.Millisecond)
	debouncer.SetCallback(func(f []string) { _ = rec.record(f) })

	debouncer.Add("a.json")
	debouncer.Stop()
	debouncer.Add("b.json")

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.all())
}

func BenchmarkDebouncer_Add(b *testing.B) {
	debouncer := NewDebouncer(100 * time.Millisecond)
	debouncer.SetCallback(func(files []string) {})
	defer debouncer.Stop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		debouncer.Add("file.json")
	}
}
