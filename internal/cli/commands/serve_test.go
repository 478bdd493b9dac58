package commands

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conduit-lang/classview/internal/cli/config"
	"github.com/conduit-lang/classview/internal/snapshot"
	"github.com/conduit-lang/classview/internal/web/cache"
)

func TestWatchCatalogueDropsSupersededPages(t *testing.T) {
	w := newWorkspace(t, "", "")
	cfg, err := config.LoadFile(w.config)
	require.NoError(t, err)

	store := snapshot.NewStore(snapshot.Options{Paths: cfg.Data.Paths()})
	ctx := context.Background()
	first, err := store.Get(ctx)
	require.NoError(t, err)

	responses := cache.NewMemoryCacheWithConfig(cache.DefaultCacheConfig())
	t.Cleanup(func() { responses.Close() })

	oldPage := cache.QueryKey(first.ID, []string{"name:pawn"}, 1, 10)
	require.NoError(t, responses.Set(ctx, oldPage, []byte("old"), time.Hour))
	require.NoError(t, responses.Set(ctx, "other", []byte("kept"), time.Hour))

	watcher, err := watchCatalogue(cfg, store, responses, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { watcher.Stop() })

	w.write(t, "cpp-classes.json", strings.Replace(nativeFixture, `"Name": "Pawn"`, `"Name": "Character"`, 1))

	require.Eventually(t, func() bool {
		ok, err := responses.Exists(ctx, oldPage)
		return err == nil && !ok
	}, 5*time.Second, 20*time.Millisecond)

	assert.NotEqual(t, first.ID, store.Current().ID)
	ok, err := responses.Exists(ctx, "other")
	require.NoError(t, err)
	assert.True(t, ok)
}
