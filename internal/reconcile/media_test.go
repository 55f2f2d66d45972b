package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hikaye/internal/media"
	"hikaye/internal/models"
	"hikaye/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSweepResolver(t *testing.T, posts *fakePosts) *media.Resolver {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewDiskStore(root)
	require.NoError(t, err)
	for _, name := range []string{"default.jpg", "bir.jpg", "iki.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("img"), 0o644))
	}
	return media.NewResolver(store, posts, media.Options{
		BaseURL:       "/media",
		DefaultAsset:  "default.jpg",
		StalePrefixes: []string{"images/hikayeler/"},
		RepairOnRead:  true,
	})
}

func TestMediaPass_RepairsStaleReferences(t *testing.T) {
	posts := &fakePosts{posts: []*models.Post{
		{ID: 1, Image: "images/hikayeler/bir.jpg"}, // stale, file present
		{ID: 2, Image: "iki.jpg"},                  // already canonical
		{ID: 3, Image: "images/hikayeler/yok.jpg"}, // stale, file gone
		{ID: 4, Image: ""},                         // no image
		{ID: 5, Image: "kayip.jpg"},                // canonical but dangling
	}}
	pass := NewMediaPass(posts, newSweepResolver(t, posts))

	res, err := pass.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, res.Scanned)
	assert.Equal(t, 1, res.Repaired)

	assert.Equal(t, "bir.jpg", posts.posts[0].Image)
	assert.Equal(t, "iki.jpg", posts.posts[1].Image)
	assert.Equal(t, "images/hikayeler/yok.jpg", posts.posts[2].Image, "unrecoverable references are left for manual restore")
	assert.Empty(t, posts.posts[3].Image)
	assert.Equal(t, "kayip.jpg", posts.posts[4].Image)
}

func TestMediaPass_SecondRunTouchesNothing(t *testing.T) {
	posts := &fakePosts{posts: []*models.Post{
		{ID: 1, Image: "images/hikayeler/bir.jpg"},
		{ID: 2, Image: "images/hikayeler/iki.jpg"},
	}}
	pass := NewMediaPass(posts, newSweepResolver(t, posts))

	first, err := pass.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Repaired)

	second, err := pass.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second.Scanned)
	assert.Zero(t, second.Repaired)
}
