package db_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/db"
)

func TestMigrationsURL(t *testing.T) {
	t.Run("absolute path is kept", func(t *testing.T) {
		url, err := db.MigrationsURL("/srv/migrations/filmorate")

		require.NoError(t, err)
		assert.Equal(t, "file:///srv/migrations/filmorate", url)
	})

	t.Run("relative path is resolved", func(t *testing.T) {
		url, err := db.MigrationsURL("migrations/filmorate")

		require.NoError(t, err)
		require.True(t, strings.HasPrefix(url, "file://"))
		path := strings.TrimPrefix(url, "file://")
		assert.True(t, filepath.IsAbs(path))
		assert.True(t, strings.HasSuffix(path, filepath.Join("migrations", "filmorate")))
	})
}
