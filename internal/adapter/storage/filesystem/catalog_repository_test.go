package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"protocol-catalog/internal/domain/entity"
	"protocol-catalog/internal/pkg/apperrors"
	"protocol-catalog/internal/pkg/jsonobj"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCatalog(t *testing.T) *entity.Catalog {
	t.Helper()
	fields, err := jsonobj.Decode([]byte(
		`{"id":"aave","name":"A&B <Aave>","icon":"logo.png","metadata":{"pt":[]},"hash":"abc"}`,
	))
	require.NoError(t, err)
	return &entity.Catalog{Protocols: []entity.CatalogEntry{{ID: "aave", Fields: fields}}}
}

func TestEncodeCatalogJSON(t *testing.T) {
	data, err := EncodeCatalogJSON(testCatalog(t))
	require.NoError(t, err)

	want := `{
  "protocols": [
    {
      "id": "aave",
      "name": "A&B <Aave>",
      "icon": "logo.png",
      "metadata": {
        "pt": []
      },
      "hash": "abc"
    }
  ]
}`
	assert.Equal(t, want, string(data))
}

func TestEncodeCatalogJSON_Empty(t *testing.T) {
	data, err := EncodeCatalogJSON(&entity.Catalog{})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"protocols\": []\n}", string(data))
}

func TestEncodeCatalogYAML(t *testing.T) {
	data, err := EncodeCatalogYAML(testCatalog(t))
	require.NoError(t, err)

	want := `protocols:
  - id: aave
    name: A&B <Aave>
    icon: logo.png
    metadata:
      pt: []
    hash: abc
`
	assert.Equal(t, want, string(data))
}

func TestCatalogRepository_SaveCatalog(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("json overwrites", func(t *testing.T) {
		path := filepath.Join(dir, "config.json")
		require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the catalog itself"), 0o644))

		repo := NewCatalogRepository(path, zap.NewNop())
		assert.Equal(t, path, repo.Location())
		require.NoError(t, repo.SaveCatalog(ctx, &entity.Catalog{}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"protocols":[]}`, string(data))
	})

	t.Run("yaml by extension", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.YML")
		repo := NewCatalogRepository(path, zap.NewNop())
		require.NoError(t, repo.SaveCatalog(ctx, testCatalog(t)))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "protocols:\n  - id: aave\n")
	})

	t.Run("unwritable path", func(t *testing.T) {
		repo := NewCatalogRepository(filepath.Join(dir, "missing", "config.json"), zap.NewNop())
		err := repo.SaveCatalog(ctx, &entity.Catalog{})
		assert.ErrorIs(t, err, apperrors.ErrInternal)
	})
}
