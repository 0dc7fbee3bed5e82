package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogablocks/internal/domain"
	models "yogablocks/internal/domain/models/docsystem"
)

func TestOpen_Idempotent(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.EnsureSchema(context.Background()))
	require.NoError(t, s.EnsureSchema(context.Background()))
}

func TestDataSourceName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"yogablocks.db", "file:yogablocks.db?" + connectionParams},
		{"/tmp/y.db", "file:/tmp/y.db?" + connectionParams},
		{"file:y.db?cache=shared", "file:y.db?cache=shared&" + connectionParams},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dataSourceName(tt.path), tt.path)
	}
}

// Connection settings must survive the pool replacing its connection.
func TestOpen_SettingsOnFreshConnection(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	s.DB().SetMaxIdleConns(0)

	for i := 0; i < 2; i++ {
		var foreignKeys int
		require.NoError(t, s.DB().QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys))
		assert.Equal(t, 1, foreignKeys)

		var journal string
		require.NoError(t, s.DB().QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journal))
		assert.Equal(t, "wal", journal)

		var busy int
		require.NoError(t, s.DB().QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busy))
		assert.Equal(t, 5000, busy)
	}
}

func TestDocumentRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository(createTestStore(t)).(*DocumentRepository)

	doc := createTestDocument(t, repo, "Mountain Pose", "Stand tall.")
	require.NotEmpty(t, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mountain Pose", got.Title)
	assert.Equal(t, "Stand tall.", got.Content)
	assert.Equal(t, models.DocTypeAsana, got.DocType)
	assert.Equal(t, testOwner, got.CreatedBy)

	content := "Stand tall. See [Warrior II](/library/x)."
	updated, err := repo.Update(ctx, doc.ID, models.DocumentPatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "Mountain Pose", updated.Title, "title untouched by content patch")
	assert.Equal(t, content, updated.Content)
	assert.False(t, updated.UpdatedAt.Before(got.UpdatedAt))

	require.NoError(t, repo.Delete(ctx, doc.ID))

	_, err = repo.GetByID(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentRepository_MissingDocument(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository(createTestStore(t))

	_, err := repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	title := "x"
	_, err = repo.Update(ctx, "11111111-1111-1111-1111-111111111111", models.DocumentPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Delete(ctx, "11111111-1111-1111-1111-111111111111")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository(createTestStore(t)).(*DocumentRepository)

	createTestDocument(t, repo, "Mountain Pose", "Grounding")
	createTestDocument(t, repo, "Warrior II", "Strong legs")
	createTestDocument(t, repo, "100% Relaxed", "Savasana variant")

	tests := []struct {
		name      string
		opts      models.ListOptions
		wantTotal int
		wantLen   int
	}{
		{name: "all", opts: models.ListOptions{Limit: 50}, wantTotal: 3, wantLen: 3},
		{name: "title match is case-insensitive", opts: models.ListOptions{Query: "warrior", Limit: 50}, wantTotal: 1, wantLen: 1},
		{name: "content match", opts: models.ListOptions{Query: "LEGS", Limit: 50}, wantTotal: 1, wantLen: 1},
		{name: "percent is literal", opts: models.ListOptions{Query: "%", Limit: 50}, wantTotal: 1, wantLen: 1},
		{name: "underscore is literal", opts: models.ListOptions{Query: "_", Limit: 50}, wantTotal: 0, wantLen: 0},
		{name: "pagination", opts: models.ListOptions{Limit: 2, Offset: 2}, wantTotal: 3, wantLen: 1},
		{name: "doc type filter", opts: models.ListOptions{DocType: models.DocTypeUser, Limit: 50}, wantTotal: 0, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, total, err := repo.List(ctx, &tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Len(t, docs, tt.wantLen)
			assert.NotNil(t, docs)
		})
	}
}

func TestDocumentRepository_ListTitles(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository(createTestStore(t)).(*DocumentRepository)

	createTestDocument(t, repo, "Warrior II", "")
	createTestDocument(t, repo, "Child's Pose", "")

	entries, err := repo.ListTitles(ctx, models.DocTypeAsana)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Child's Pose", entries[0].Title)
	assert.Equal(t, "Warrior II", entries[1].Title)

	entries, err = repo.ListTitles(ctx, models.DocTypeSystem)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
