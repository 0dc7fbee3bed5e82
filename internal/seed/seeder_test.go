package seed

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogablocks/internal/catalog"
	models "yogablocks/internal/domain/models/docsystem"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
	"yogablocks/internal/repository"
	"yogablocks/internal/repository/sqlite"
	"yogablocks/internal/service/docsystem"
)

const systemUser = "cdbdccbc-9125-4d58-bf12-58fbb889c8c6"

const testCatalog = `
asanas:
  - english_name: Mountain Pose
    sanskrit_name: Tadasana
    category: Standing
  - english_name: Warrior II
    sanskrit_name: Virabhadrasana II
    category: Standing
    preparatory_poses:
      - Mountain Pose
      - Triangle Pose
  - english_name: Triangle Pose
    sanskrit_name: Utthita Trikonasana
    benefits:
      - Stretches hamstrings
`

type fixture struct {
	store  *sqlite.Store
	docs   docsysRepo.DocumentRepository
	links  docsysRepo.LinkRepository
	seeder *Seeder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "seed.db"), repository.NewTableNames("test_"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cat, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)

	docs := sqlite.NewDocumentRepository(store)
	links := sqlite.NewLinkRepository(store)
	seeder := NewSeeder(sqlite.NewTransactionManager(store), docs, docsystem.NewLinkReconciler(links, logger), cat, logger)

	return &fixture{store: store, docs: docs, links: links, seeder: seeder}
}

func (f *fixture) idOf(t *testing.T, title string) string {
	t.Helper()
	titles, err := f.docs.ListTitles(context.Background(), models.DocTypeAsana)
	require.NoError(t, err)
	id, ok := docsystem.NewTitleIndex(titles).Lookup(title)
	require.True(t, ok, "no document titled %q", title)
	return id
}

func TestSeed_ResolvesForwardReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	report, err := f.seeder.Seed(ctx, Options{OwnerID: systemUser})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Inserted)
	assert.Equal(t, 2, report.Links)
	assert.Zero(t, report.LinkFails)

	warriorID := f.idOf(t, "Warrior II")
	mountainID := f.idOf(t, "Mountain Pose")
	triangleID := f.idOf(t, "Triangle Pose")

	warrior, err := f.docs.GetByID(ctx, warriorID)
	require.NoError(t, err)
	assert.Equal(t, models.DocTypeAsana, warrior.DocType)
	assert.Equal(t, systemUser, warrior.CreatedBy)
	// Triangle Pose comes later in the catalog but still resolves
	assert.Contains(t, warrior.Content, "[Triangle Pose](/library/"+triangleID+")")

	links, err := f.links.ListBySource(ctx, warriorID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, mountainID, links[0].TargetID)
	assert.Equal(t, triangleID, links[1].TargetID)
}

func TestSeed_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.seeder.Seed(ctx, Options{OwnerID: systemUser})
	require.NoError(t, err)

	report, err := f.seeder.Seed(ctx, Options{OwnerID: systemUser})
	require.NoError(t, err)
	assert.Zero(t, report.Inserted)
	assert.Zero(t, report.Updated)
	assert.Equal(t, 3, report.Unchanged)

	titles, err := f.docs.ListTitles(ctx, models.DocTypeAsana)
	require.NoError(t, err)
	assert.Len(t, titles, 3)
}

func TestSeed_KeepsExistingDocumentsUnlessRefresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Matches the catalog title after normalization
	existing := &models.Document{Title: "mountain pose", Content: "My own notes", DocType: models.DocTypeAsana, CreatedBy: systemUser}
	require.NoError(t, f.docs.Create(ctx, existing))

	report, err := f.seeder.Seed(ctx, Options{OwnerID: systemUser})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Inserted)

	doc, err := f.docs.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "My own notes", doc.Content)

	warrior, err := f.docs.GetByID(ctx, f.idOf(t, "Warrior II"))
	require.NoError(t, err)
	assert.Contains(t, warrior.Content, "/library/"+existing.ID)

	report, err = f.seeder.Seed(ctx, Options{OwnerID: systemUser, Refresh: true})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)

	doc, err = f.docs.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc.Content, "## Sanskrit Name\nTadasana"))
}

func TestSeed_RequiresOwner(t *testing.T) {
	f := newFixture(t)
	_, err := f.seeder.Seed(context.Background(), Options{})
	assert.Error(t, err)
}
