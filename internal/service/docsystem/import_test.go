package docsystem

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "yogablocks/internal/domain/models/docsystem"
	"yogablocks/internal/service/docsystem/converter"
)

func newImporter(s *testStack) *importService {
	return NewImportService(s.docs, s.document, converter.NewConverterRegistry(), testLogger()).(*importService)
}

func TestImportFS(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	importer := newImporter(s)

	mountain := s.createDoc(t, ownerID, "Mountain Pose", "Stand tall.", models.DocTypeAsana)

	fsys := fstest.MapFS{
		"asanas/warrior.md": {Data: []byte("---\ntitle: Warrior II\ndoc_type: asana\n---\n## Preparatory Poses\n- [Mountain Pose](/library/" + mountain.ID + ")\n")},
		"notes/flow.md":     {Data: []byte("# Morning Flow\n\nStart slow.")},
		"notes/plain.txt":   {Data: []byte("just words")},
		"notes/page.html":   {Data: []byte("<h2>Evening</h2><p>Wind <strong>down</strong>.</p>")},
		"mountain.md":       {Data: []byte("# Mountain Pose\n\nReplaced.")},
		"image.png":         {Data: []byte{0x89, 'P', 'N', 'G'}},
		".hidden/skip.md":   {Data: []byte("# Hidden")},
		"broken.md":         {Data: []byte("---\ntitle: Broken\n")},
	}

	result, err := importer.ImportFS(ctx, ownerID, fsys, false)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Summary.Created)
	assert.Equal(t, 2, result.Summary.Skipped) // png and existing Mountain Pose
	assert.Equal(t, 1, result.Summary.Failed)
	assert.Equal(t, 7, result.Summary.TotalFiles)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "broken.md", result.Errors[0].File)

	byTitle := make(map[string]string)
	titles, err := s.docs.ListTitles(ctx, "")
	require.NoError(t, err)
	for _, e := range titles {
		byTitle[e.Title] = e.ID
	}

	for _, want := range []string{"Warrior II", "Morning Flow", "just words", "Evening"} {
		assert.Contains(t, byTitle, want)
	}

	warrior, err := s.docs.GetByID(ctx, byTitle["Warrior II"])
	require.NoError(t, err)
	assert.Equal(t, models.DocTypeAsana, warrior.DocType)

	links, err := s.links.ListBySource(ctx, warrior.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, mountain.ID, links[0].TargetID)

	evening, err := s.docs.GetByID(ctx, byTitle["Evening"])
	require.NoError(t, err)
	assert.Equal(t, "Wind **down**.", evening.Content)

	unchanged, err := s.docs.GetByID(ctx, mountain.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stand tall.", unchanged.Content)
}

func TestImportFS_Overwrite(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	importer := newImporter(s)

	mine := s.createDoc(t, ownerID, "Mountain Pose", "Old.", models.DocTypeAsana)
	theirs := s.createDoc(t, strangerID, "Tree Pose", "Theirs.", models.DocTypeAsana)

	fsys := fstest.MapFS{
		"mountain.md": {Data: []byte("# Mountain Pose\n\nNew.")},
		"tree.md":     {Data: []byte("# Tree Pose\n\nMine now.")},
	}

	result, err := importer.ImportFS(ctx, ownerID, fsys, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Updated)
	assert.Equal(t, 1, result.Summary.Failed)

	doc, err := s.docs.GetByID(ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "New.", doc.Content)

	doc, err = s.docs.GetByID(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Theirs.", doc.Content)
}

func TestImportFS_Zip(t *testing.T) {
	s := newTestStack(t)
	importer := newImporter(s)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("library/cobra.md")
	require.NoError(t, err)
	_, err = w.Write([]byte("# Cobra Pose\n\nLift the chest."))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	result, err := importer.ImportFS(context.Background(), ownerID, zr, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Created)
	assert.Equal(t, "Cobra Pose", result.Documents[0].Title)
}
