package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	models "yogablocks/internal/domain/models/docsystem"
	"yogablocks/internal/repository"
)

const testOwner = "00000000-0000-0000-0000-0000000000aa"

// createTestStore opens a fresh database file under t.TempDir().
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, repository.NewTableNames("test_"), nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestDocument(t *testing.T, repo *DocumentRepository, title, content string) *models.Document {
	t.Helper()
	doc := &models.Document{
		Title:     title,
		Content:   content,
		DocType:   models.DocTypeAsana,
		CreatedBy: testOwner,
	}
	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create(%q) failed: %v", title, err)
	}
	return doc
}
