package docsystem

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"

	models "yogablocks/internal/domain/models/docsystem"
	docsysRepo "yogablocks/internal/domain/repositories/docsystem"
	docsysSvc "yogablocks/internal/domain/services/docsystem"
	"yogablocks/internal/repository"
	"yogablocks/internal/repository/sqlite"
	authsvc "yogablocks/internal/service/auth"
	"yogablocks/internal/service/docsystem/converter"
)

const (
	ownerID    = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	strangerID = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	warriorID  = "11111111-1111-1111-1111-111111111111"
	childID    = "22222222-2222-2222-2222-222222222222"
	treeID     = "33333333-3333-3333-3333-333333333333"
)

var errStore = errors.New("store unavailable")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockLinkRepo is an in-memory LinkRepository with failure injection.
type mockLinkRepo struct {
	mu         sync.Mutex
	rows       map[string]models.Link // key: id
	failList   bool
	failUpsert map[string]bool // key: target id
	failDelete map[string]bool // key: target id
	upserts    int
	deletes    int
}

func newMockLinkRepo() *mockLinkRepo {
	return &mockLinkRepo{
		rows:       make(map[string]models.Link),
		failUpsert: make(map[string]bool),
		failDelete: make(map[string]bool),
	}
}

func (m *mockLinkRepo) seed(sourceID, targetID, label string, position int) models.Link {
	m.mu.Lock()
	defer m.mu.Unlock()
	link := models.Link{ID: uuid.NewString(), SourceID: sourceID, TargetID: targetID, Label: label, Position: position}
	m.rows[link.ID] = link
	return link
}

func (m *mockLinkRepo) ListBySource(ctx context.Context, sourceID string) ([]models.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList {
		return nil, errStore
	}
	links := []models.Link{}
	for _, l := range m.rows {
		if l.SourceID == sourceID {
			links = append(links, l)
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Position < links[j].Position })
	return links, nil
}

func (m *mockLinkRepo) ListByTarget(ctx context.Context, targetID string) ([]models.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	links := []models.Link{}
	for _, l := range m.rows {
		if l.TargetID == targetID {
			links = append(links, l)
		}
	}
	return links, nil
}

func (m *mockLinkRepo) Upsert(ctx context.Context, link *models.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.failUpsert[link.TargetID] {
		return errStore
	}
	if link.ID != "" {
		if _, ok := m.rows[link.ID]; ok {
			m.rows[link.ID] = *link
			return nil
		}
	}
	for id, l := range m.rows {
		if l.SourceID == link.SourceID && l.TargetID == link.TargetID {
			link.ID = id
			m.rows[id] = *link
			return nil
		}
	}
	link.ID = uuid.NewString()
	m.rows[link.ID] = *link
	return nil
}

func (m *mockLinkRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if row, ok := m.rows[id]; ok && m.failDelete[row.TargetID] {
		return errStore
	}
	delete(m.rows, id)
	return nil
}

func (m *mockLinkRepo) DeleteBySource(ctx context.Context, sourceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.rows {
		if l.SourceID == sourceID {
			delete(m.rows, id)
		}
	}
	return nil
}

var _ docsysRepo.LinkRepository = (*mockLinkRepo)(nil)

// testStack wires the services over a SQLite store in t.TempDir().
type testStack struct {
	docs     docsysRepo.DocumentRepository
	links    docsysRepo.LinkRepository
	document *documentService
	editor   *editorService
	readView *readViewService
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), repository.NewTableNames("test_"), testLogger())
	if err != nil {
		t.Fatalf("sqlite.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := testLogger()
	docs := sqlite.NewDocumentRepository(store)
	links := sqlite.NewLinkRepository(store)
	authorizer := authsvc.NewOwnerBasedAuthorizer(docs)
	reconciler := NewLinkReconciler(links, logger)
	renderer := converter.NewMarkdownRenderer()
	readView := NewReadViewService(docs, links, renderer, logger).(*readViewService)

	return &testStack{
		docs:     docs,
		links:    links,
		document: NewDocumentService(docs, links, reconciler, authorizer, NewContentAnalyzer(), logger).(*documentService),
		editor:   NewEditorService(docs, authorizer, reconciler, converter.NewConverterRegistry(), renderer, readView, logger).(*editorService),
		readView: readView,
	}
}

func (s *testStack) createDoc(t *testing.T, owner, title, content string, docType models.DocType) *models.Document {
	t.Helper()
	doc := &models.Document{Title: title, Content: content, DocType: docType, CreatedBy: owner}
	if err := s.docs.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create(%q) failed: %v", title, err)
	}
	return doc
}

type createReq = docsysSvc.CreateDocumentRequest
