package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "yogablocks/internal/domain/models/docsystem"
)

const (
	targetA = "11111111-1111-1111-1111-111111111111"
	targetB = "22222222-2222-2222-2222-222222222222"
)

func TestLinkRepository_UpsertAndList(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)
	docs := NewDocumentRepository(store).(*DocumentRepository)
	links := NewLinkRepository(store)

	src := createTestDocument(t, docs, "Mountain Pose", "")

	first := &models.Link{SourceID: src.ID, TargetID: targetA, Label: "Warrior II", Position: 1}
	require.NoError(t, links.Upsert(ctx, first))
	require.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &models.Link{SourceID: src.ID, TargetID: targetB, Label: "Child's Pose", Position: 0}
	require.NoError(t, links.Upsert(ctx, second))

	got, err := links.ListBySource(ctx, src.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, targetB, got[0].TargetID, "ordered by position")
	assert.Equal(t, targetA, got[1].TargetID)

	// Same natural key without id updates in place
	again := &models.Link{SourceID: src.ID, TargetID: targetA, Label: "Warrior 2", Position: 3}
	require.NoError(t, links.Upsert(ctx, again))
	assert.Equal(t, first.ID, again.ID)

	// Update by id
	first.Label = "Virabhadrasana II"
	require.NoError(t, links.Upsert(ctx, first))

	got, err = links.ListBySource(ctx, src.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Virabhadrasana II", got[1].Label)

	back, err := links.ListByTarget(ctx, targetA)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, src.ID, back[0].SourceID)
}

func TestLinkRepository_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)
	docs := NewDocumentRepository(store).(*DocumentRepository)
	links := NewLinkRepository(store)

	src := createTestDocument(t, docs, "Mountain Pose", "")
	link := &models.Link{SourceID: src.ID, TargetID: targetA, Label: "Warrior II"}
	require.NoError(t, links.Upsert(ctx, link))

	require.NoError(t, links.Delete(ctx, link.ID))
	require.NoError(t, links.Delete(ctx, link.ID))

	got, err := links.ListBySource(ctx, src.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestLinkRepository_CascadeOnDocumentDelete(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)
	docs := NewDocumentRepository(store).(*DocumentRepository)
	links := NewLinkRepository(store)

	src := createTestDocument(t, docs, "Mountain Pose", "")
	require.NoError(t, links.Upsert(ctx, &models.Link{SourceID: src.ID, TargetID: targetA}))
	require.NoError(t, links.Upsert(ctx, &models.Link{SourceID: src.ID, TargetID: targetB, Position: 1}))

	require.NoError(t, docs.Delete(ctx, src.ID))

	back, err := links.ListByTarget(ctx, targetA)
	require.NoError(t, err)
	assert.Empty(t, back)
}

func TestTransactionManager(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)
	docs := NewDocumentRepository(store).(*DocumentRepository)
	links := NewLinkRepository(store)
	tm := NewTransactionManager(store)

	t.Run("commit", func(t *testing.T) {
		var id string
		err := tm.ExecTx(ctx, func(ctx context.Context) error {
			doc := &models.Document{Title: "Tree Pose", DocType: models.DocTypeAsana, CreatedBy: testOwner}
			if err := docs.Create(ctx, doc); err != nil {
				return err
			}
			id = doc.ID
			// Nested call joins the outer transaction
			return tm.ExecTx(ctx, func(ctx context.Context) error {
				return links.Upsert(ctx, &models.Link{SourceID: doc.ID, TargetID: targetA})
			})
		})
		require.NoError(t, err)

		_, err = docs.GetByID(ctx, id)
		require.NoError(t, err)
	})

	t.Run("rollback", func(t *testing.T) {
		boom := errors.New("boom")
		var id string
		err := tm.ExecTx(ctx, func(ctx context.Context) error {
			doc := &models.Document{Title: "Crow Pose", DocType: models.DocTypeAsana, CreatedBy: testOwner}
			if err := docs.Create(ctx, doc); err != nil {
				return err
			}
			id = doc.ID
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = docs.GetByID(ctx, id)
		assert.Error(t, err)
	})
}
