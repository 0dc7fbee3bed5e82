package docsystem

import (
	"context"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "yogablocks/internal/domain/models/docsystem"
)

const sourceID = "99999999-9999-9999-9999-999999999999"

type linkRow struct {
	TargetID string
	Label    string
	Position int
}

func storedRows(t *testing.T, repo *mockLinkRepo) []linkRow {
	t.Helper()
	links, err := repo.ListBySource(context.Background(), sourceID)
	require.NoError(t, err)
	rows := make([]linkRow, 0, len(links))
	for _, l := range links {
		rows = append(rows, linkRow{TargetID: l.TargetID, Label: l.Label, Position: l.Position})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	return rows
}

func TestReconcile_RoundTrip(t *testing.T) {
	content := "[La](/library/" + warriorID + ") then [Lb](/library/" + childID + ") then [Lc](/library/" + treeID + ")"
	want := []linkRow{
		{warriorID, "La", 0},
		{childID, "Lb", 1},
		{treeID, "Lc", 2},
	}

	starts := map[string]func(*mockLinkRepo){
		"no existing links": func(*mockLinkRepo) {},
		"stale and shuffled links": func(m *mockLinkRepo) {
			m.seed(sourceID, treeID, "old label", 0)
			m.seed(sourceID, "44444444-4444-4444-4444-444444444444", "gone", 1)
			m.seed(sourceID, warriorID, "La", 5)
		},
		"already in sync": func(m *mockLinkRepo) {
			m.seed(sourceID, warriorID, "La", 0)
			m.seed(sourceID, childID, "Lb", 1)
			m.seed(sourceID, treeID, "Lc", 2)
		},
	}

	for name, setup := range starts {
		t.Run(name, func(t *testing.T) {
			repo := newMockLinkRepo()
			setup(repo)

			result := NewLinkReconciler(repo, testLogger()).Reconcile(context.Background(), sourceID, content)
			assert.True(t, result.OK())

			if diff := cmp.Diff(want, storedRows(t, repo)); diff != "" {
				t.Errorf("stored links mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReconcile_Removal(t *testing.T) {
	repo := newMockLinkRepo()
	a := repo.seed(sourceID, warriorID, "A", 0)
	b := repo.seed(sourceID, childID, "B", 1)

	content := "[B](/library/" + childID + ") and [C](/library/" + treeID + ")"
	result := NewLinkReconciler(repo, testLogger()).Reconcile(context.Background(), sourceID, content)

	assert.Equal(t, 1, result.Deleted)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Updated, "B moved from position 1 to 0")
	assert.Equal(t, 0, result.Failed)

	rows := storedRows(t, repo)
	require.Len(t, rows, 2)
	assert.Equal(t, childID, rows[0].TargetID)
	assert.Equal(t, treeID, rows[1].TargetID)

	repo.mu.Lock()
	_, aExists := repo.rows[a.ID]
	_, bExists := repo.rows[b.ID]
	repo.mu.Unlock()
	assert.False(t, aExists, "A deleted")
	assert.True(t, bExists, "B updated in place")
}

func TestReconcile_UnchangedRowsAreNotRewritten(t *testing.T) {
	repo := newMockLinkRepo()
	repo.seed(sourceID, warriorID, "Warrior II", 0)

	result := NewLinkReconciler(repo, testLogger()).Reconcile(context.Background(), sourceID,
		"[Warrior II](/library/"+warriorID+")")

	assert.Equal(t, 1, result.Unchanged)
	assert.Equal(t, 0, repo.upserts)
	assert.Equal(t, 0, repo.deletes)
}

func TestReconcile_EmptyContentDeletesAll(t *testing.T) {
	repo := newMockLinkRepo()
	repo.seed(sourceID, warriorID, "A", 0)
	repo.seed(sourceID, childID, "B", 1)

	result := NewLinkReconciler(repo, testLogger()).Reconcile(context.Background(), sourceID, "")

	assert.Equal(t, 2, result.Deleted)
	assert.Empty(t, storedRows(t, repo))
}

func TestReconcile_FetchFailureInsertsEverything(t *testing.T) {
	repo := newMockLinkRepo()
	repo.seed(sourceID, warriorID, "old", 0)
	repo.failList = true

	content := "[Warrior II](/library/" + warriorID + ") [Tree](/library/" + treeID + ")"
	var result *models.ReconcileResult
	require.NotPanics(t, func() {
		result = NewLinkReconciler(repo, testLogger()).Reconcile(context.Background(), sourceID, content)
	})

	assert.Equal(t, 1, result.Failed, "the failed fetch is counted")
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 0, result.Deleted)
	assert.False(t, result.OK())

	repo.failList = false
	want := []linkRow{{warriorID, "Warrior II", 0}, {treeID, "Tree", 1}}
	if diff := cmp.Diff(want, storedRows(t, repo)); diff != "" {
		t.Errorf("natural-key upsert should not duplicate (-want +got):\n%s", diff)
	}
}

func TestReconcile_PartialFailureContinues(t *testing.T) {
	repo := newMockLinkRepo()
	repo.seed(sourceID, warriorID, "A", 0)
	repo.seed(sourceID, "44444444-4444-4444-4444-444444444444", "stale", 1)
	repo.failDelete[warriorID] = true
	repo.failUpsert[childID] = true

	content := "[B](/library/" + childID + ") [C](/library/" + treeID + ")"
	result := NewLinkReconciler(repo, testLogger()).Reconcile(context.Background(), sourceID, content)

	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 1, result.Deleted)
	assert.Equal(t, 1, result.Inserted)

	targets := map[string]bool{}
	for _, r := range storedRows(t, repo) {
		targets[r.TargetID] = true
	}
	assert.True(t, targets[warriorID], "failed delete leaves the row")
	assert.True(t, targets[treeID], "later upserts still ran")
	assert.False(t, targets[childID])
}

func TestReconcile_TargetPolicy(t *testing.T) {
	repo := newMockLinkRepo()

	upper := "AAAAAAAA-0000-0000-0000-00000000000A"
	content := "[bad](/library/not-a-uuid) " +
		"[First](/library/" + warriorID + ") " +
		"[Second](/library/" + warriorID + ") " +
		"[Self](/library/" + sourceID + ") " +
		"[Upper](/library/" + upper + ") " +
		"[Braced](/library/{" + childID + "})"

	result := NewLinkReconciler(repo, testLogger()).Reconcile(context.Background(), sourceID, content)

	assert.Equal(t, 3, result.Skipped, "malformed, duplicate and braced targets")
	assert.Equal(t, 3, result.Inserted)

	want := []linkRow{
		{warriorID, "First", 1},
		{sourceID, "Self", 3},
		{"aaaaaaaa-0000-0000-0000-00000000000a", "Upper", 4},
	}
	if diff := cmp.Diff(want, storedRows(t, repo)); diff != "" {
		t.Errorf("stored links mismatch (-want +got):\n%s", diff)
	}
}
