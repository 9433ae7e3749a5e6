package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/soulsync/internal/repository"
)

func TestJournalService_CreateWithFrontmatter(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	source := "---\ntitle: Rough day\nmood: anxious\ntags: [work, sleep]\n---\n\nSlept **badly**.\n"
	entry, err := env.journal.Create(ctx, "u1", source)
	require.NoError(t, err)
	assert.Equal(t, "Rough day", entry.Title)
	assert.Equal(t, "anxious", entry.Mood)
	assert.Equal(t, []string{"work", "sleep"}, entry.Tags)
	assert.Contains(t, entry.HTMLContent, "<strong>badly</strong>")

	stored, err := env.journal.Entry(ctx, "u1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, source, stored.Content)
	assert.Equal(t, entry.HTMLContent, stored.HTMLContent)

	_, err = env.journal.Entry(ctx, "u2", entry.ID)
	assert.ErrorIs(t, err, repository.ErrJournalEntryNotFound)
}

func TestJournalService_TitleFallbacks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	entry, err := env.journal.Create(ctx, "u1", "# Gratitude\n\nSunlight.")
	require.NoError(t, err)
	assert.Equal(t, "Gratitude", entry.Title)

	entry, err = env.journal.Create(ctx, "u1", "Just a few words.")
	require.NoError(t, err)
	assert.Equal(t, untitledEntry, entry.Title)

	_, err = env.journal.Create(ctx, "u1", "  \n ")
	assert.ErrorIs(t, err, ErrEmptyJournalEntry)
}

func TestJournalService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	entry, err := env.journal.Create(ctx, "u1", "# First")
	require.NoError(t, err)

	updated, err := env.journal.Update(ctx, "u1", entry.ID, "# Second\n\nmore")
	require.NoError(t, err)
	assert.Equal(t, "Second", updated.Title)

	entries, err := env.journal.Entries(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Second", entries[0].Title)

	require.NoError(t, env.journal.Delete(ctx, "u1", entry.ID))
	entries, err = env.journal.Entries(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFirstHeading(t *testing.T) {
	assert.Equal(t, "Inside", firstHeading("---\ntitle: x\n# not a heading\n---\n# Inside"))
	assert.Equal(t, "", firstHeading("plain"))
}
