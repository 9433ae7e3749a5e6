package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/soulsync/internal/model"
)

func TestMoodService_Log(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.mood.Log(ctx, "u1", 0, "")
	assert.ErrorIs(t, err, ErrInvalidMoodScore)
	_, err = env.mood.Log(ctx, "u1", 6, "")
	assert.ErrorIs(t, err, ErrInvalidMoodScore)

	entry, err := env.mood.Log(ctx, "u1", 4, "  walked outside ")
	require.NoError(t, err)
	assert.Equal(t, "walked outside", entry.Note)

	_, err = env.mood.Log(ctx, "u2", 1, "")
	require.NoError(t, err)

	entries, err := env.mood.Entries(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	entries := []*model.MoodEntry{
		{ID: "a", Score: 5, CreatedAt: now.Add(-time.Hour)},
		{ID: "b", Score: 2, CreatedAt: now.AddDate(0, 0, -2)},
		{ID: "c", Score: 1, CreatedAt: now.AddDate(0, 0, -30)},
	}

	week := summarize(entries, 7, now)
	assert.Equal(t, 2, week.Count)
	assert.InDelta(t, 3.5, week.Average, 0.001)
	require.NotNil(t, week.Latest)
	assert.Equal(t, "a", week.Latest.ID)

	all := summarize(entries, 0, now)
	assert.Equal(t, 3, all.Count)

	empty := summarize(nil, 7, now)
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.Average)
	assert.Nil(t, empty.Latest)
}
