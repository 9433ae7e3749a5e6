package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/repository"
)

var (
	ErrInvalidMoodScore = fmt.Errorf("mood score must be between %d and %d", model.MoodScoreMin, model.MoodScoreMax)
	ErrMoodNoteTooLong  = errors.New("note is too long (max 1000 characters)")
)

type MoodService struct {
	repo repository.MoodRepository
}

func NewMoodService(repo repository.MoodRepository) *MoodService {
	return &MoodService{repo: repo}
}

func (s *MoodService) Log(ctx context.Context, userID string, score int, note string) (*model.MoodEntry, error) {
	if score < model.MoodScoreMin || score > model.MoodScoreMax {
		return nil, ErrInvalidMoodScore
	}

	note = strings.TrimSpace(note)
	if len(note) > 1000 {
		return nil, ErrMoodNoteTooLong
	}

	entry := &model.MoodEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Score:     score,
		Note:      note,
		CreatedAt: time.Now(),
	}

	err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to log mood: %w", err)
	}
	return entry, nil
}

func (s *MoodService) Entries(ctx context.Context, userID string) ([]*model.MoodEntry, error) {
	return s.repo.ByUser(ctx, userID)
}

// Summary covers the last days days. days <= 0 means all entries.
func (s *MoodService) Summary(ctx context.Context, userID string, days int) (*model.MoodSummary, error) {
	entries, err := s.repo.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(entries, days, time.Now()), nil
}

func summarize(entries []*model.MoodEntry, days int, now time.Time) *model.MoodSummary {
	summary := &model.MoodSummary{}

	var since time.Time
	if days > 0 {
		since = now.AddDate(0, 0, -days)
	}

	total := 0
	for _, entry := range entries {
		if !since.IsZero() && entry.CreatedAt.Before(since) {
			continue
		}
		if summary.Latest == nil || entry.CreatedAt.After(summary.Latest.CreatedAt) {
			summary.Latest = entry
		}
		total += entry.Score
		summary.Count++
	}

	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}
	return summary
}

func (s *MoodService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
