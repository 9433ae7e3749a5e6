package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/soulsync/internal/markdown"
	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/repository"
)

var (
	ErrEmptyJournalEntry = errors.New("journal entry is empty")
)

const untitledEntry = "Untitled entry"

// JournalService stores entries as markdown. An entry may open with YAML
// frontmatter carrying title, mood and tags.
type JournalService struct {
	repo   repository.JournalRepository
	parser *markdown.Parser
}

func NewJournalService(repo repository.JournalRepository, parser *markdown.Parser) *JournalService {
	return &JournalService{repo: repo, parser: parser}
}

func (s *JournalService) Create(ctx context.Context, userID, source string) (*model.JournalEntry, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptyJournalEntry
	}

	now := time.Now()
	entry := &model.JournalEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   source,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.render(entry)
	if err != nil {
		return nil, err
	}

	stored := *entry
	stored.HTMLContent = ""
	err = s.repo.Create(ctx, &stored)
	if err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	return entry, nil
}

func (s *JournalService) Update(ctx context.Context, userID, entryID, source string) (*model.JournalEntry, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptyJournalEntry
	}

	entry, err := s.repo.ByID(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	entry.Content = source
	entry.UpdatedAt = time.Now()

	err = s.render(entry)
	if err != nil {
		return nil, err
	}

	stored := *entry
	stored.HTMLContent = ""
	err = s.repo.Update(ctx, &stored)
	if err != nil {
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}
	return entry, nil
}

func (s *JournalService) Entry(ctx context.Context, userID, entryID string) (*model.JournalEntry, error) {
	entry, err := s.repo.ByID(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	err = s.render(entry)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Entries lists the user's entries newest first. Entries that fail to
// render are returned without HTML.
func (s *JournalService) Entries(ctx context.Context, userID string) ([]*model.JournalEntry, error) {
	entries, err := s.repo.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		renderErr := s.render(entry)
		if renderErr != nil {
			slog.Warn("failed to render journal entry", "error", renderErr, "entry_id", entry.ID)
		}
	}
	return entries, nil
}

func (s *JournalService) Delete(ctx context.Context, userID, entryID string) error {
	return s.repo.Delete(ctx, userID, entryID)
}

func (s *JournalService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// render fills HTMLContent and the frontmatter-derived fields of entry.
func (s *JournalService) render(entry *model.JournalEntry) error {
	html, meta, err := s.parser.ParseWithFrontmatter([]byte(entry.Content))
	if err != nil {
		return fmt.Errorf("failed to render journal entry: %w", err)
	}
	entry.HTMLContent = string(html)

	entry.Title = untitledEntry
	if title, ok := meta["title"].(string); ok && strings.TrimSpace(title) != "" {
		entry.Title = strings.TrimSpace(title)
	} else if heading := firstHeading(entry.Content); heading != "" {
		entry.Title = heading
	}

	entry.Mood = ""
	if mood, ok := meta["mood"].(string); ok {
		entry.Mood = strings.TrimSpace(mood)
	}

	entry.Tags = nil
	switch tags := meta["tags"].(type) {
	case []any:
		for _, tag := range tags {
			if name, ok := tag.(string); ok && strings.TrimSpace(name) != "" {
				entry.Tags = append(entry.Tags, strings.TrimSpace(name))
			}
		}
	case string:
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				entry.Tags = append(entry.Tags, tag)
			}
		}
	}

	return nil
}

// firstHeading returns the text of the first ATX heading outside the
// frontmatter block.
func firstHeading(source string) string {
	lines := strings.Split(source, "\n")
	inFrontmatter := len(lines) > 0 && strings.TrimSpace(lines[0]) == "---"

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if inFrontmatter {
			if i > 0 && trimmed == "---" {
				inFrontmatter = false
			}
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	return ""
}
