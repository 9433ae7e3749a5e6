package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/repository"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrUnknownCategory   = errors.New("unknown forum category")
	ErrPostTitleRequired = errors.New("post title is required")
	ErrPostBodyRequired  = errors.New("post body is required")
	ErrReplyRequired     = errors.New("reply cannot be empty")
)

// ForumCategories are the fixed community boards, in display order.
var ForumCategories = []string{
	"general",
	"anxiety",
	"depression",
	"stress",
	"relationships",
	"self-care",
}

const anonymousAuthor = "Anonymous"

type ForumService struct {
	repo          repository.ForumRepository
	notifications *NotificationService
}

func NewForumService(repo repository.ForumRepository, notifications *NotificationService) *ForumService {
	return &ForumService{
		repo:          repo,
		notifications: notifications,
	}
}

type PostParams struct {
	Category  string
	Title     string
	Body      string
	Anonymous bool
}

func (s *ForumService) CreatePost(ctx context.Context, author *model.Session, params PostParams) (*model.ForumPost, error) {
	category, err := normalizeCategory(params.Category)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, ErrPostTitleRequired
	}
	body := strings.TrimSpace(params.Body)
	if body == "" {
		return nil, ErrPostBodyRequired
	}

	post := &model.ForumPost{
		ID:         uuid.New().String(),
		AuthorID:   author.ID,
		AuthorName: author.Username,
		AuthorRole: author.Role,
		Category:   category,
		Title:      title,
		Body:       body,
		Anonymous:  params.Anonymous,
		Replies:    []*model.ForumReply{},
		CreatedAt:  time.Now(),
	}
	if post.Anonymous {
		post.AuthorName = anonymousAuthor
	}

	err = s.repo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// Reply adds a reply and notifies the post's author when someone else
// replied.
func (s *ForumService) Reply(ctx context.Context, author *model.Session, postID, body string) (*model.ForumPost, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrReplyRequired
	}

	reply := &model.ForumReply{
		ID:         uuid.New().String(),
		AuthorID:   author.ID,
		AuthorName: author.Username,
		AuthorRole: author.Role,
		Body:       body,
		CreatedAt:  time.Now(),
	}

	post, err := s.repo.AddReply(ctx, postID, reply)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != author.ID {
		_, err = s.notifications.Push(ctx, post.AuthorID, model.NotificationForumReply,
			fmt.Sprintf("%s replied to %q", author.Username, post.Title))
		if err != nil {
			slog.Warn("failed to notify post author", "error", err, "post_id", post.ID)
		}
	}

	return post, nil
}

func (s *ForumService) Post(ctx context.Context, postID string) (*model.ForumPost, error) {
	return s.repo.ByID(ctx, postID)
}

// Posts lists posts newest first. An empty category lists every board.
func (s *ForumService) Posts(ctx context.Context, category string) ([]*model.ForumPost, error) {
	if category != "" {
		var err error
		category, err = normalizeCategory(category)
		if err != nil {
			return nil, err
		}
	}

	posts, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return posts, nil
	}

	var filtered []*model.ForumPost
	for _, post := range posts {
		if post.Category == category {
			filtered = append(filtered, post)
		}
	}
	return filtered, nil
}

func (s *ForumService) Categories(ctx context.Context) ([]model.ForumCategory, error) {
	posts, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, post := range posts {
		counts[post.Category]++
	}

	// A Caser is stateful, so each call gets its own.
	title := cases.Title(language.English)
	categories := make([]model.ForumCategory, 0, len(ForumCategories))
	for _, slug := range ForumCategories {
		categories = append(categories, model.ForumCategory{
			Slug:      slug,
			Name:      title.String(strings.ReplaceAll(slug, "-", " ")),
			PostCount: counts[slug],
		})
	}
	return categories, nil
}

func normalizeCategory(category string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(category))
	slug = strings.ReplaceAll(slug, " ", "-")
	for _, known := range ForumCategories {
		if slug == known {
			return slug, nil
		}
	}
	return "", ErrUnknownCategory
}
