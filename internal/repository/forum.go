package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/model"
)

var (
	ErrPostNotFound = errors.New("post not found")
)

type ForumRepository interface {
	Create(ctx context.Context, post *model.ForumPost) error
	ByID(ctx context.Context, postID string) (*model.ForumPost, error)
	All(ctx context.Context) ([]*model.ForumPost, error)
	AddReply(ctx context.Context, postID string, reply *model.ForumReply) (*model.ForumPost, error)
}

type forumRepository struct {
	posts *collection[model.ForumPost]
}

func NewForumRepository(store localstore.Store) ForumRepository {
	return &forumRepository{posts: newCollection[model.ForumPost](store, KeyForumPosts)}
}

func (r *forumRepository) Create(ctx context.Context, post *model.ForumPost) error {
	return r.posts.mutate(ctx, func(posts []*model.ForumPost) ([]*model.ForumPost, error) {
		return append(posts, post), nil
	})
}

func (r *forumRepository) ByID(ctx context.Context, postID string) (*model.ForumPost, error) {
	posts, err := r.posts.all(ctx)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		if post.ID == postID {
			return post, nil
		}
	}
	return nil, ErrPostNotFound
}

// All returns every post, newest first.
func (r *forumRepository) All(ctx context.Context) ([]*model.ForumPost, error) {
	posts, err := r.posts.all(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *forumRepository) AddReply(ctx context.Context, postID string, reply *model.ForumReply) (*model.ForumPost, error) {
	var updated *model.ForumPost
	err := r.posts.mutate(ctx, func(posts []*model.ForumPost) ([]*model.ForumPost, error) {
		for _, post := range posts {
			if post.ID == postID {
				post.Replies = append(post.Replies, reply)
				updated = post
				return posts, nil
			}
		}
		return nil, ErrPostNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
