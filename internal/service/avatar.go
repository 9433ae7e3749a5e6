package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/repository"
	"github.com/templui/soulsync/internal/storage"
	"github.com/templui/soulsync/internal/validation"
)

var ErrInvalidAvatar = errors.New("invalid avatar image")

// objectPrefix marks a slot value that points at object storage rather than
// holding the image inline.
const objectPrefix = "s3:"

// AvatarService manages the role-scoped avatar slots. Images go to object
// storage when one is configured and stay inline as data URIs otherwise.
type AvatarService struct {
	repo    repository.AvatarRepository
	storage storage.Storage
}

func NewAvatarService(repo repository.AvatarRepository, storage storage.Storage) *AvatarService {
	return &AvatarService{repo: repo, storage: storage}
}

// Set validates dataURI and stores it in the slot for role and accountID.
// It returns the value a client should display.
func (s *AvatarService) Set(ctx context.Context, role model.Role, accountID, dataURI string) (string, error) {
	img, err := validation.ParseImageDataURI(dataURI, validation.AvatarConstraints)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAvatar, err)
	}

	if s.storage == nil {
		err = s.repo.Set(ctx, role, accountID, dataURI)
		if err != nil {
			return "", fmt.Errorf("failed to save avatar: %w", err)
		}
		return dataURI, nil
	}

	path := fmt.Sprintf("public/avatars/%s-%s%s", role, accountID, img.Extension())
	err = s.storage.Save(ctx, path, img.MimeType, bytes.NewReader(img.Data))
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	err = s.repo.Set(ctx, role, accountID, objectPrefix+path)
	if err != nil {
		return "", fmt.Errorf("failed to save avatar: %w", err)
	}
	return s.storage.URL(ctx, path), nil
}

// Resolve returns the displayable avatar for the slot, or "" when it is empty.
func (s *AvatarService) Resolve(ctx context.Context, role model.Role, accountID string) (string, error) {
	value, err := s.repo.Get(ctx, role, accountID)
	if err != nil {
		return "", err
	}
	return s.display(ctx, value), nil
}

func (s *AvatarService) display(ctx context.Context, value string) string {
	path, ok := strings.CutPrefix(value, objectPrefix)
	if !ok {
		return value
	}
	if s.storage == nil {
		slog.Warn("avatar stored in object storage but none is configured", "path", path)
		return ""
	}
	return s.storage.URL(ctx, path)
}

func (s *AvatarService) Delete(ctx context.Context, role model.Role, accountID string) error {
	value, err := s.repo.Get(ctx, role, accountID)
	if err != nil {
		return err
	}

	path, ok := strings.CutPrefix(value, objectPrefix)
	if ok && s.storage != nil {
		delErr := s.storage.Delete(ctx, path)
		if delErr != nil {
			// Orphaned objects are preferable to a slot that cannot be cleared
			slog.Warn("failed to delete avatar object", "path", path, "error", delErr)
		}
	}

	return s.repo.Delete(ctx, role, accountID)
}
