package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/gosimple/slug"
)

// dateLayout is the human-facing publication date format.
const dateLayout = "January 02, 2006"

const maxTitleLen = 250

type PostService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

type EditPostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		now:      time.Now,
	}
}

func (s *PostService) validatePostInput(title, subtitle, body, imageURL string) error {
	if title == "" {
		return models.NewValidationError("title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError(fmt.Sprintf("title must not exceed %d characters", maxTitleLen))
	}
	if subtitle == "" {
		return models.NewValidationError("subtitle is required")
	}
	if body == "" {
		return models.NewValidationError("body is required")
	}
	if err := validation.ValidateImageURL(imageURL); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

// uniqueSlug derives a URL-safe slug from the title and suffixes -1,
// -2, ... until no existing post carries the candidate.
func (s *PostService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := s.postRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

// CreatePost persists a new post with a fresh unique slug and the
// current date. The exists-then-insert slug check can lose a race with
// a concurrent writer; a uniqueness rejection from the store is
// retried once with a recomputed candidate before it is surfaced.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := s.validatePostInput(in.Title, in.Subtitle, in.Body, in.ImageURL); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:   in.AuthorID,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Date:     s.now().Format(dateLayout),
		Body:     in.Body,
		ImageURL: in.ImageURL,
	}

	for attempt := 0; ; attempt++ {
		candidate, err := s.uniqueSlug(ctx, in.Title)
		if err != nil {
			return nil, err
		}
		post.Slug = candidate

		err = s.postRepo.Create(ctx, post)
		if err == nil {
			return post, nil
		}

		var appErr *models.AppError
		if attempt == 0 && errors.As(err, &appErr) && appErr.Code == models.CodeConstraintViolation {
			// Lost the slug race, or the title itself is a duplicate;
			// one recomputed retry settles which.
			continue
		}
		return nil, err
	}
}

// GetPost returns the post for the slug with author and comments.
func (s *PostService) GetPost(ctx context.Context, postSlug string) (*models.Post, error) {
	return s.postRepo.GetBySlug(ctx, postSlug)
}

// ListPosts returns all posts ordered by title ascending.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// EditPost updates title, subtitle, body, and image URL of the post
// behind the slug. Slug and date are fixed at creation and never
// recomputed here, even when the title changes.
func (s *PostService) EditPost(ctx context.Context, postSlug string, in EditPostInput) (*models.Post, error) {
	if err := s.validatePostInput(in.Title, in.Subtitle, in.Body, in.ImageURL); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImageURL = in.ImageURL

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post behind the slug together with its comments.
func (s *PostService) DeletePost(ctx context.Context, postSlug string) error {
	return s.postRepo.Delete(ctx, postSlug)
}
