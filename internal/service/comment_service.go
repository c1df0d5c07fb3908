package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const maxCommentLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	AuthorID uint
	PostSlug string
	Body     string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment adds a comment by the author under the post behind the
// slug. The post must resolve; the author is trusted from the session.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	in.Body = strings.TrimSpace(in.Body)
	if in.Body == "" {
		return nil, models.NewValidationError("comment body is required")
	}
	if len(in.Body) > maxCommentLen {
		return nil, models.NewValidationError("comment too long (max 10000 characters)")
	}

	post, err := s.postRepo.GetBySlug(ctx, in.PostSlug)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:   in.Body,
		UserID: in.AuthorID,
		PostID: post.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns the comments below the post behind the slug,
// oldest first.
func (s *CommentService) ListComments(ctx context.Context, postSlug string) ([]*models.Comment, error) {
	post, err := s.postRepo.GetBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, post.ID)
}
