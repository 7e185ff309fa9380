package service

import (
	"context"
	"strings"

	"hearth/internal/identity"
	"hearth/internal/models"
	"hearth/internal/ratelimit"
	"hearth/internal/repository"
)

// CommentService manages the comment lifecycle and thread traversal.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	governor    ratelimit.Governor
	resolver    identity.Resolver
}

type CreateCommentInput struct {
	AuthorID        string
	PostID          string
	ParentCommentID *string
	Content         string
}

type UpdateCommentInput struct {
	AuthorID  string
	CommentID string
	Content   string
}

type DeleteCommentInput struct {
	AuthorID  string
	CommentID string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	governor ratelimit.Governor,
	resolver identity.Resolver,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		governor:    governor,
		resolver:    resolver,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*CommentView, error) {
	if err := validateContent(in.Content); err != nil {
		return nil, err
	}
	if err := admit(ctx, s.governor, in.AuthorID, "create_comment"); err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, notFound(err, "post", in.PostID)
	}
	if in.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentCommentID)
		if err != nil {
			return nil, notFound(err, "comment", *in.ParentCommentID)
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		AuthorID:        in.AuthorID,
		PostID:          in.PostID,
		ParentCommentID: in.ParentCommentID,
		Content:         in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.GetComment(ctx, comment.ID)
}

func (s *CommentService) GetComment(ctx context.Context, id string) (*CommentView, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "comment", id)
	}

	idents, err := resolveAuthors(ctx, s.resolver, []string{comment.AuthorID})
	if err != nil {
		return nil, err
	}
	return newCommentView(comment, idents[comment.AuthorID]), nil
}

// ListRoots returns a post's top-level comments, newest first.
func (s *CommentService) ListRoots(ctx context.Context, postID string) ([]*CommentView, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, notFound(err, "post", postID)
	}
	comments, err := s.commentRepo.ListRoots(ctx, postID)
	if err != nil {
		return nil, err
	}
	return commentViews(ctx, s.resolver, comments)
}

// ListReplies returns a comment's direct replies, oldest first.
func (s *CommentService) ListReplies(ctx context.Context, commentID string) ([]*CommentView, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, notFound(err, "comment", commentID)
	}
	comments, err := s.commentRepo.ListReplies(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return commentViews(ctx, s.resolver, comments)
}

func (s *CommentService) ListCommentsByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*CommentView, error) {
	comments, err := s.commentRepo.GetByAuthorID(ctx, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return commentViews(ctx, s.resolver, comments)
}

func (s *CommentService) SearchComments(ctx context.Context, query string, limit, offset int) ([]*CommentView, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	comments, err := s.commentRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return commentViews(ctx, s.resolver, comments)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*CommentView, error) {
	if err := validateContent(in.Content); err != nil {
		return nil, err
	}
	if err := admit(ctx, s.governor, in.AuthorID, "update_comment"); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, notFound(err, "comment", in.CommentID)
	}
	if comment.AuthorID != in.AuthorID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.GetComment(ctx, comment.ID)
}

// DeleteComment removes the comment row. Replies keep their parent reference
// and simply stop being reachable through the thread resolver.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	if err := admit(ctx, s.governor, in.AuthorID, "delete_comment"); err != nil {
		return err
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return notFound(err, "comment", in.CommentID)
	}
	if comment.AuthorID != in.AuthorID {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}
