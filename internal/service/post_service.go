package service

import (
	"context"
	"strings"

	"hearth/internal/identity"
	"hearth/internal/models"
	"hearth/internal/ratelimit"
	"hearth/internal/repository"
)

// PostService manages the post lifecycle.
type PostService struct {
	postRepo repository.PostRepository
	governor ratelimit.Governor
	resolver identity.Resolver
}

type CreatePostInput struct {
	AuthorID string
	Title    string
	Content  string
}

type UpdatePostInput struct {
	AuthorID string
	PostID   string
	Title    string
	Content  string
}

type DeletePostInput struct {
	AuthorID string
	PostID   string
}

func NewPostService(
	postRepo repository.PostRepository,
	governor ratelimit.Governor,
	resolver identity.Resolver,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		governor: governor,
		resolver: resolver,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*PostView, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateContent(in.Content); err != nil {
		return nil, err
	}
	if err := admit(ctx, s.governor, in.AuthorID, "create_post"); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID: in.AuthorID,
		Title:    in.Title,
		Content:  in.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.GetPost(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id string) (*PostView, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "post", id)
	}

	idents, err := resolveAuthors(ctx, s.resolver, []string{post.AuthorID})
	if err != nil {
		return nil, err
	}
	return newPostView(post, idents[post.AuthorID]), nil
}

// ListPosts returns the newest posts, capped at the feed limit.
func (s *PostService) ListPosts(ctx context.Context) ([]*PostView, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return postViews(ctx, s.resolver, posts)
}

func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*PostView, error) {
	posts, err := s.postRepo.GetByAuthorID(ctx, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return postViews(ctx, s.resolver, posts)
}

func (s *PostService) SearchPosts(ctx context.Context, query string, limit, offset int) ([]*PostView, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	posts, err := s.postRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return postViews(ctx, s.resolver, posts)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*PostView, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateContent(in.Content); err != nil {
		return nil, err
	}
	if err := admit(ctx, s.governor, in.AuthorID, "update_post"); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, notFound(err, "post", in.PostID)
	}
	if post.AuthorID != in.AuthorID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	post.Title = in.Title
	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.GetPost(ctx, post.ID)
}

// DeletePost removes the post row. Comments and votes that reference it are
// left in place and become unreachable through the thread resolver.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	if err := admit(ctx, s.governor, in.AuthorID, "delete_post"); err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return notFound(err, "post", in.PostID)
	}
	if post.AuthorID != in.AuthorID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, in.PostID)
}
