// Package service implements the application's business logic on top of the
// repositories, the write governor, and the identity resolver.
package service

import (
	"context"
	"fmt"

	"hearth/internal/identity"
	"hearth/internal/models"
)

// AuthorView is the displayable identity attached to enriched content.
type AuthorView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
}

// PostView is a post joined with its author's identity.
type PostView struct {
	models.Post
	Author AuthorView `json:"author"`
	Edited bool       `json:"edited"`
}

// CommentView is a comment joined with its author's identity.
type CommentView struct {
	models.Comment
	Author AuthorView `json:"author"`
	Edited bool       `json:"edited"`
}

// ProfileView is a profile joined with the owner's identity.
type ProfileView struct {
	Author      AuthorView `json:"author"`
	Description string     `json:"description"`
}

func authorView(ident identity.Identity) AuthorView {
	return AuthorView{ID: ident.ID, Username: ident.Username, ImageURL: ident.ImageURL}
}

// resolveAuthors resolves every id and fails hard when one is unknown. Stored
// content always references a once-valid author, so a missing identity means
// the provider lookup is broken, not that the content is bad.
func resolveAuthors(ctx context.Context, resolver identity.Resolver, ids []string) (map[string]identity.Identity, error) {
	ids = identity.Dedupe(ids)
	if len(ids) == 0 {
		return map[string]identity.Identity{}, nil
	}

	idents, err := resolver.Resolve(ctx, ids)
	if err != nil {
		return nil, models.NewLookupError(err)
	}
	for _, id := range ids {
		if _, ok := idents[id]; !ok {
			return nil, models.NewLookupError(fmt.Errorf("identity provider has no record for author %q", id))
		}
	}
	return idents, nil
}

func newPostView(post *models.Post, ident identity.Identity) *PostView {
	return &PostView{Post: *post, Author: authorView(ident), Edited: post.Edited()}
}

func newCommentView(comment *models.Comment, ident identity.Identity) *CommentView {
	return &CommentView{Comment: *comment, Author: authorView(ident), Edited: comment.Edited()}
}

func postViews(ctx context.Context, resolver identity.Resolver, posts []*models.Post) ([]*PostView, error) {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
	}
	idents, err := resolveAuthors(ctx, resolver, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newPostView(p, idents[p.AuthorID]))
	}
	return views, nil
}

func commentViews(ctx context.Context, resolver identity.Resolver, comments []*models.Comment) ([]*CommentView, error) {
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	idents, err := resolveAuthors(ctx, resolver, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, newCommentView(c, idents[c.AuthorID]))
	}
	return views, nil
}
