package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/postboard/api/internal/core/domain"
	"github.com/postboard/api/internal/core/ports"
)

// PostService implements CRUD over posts with single-owner access control.
type PostService struct {
	posts     ports.PostRepository
	users     ports.UserRepository
	validator ports.Validator
	log       zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, validator ports.Validator, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, validator: validator, log: log}
}

// List returns every post, newest first, with authors resolved.
func (s *PostService) List(ctx context.Context) ([]*domain.PostView, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return s.populate(ctx, posts)
}

// Get returns a single post or nil when it does not exist.
func (s *PostService) Get(ctx context.Context, id string) (*domain.PostView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	views, err := s.populate(ctx, []*domain.Post{post})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// Create persists a post owned by the caller.
func (s *PostService) Create(ctx context.Context, identity domain.Identity, in ports.CreatePostInput) (*domain.PostView, error) {
	principal, err := RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	created, err := s.posts.Create(ctx, &domain.Post{
		Title:     in.Title,
		Content:   in.Content,
		AuthorID:  principal.ID(),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", principal.ID()).Msg("failed to create post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Str("post_id", created.ID).Str("user_id", principal.ID()).Msg("post created")
	return created.View(principal.User()), nil
}

// Update applies the fields present in the input. Ownership is checked
// against the stored post, never the input.
func (s *PostService) Update(ctx context.Context, identity domain.Identity, in ports.UpdatePostInput) (*domain.PostView, error) {
	principal, err := RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		in.Title = &title
	}
	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	if err := RequireOwner(principal, post.AuthorID); err != nil {
		s.log.Warn().Str("post_id", post.ID).Str("user_id", principal.ID()).Msg("update rejected: not the owner")
		return nil, err
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	post.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if err := s.posts.Update(ctx, post); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.log.Info().Str("post_id", post.ID).Str("user_id", principal.ID()).Msg("post updated")
	return post.View(principal.User()), nil
}

// Delete removes a post owned by the caller. A missing post is reported as
// false rather than an error.
func (s *PostService) Delete(ctx context.Context, identity domain.Identity, id string) (bool, error) {
	principal, err := RequireAuthenticated(identity)
	if err != nil {
		return false, err
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete post: %w", err)
	}

	if err := RequireOwner(principal, post.AuthorID); err != nil {
		s.log.Warn().Str("post_id", post.ID).Str("user_id", principal.ID()).Msg("delete rejected: not the owner")
		return false, err
	}

	deleted, err := s.posts.Delete(ctx, post.ID)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}

	s.log.Info().Str("post_id", post.ID).Str("user_id", principal.ID()).Bool("deleted", deleted).Msg("post deleted")
	return deleted, nil
}

// populate resolves each post's author with a single batched lookup.
func (s *PostService) populate(ctx context.Context, posts []*domain.Post) ([]*domain.PostView, error) {
	views := make([]*domain.PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	seen := make(map[string]struct{}, len(posts))
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; ok {
			continue
		}
		seen[p.AuthorID] = struct{}{}
		ids = append(ids, p.AuthorID)
	}

	authors, err := s.users.FindPublicByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}

	for _, p := range posts {
		author, ok := authors[p.AuthorID]
		if !ok {
			s.log.Warn().Str("post_id", p.ID).Str("author_id", p.AuthorID).Msg("post author missing")
			author = domain.PublicUser{ID: p.AuthorID}
		}
		views = append(views, p.View(author))
	}
	return views, nil
}
