package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"portfolio/api/internal/ids"
	"portfolio/api/internal/models"
	"portfolio/api/internal/repository"
)

type PostStore interface {
	Create(ctx context.Context, post models.BlogPost) error
	GetByID(ctx context.Context, id string) (models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (models.BlogPost, error)
	List(ctx context.Context, limit, offset int, publishedOnly bool) ([]models.BlogPost, error)
	Update(ctx context.Context, id string, update models.PostUpdate) (models.BlogPost, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]models.BlogPost, error)
	AddCategory(ctx context.Context, postID, categoryID string) error
	RemoveCategory(ctx context.Context, postID, categoryID string) error
	CategoriesFor(ctx context.Context, postID string) ([]models.BlogCategory, error)
}

type CategoryStore interface {
	Create(ctx context.Context, category models.BlogCategory) error
	GetByID(ctx context.Context, id string) (models.BlogCategory, error)
	GetBySlug(ctx context.Context, slug string) (models.BlogCategory, error)
	List(ctx context.Context) ([]models.BlogCategory, error)
	Update(ctx context.Context, id string, update models.CategoryUpdate) (models.BlogCategory, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type BlogService struct {
	posts      PostStore
	categories CategoryStore
	log        zerolog.Logger
}

func NewBlogService(posts PostStore, categories CategoryStore, log zerolog.Logger) *BlogService {
	return &BlogService{
		posts:      posts,
		categories: categories,
		log:        log,
	}
}

func (s *BlogService) ListPosts(ctx context.Context, limit, offset int, publishedOnly bool) ([]models.BlogPost, error) {
	return s.posts.List(ctx, limit, offset, publishedOnly)
}

// GetPostBySlug returns the post and its categories. An unpublished post is
// reported as not found unless the requester is an admin, so drafts are
// indistinguishable from absent posts to everyone else.
func (s *BlogService) GetPostBySlug(ctx context.Context, slug string, requester *models.User) (models.BlogPost, []models.BlogCategory, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return models.BlogPost{}, nil, err
	}

	if !post.Published && (requester == nil || !requester.IsAdmin) {
		return models.BlogPost{}, nil, repository.ErrPostNotFound
	}

	categories, err := s.posts.CategoriesFor(ctx, post.ID)
	if err != nil {
		return models.BlogPost{}, nil, err
	}

	return post, categories, nil
}

func (s *BlogService) GetPostByID(ctx context.Context, id string) (models.BlogPost, error) {
	return s.posts.GetByID(ctx, id)
}

type CreatePostInput struct {
	Title         string
	Slug          string
	Summary       string
	Content       string
	FeaturedImage *string
	Published     bool
}

func (s *BlogService) CreatePost(ctx context.Context, input CreatePostInput, authorID string) (models.BlogPost, error) {
	post := models.BlogPost{
		ID:            ids.New(),
		Title:         input.Title,
		Slug:          strings.TrimSpace(input.Slug),
		Summary:       input.Summary,
		Content:       input.Content,
		FeaturedImage: input.FeaturedImage,
		AuthorID:      &authorID,
		Published:     input.Published,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return models.BlogPost{}, err
	}

	return s.posts.GetByID(ctx, post.ID)
}

func (s *BlogService) UpdatePost(ctx context.Context, id string, update models.PostUpdate) (models.BlogPost, error) {
	return s.posts.Update(ctx, id, update)
}

func (s *BlogService) DeletePost(ctx context.Context, id string) (bool, error) {
	deleted, err := s.posts.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info().Str("post_id", id).Msg("blog post deleted")
	}
	return deleted, nil
}

func (s *BlogService) Categories(ctx context.Context) ([]models.BlogCategory, error) {
	return s.categories.List(ctx)
}

func (s *BlogService) GetCategoryBySlug(ctx context.Context, slug string) (models.BlogCategory, error) {
	return s.categories.GetBySlug(ctx, slug)
}

func (s *BlogService) CreateCategory(ctx context.Context, name, slug string) (models.BlogCategory, error) {
	category := models.BlogCategory{
		ID:   ids.New(),
		Name: name,
		Slug: strings.TrimSpace(slug),
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return models.BlogCategory{}, err
	}

	return category, nil
}

func (s *BlogService) UpdateCategory(ctx context.Context, id string, update models.CategoryUpdate) (models.BlogCategory, error) {
	return s.categories.Update(ctx, id, update)
}

func (s *BlogService) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return s.categories.Delete(ctx, id)
}

// AddCategoryToPost verifies both sides exist, then associates them.
// Associating an already associated pair is a no-op.
func (s *BlogService) AddCategoryToPost(ctx context.Context, postID, categoryID string) error {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return err
	}
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return err
	}
	return s.posts.AddCategory(ctx, postID, categoryID)
}

func (s *BlogService) RemoveCategoryFromPost(ctx context.Context, postID, categoryID string) error {
	return s.posts.RemoveCategory(ctx, postID, categoryID)
}

// ListPostsByCategory returns only published posts, newest first. A category
// with no associated posts yields an empty slice.
func (s *BlogService) ListPostsByCategory(ctx context.Context, categoryID string, limit, offset int) ([]models.BlogPost, error) {
	return s.posts.ListByCategory(ctx, categoryID, limit, offset)
}
