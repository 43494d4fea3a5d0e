package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"portfolio/api/internal/models"
	"portfolio/api/internal/repository"
	"portfolio/api/internal/service"
	"portfolio/api/internal/testutil"
)

func newBlogFixture(t *testing.T) (*service.BlogService, *testutil.MemPostStore, *testutil.MemCategoryStore) {
	t.Helper()

	posts, categories := testutil.NewMemBlogStores()
	return service.NewBlogService(posts, categories, zerolog.Nop()), posts, categories
}

func createPost(t *testing.T, blog *service.BlogService, slug string, published bool) models.BlogPost {
	t.Helper()

	post, err := blog.CreatePost(context.Background(), service.CreatePostInput{
		Title:     "Post " + slug,
		Slug:      slug,
		Summary:   "summary",
		Content:   "content",
		Published: published,
	}, "author-1")
	if err != nil {
		t.Fatalf("create post %q: %v", slug, err)
	}
	return post
}

func createCategory(t *testing.T, blog *service.BlogService, name, slug string) models.BlogCategory {
	t.Helper()

	category, err := blog.CreateCategory(context.Background(), name, slug)
	if err != nil {
		t.Fatalf("create category %q: %v", slug, err)
	}
	return category
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	blog, _, _ := newBlogFixture(t)
	createPost(t, blog, "hello-world", true)

	_, err := blog.CreatePost(context.Background(), service.CreatePostInput{
		Title:   "Another",
		Slug:    "hello-world",
		Summary: "s",
		Content: "c",
	}, "author-1")
	if !errors.Is(err, repository.ErrSlugTaken) {
		t.Errorf("duplicate slug: err = %v, want ErrSlugTaken", err)
	}
}

func TestGetPostBySlugDraftMasking(t *testing.T) {
	blog, _, _ := newBlogFixture(t)
	createPost(t, blog, "draft-post", false)

	admin := &models.User{ID: "u1", IsAdmin: true}
	viewer := &models.User{ID: "u2", IsAdmin: false}

	if _, _, err := blog.GetPostBySlug(context.Background(), "draft-post", nil); !errors.Is(err, repository.ErrPostNotFound) {
		t.Errorf("anonymous draft read: err = %v, want ErrPostNotFound", err)
	}
	if _, _, err := blog.GetPostBySlug(context.Background(), "draft-post", viewer); !errors.Is(err, repository.ErrPostNotFound) {
		t.Errorf("non-admin draft read: err = %v, want ErrPostNotFound", err)
	}
	if _, _, err := blog.GetPostBySlug(context.Background(), "draft-post", admin); err != nil {
		t.Errorf("admin draft read: %v", err)
	}
}

func TestGetPostBySlugIncludesCategories(t *testing.T) {
	blog, _, _ := newBlogFixture(t)
	post := createPost(t, blog, "tagged", true)
	category := createCategory(t, blog, "Design", "design")

	if err := blog.AddCategoryToPost(context.Background(), post.ID, category.ID); err != nil {
		t.Fatalf("AddCategoryToPost: %v", err)
	}

	_, categories, err := blog.GetPostBySlug(context.Background(), "tagged", nil)
	if err != nil {
		t.Fatalf("GetPostBySlug: %v", err)
	}
	if len(categories) != 1 || categories[0].Slug != "design" {
		t.Errorf("categories = %+v, want the design category", categories)
	}
}

func TestListPostsPublishedOnly(t *testing.T) {
	blog, _, _ := newBlogFixture(t)
	createPost(t, blog, "published", true)
	createPost(t, blog, "draft", false)

	public, err := blog.ListPosts(context.Background(), 10, 0, true)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(public) != 1 || public[0].Slug != "published" {
		t.Errorf("public listing = %+v, want only the published post", public)
	}

	all, err := blog.ListPosts(context.Background(), 10, 0, false)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin listing length = %d, want 2", len(all))
	}
}

func TestUpdatePost(t *testing.T) {
	blog, _, _ := newBlogFixture(t)
	post := createPost(t, blog, "original", false)
	createPost(t, blog, "occupied", true)

	title := "Renamed"
	updated, err := blog.UpdatePost(context.Background(), post.ID, models.PostUpdate{Title: &title})
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("title = %q, want %q", updated.Title, "Renamed")
	}
	if updated.Slug != "original" {
		t.Errorf("slug changed to %q on a title-only update", updated.Slug)
	}
	if !updated.UpdatedAt.After(post.UpdatedAt) {
		t.Error("UpdatedAt did not advance")
	}

	taken := "occupied"
	if _, err := blog.UpdatePost(context.Background(), post.ID, models.PostUpdate{Slug: &taken}); !errors.Is(err, repository.ErrSlugTaken) {
		t.Errorf("slug collision on update: err = %v, want ErrSlugTaken", err)
	}

	if _, err := blog.UpdatePost(context.Background(), "missing", models.PostUpdate{Title: &title}); !errors.Is(err, repository.ErrPostNotFound) {
		t.Errorf("update missing post: err = %v, want ErrPostNotFound", err)
	}
}

func TestDeletePostRemovesAssociations(t *testing.T) {
	blog, posts, _ := newBlogFixture(t)
	post := createPost(t, blog, "doomed", true)
	first := createCategory(t, blog, "Design", "design")
	second := createCategory(t, blog, "Development", "development")

	for _, category := range []models.BlogCategory{first, second} {
		if err := blog.AddCategoryToPost(context.Background(), post.ID, category.ID); err != nil {
			t.Fatalf("AddCategoryToPost: %v", err)
		}
	}

	deleted, err := blog.DeletePost(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if !deleted {
		t.Fatal("DeletePost reported not found for an existing post")
	}
	if count := posts.AssociationCount(post.ID); count != 0 {
		t.Errorf("associations after delete = %d, want 0", count)
	}

	deleted, err = blog.DeletePost(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("second DeletePost: %v", err)
	}
	if deleted {
		t.Error("second delete reported success")
	}
}

func TestAddCategoryToPostIdempotent(t *testing.T) {
	blog, posts, _ := newBlogFixture(t)
	post := createPost(t, blog, "tagged", true)
	category := createCategory(t, blog, "Design", "design")

	if err := blog.AddCategoryToPost(context.Background(), post.ID, category.ID); err != nil {
		t.Fatalf("first AddCategoryToPost: %v", err)
	}
	if err := blog.AddCategoryToPost(context.Background(), post.ID, category.ID); err != nil {
		t.Fatalf("second AddCategoryToPost: %v", err)
	}
	if count := posts.AssociationCount(post.ID); count != 1 {
		t.Errorf("association count = %d, want 1", count)
	}
}

func TestAddCategoryToPostMissingSides(t *testing.T) {
	blog, _, _ := newBlogFixture(t)
	post := createPost(t, blog, "lonely", true)
	category := createCategory(t, blog, "Design", "design")

	if err := blog.AddCategoryToPost(context.Background(), "missing", category.ID); !errors.Is(err, repository.ErrPostNotFound) {
		t.Errorf("missing post: err = %v, want ErrPostNotFound", err)
	}
	if err := blog.AddCategoryToPost(context.Background(), post.ID, "missing"); !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Errorf("missing category: err = %v, want ErrCategoryNotFound", err)
	}
}

func TestListPostsByCategoryPublishedOnly(t *testing.T) {
	blog, _, _ := newBlogFixture(t)
	post := createPost(t, blog, "visible", true)
	category := createCategory(t, blog, "Web3", "web3")

	if err := blog.AddCategoryToPost(context.Background(), post.ID, category.ID); err != nil {
		t.Fatalf("AddCategoryToPost: %v", err)
	}

	listed, err := blog.ListPostsByCategory(context.Background(), category.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListPostsByCategory: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != post.ID {
		t.Errorf("listing = %+v, want the associated post", listed)
	}

	published := false
	if _, err := blog.UpdatePost(context.Background(), post.ID, models.PostUpdate{Published: &published}); err != nil {
		t.Fatalf("unpublish: %v", err)
	}

	listed, err = blog.ListPostsByCategory(context.Background(), category.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListPostsByCategory after unpublish: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("unpublished post still listed: %+v", listed)
	}
}

func TestCategoryCrud(t *testing.T) {
	blog, _, _ := newBlogFixture(t)
	category := createCategory(t, blog, "Design", "design")
	createCategory(t, blog, "Web3", "web3")

	if _, err := blog.CreateCategory(context.Background(), "Other Design", "design"); !errors.Is(err, repository.ErrSlugTaken) {
		t.Errorf("duplicate category slug: err = %v, want ErrSlugTaken", err)
	}

	name := "Visual Design"
	updated, err := blog.UpdateCategory(context.Background(), category.ID, models.CategoryUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if updated.Name != "Visual Design" || updated.Slug != "design" {
		t.Errorf("updated category = %+v", updated)
	}

	taken := "web3"
	if _, err := blog.UpdateCategory(context.Background(), category.ID, models.CategoryUpdate{Slug: &taken}); !errors.Is(err, repository.ErrSlugTaken) {
		t.Errorf("category slug collision: err = %v, want ErrSlugTaken", err)
	}

	deleted, err := blog.DeleteCategory(context.Background(), category.ID)
	if err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if !deleted {
		t.Error("delete reported not found for an existing category")
	}
	if _, err := blog.GetCategoryBySlug(context.Background(), "design"); !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Errorf("deleted category still resolvable: err = %v", err)
	}
}

func TestDeleteCategoryRemovesAssociations(t *testing.T) {
	blog, posts, _ := newBlogFixture(t)
	post := createPost(t, blog, "tagged", true)
	category := createCategory(t, blog, "Design", "design")

	if err := blog.AddCategoryToPost(context.Background(), post.ID, category.ID); err != nil {
		t.Fatalf("AddCategoryToPost: %v", err)
	}

	if _, err := blog.DeleteCategory(context.Background(), category.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if count := posts.AssociationCount(post.ID); count != 0 {
		t.Errorf("associations after category delete = %d, want 0", count)
	}
}
