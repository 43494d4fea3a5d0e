// Package testutil provides in-memory store implementations for tests. They
// mirror the behavior of the pgx repositories, including sentinel errors and
// ordering, without needing a database.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"portfolio/api/internal/models"
	"portfolio/api/internal/repository"
)

type MemUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: make(map[string]models.User)}
}

func (s *MemUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = user
	return nil
}

func (s *MemUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (s *MemUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

type MemSessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func NewMemSessionStore() *MemSessionStore {
	return &MemSessionStore{sessions: make(map[string]models.Session)}
}

func (s *MemSessionStore) Create(_ context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *MemSessionStore) GetByID(_ context.Context, id string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return models.Session{}, repository.ErrSessionNotFound
	}
	return session, nil
}

func (s *MemSessionStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemSessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged, nil
}

// Count reports the number of stored sessions.
func (s *MemSessionStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Put stores a session as-is, bypassing Create defaults.
func (s *MemSessionStore) Put(session models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

type assocKey struct {
	postID     string
	categoryID string
}

// blogData is shared by MemPostStore and MemCategoryStore so association
// cleanup on either side is visible to the other, the way the SQL schema
// behaves.
type blogData struct {
	mu         sync.Mutex
	posts      map[string]models.BlogPost
	categories map[string]models.BlogCategory
	assocs     map[assocKey]struct{}
	seq        int
	base       time.Time
}

// tick returns a strictly increasing timestamp so creation order is stable.
func (d *blogData) tick() time.Time {
	d.seq++
	return d.base.Add(time.Duration(d.seq) * time.Second)
}

type MemPostStore struct {
	d *blogData
}

type MemCategoryStore struct {
	d *blogData
}

// NewMemBlogStores returns a post store and a category store backed by the
// same data set.
func NewMemBlogStores() (*MemPostStore, *MemCategoryStore) {
	d := &blogData{
		posts:      make(map[string]models.BlogPost),
		categories: make(map[string]models.BlogCategory),
		assocs:     make(map[assocKey]struct{}),
		base:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	return &MemPostStore{d: d}, &MemCategoryStore{d: d}
}

func (s *MemPostStore) Create(_ context.Context, post models.BlogPost) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, existing := range s.d.posts {
		if existing.Slug == post.Slug {
			return repository.ErrSlugTaken
		}
	}
	now := s.d.tick()
	post.CreatedAt = now
	post.UpdatedAt = now
	s.d.posts[post.ID] = post
	return nil
}

func (s *MemPostStore) GetByID(_ context.Context, id string) (models.BlogPost, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	post, ok := s.d.posts[id]
	if !ok {
		return models.BlogPost{}, repository.ErrPostNotFound
	}
	return post, nil
}

func (s *MemPostStore) GetBySlug(_ context.Context, slug string) (models.BlogPost, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, post := range s.d.posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return models.BlogPost{}, repository.ErrPostNotFound
}

func (s *MemPostStore) List(_ context.Context, limit, offset int, publishedOnly bool) ([]models.BlogPost, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	posts := make([]models.BlogPost, 0, len(s.d.posts))
	for _, post := range s.d.posts {
		if publishedOnly && !post.Published {
			continue
		}
		posts = append(posts, post)
	}
	return page(sortNewestFirst(posts), limit, offset), nil
}

func (s *MemPostStore) Update(_ context.Context, id string, update models.PostUpdate) (models.BlogPost, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	post, ok := s.d.posts[id]
	if !ok {
		return models.BlogPost{}, repository.ErrPostNotFound
	}
	if update.Slug != nil {
		for otherID, other := range s.d.posts {
			if otherID != id && other.Slug == *update.Slug {
				return models.BlogPost{}, repository.ErrSlugTaken
			}
		}
		post.Slug = *update.Slug
	}
	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Summary != nil {
		post.Summary = *update.Summary
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	if update.FeaturedImage != nil {
		post.FeaturedImage = update.FeaturedImage
	}
	if update.Published != nil {
		post.Published = *update.Published
	}
	post.UpdatedAt = s.d.tick()
	s.d.posts[id] = post
	return post, nil
}

func (s *MemPostStore) Delete(_ context.Context, id string) (bool, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.posts[id]; !ok {
		return false, nil
	}
	for key := range s.d.assocs {
		if key.postID == id {
			delete(s.d.assocs, key)
		}
	}
	delete(s.d.posts, id)
	return true, nil
}

func (s *MemPostStore) ListByCategory(_ context.Context, categoryID string, limit, offset int) ([]models.BlogPost, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	posts := make([]models.BlogPost, 0)
	for key := range s.d.assocs {
		if key.categoryID != categoryID {
			continue
		}
		post, ok := s.d.posts[key.postID]
		if !ok || !post.Published {
			continue
		}
		posts = append(posts, post)
	}
	return page(sortNewestFirst(posts), limit, offset), nil
}

func (s *MemPostStore) AddCategory(_ context.Context, postID, categoryID string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.assocs[assocKey{postID: postID, categoryID: categoryID}] = struct{}{}
	return nil
}

func (s *MemPostStore) RemoveCategory(_ context.Context, postID, categoryID string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	delete(s.d.assocs, assocKey{postID: postID, categoryID: categoryID})
	return nil
}

func (s *MemPostStore) CategoriesFor(_ context.Context, postID string) ([]models.BlogCategory, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	categories := make([]models.BlogCategory, 0)
	for key := range s.d.assocs {
		if key.postID != postID {
			continue
		}
		if category, ok := s.d.categories[key.categoryID]; ok {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// AssociationCount reports how many association rows reference a post.
func (s *MemPostStore) AssociationCount(postID string) int {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	count := 0
	for key := range s.d.assocs {
		if key.postID == postID {
			count++
		}
	}
	return count
}

func (s *MemCategoryStore) Create(_ context.Context, category models.BlogCategory) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, existing := range s.d.categories {
		if existing.Slug == category.Slug {
			return repository.ErrSlugTaken
		}
	}
	s.d.categories[category.ID] = category
	return nil
}

func (s *MemCategoryStore) GetByID(_ context.Context, id string) (models.BlogCategory, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	category, ok := s.d.categories[id]
	if !ok {
		return models.BlogCategory{}, repository.ErrCategoryNotFound
	}
	return category, nil
}

func (s *MemCategoryStore) GetBySlug(_ context.Context, slug string) (models.BlogCategory, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, category := range s.d.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return models.BlogCategory{}, repository.ErrCategoryNotFound
}

func (s *MemCategoryStore) List(_ context.Context) ([]models.BlogCategory, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	categories := make([]models.BlogCategory, 0, len(s.d.categories))
	for _, category := range s.d.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (s *MemCategoryStore) Update(_ context.Context, id string, update models.CategoryUpdate) (models.BlogCategory, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	category, ok := s.d.categories[id]
	if !ok {
		return models.BlogCategory{}, repository.ErrCategoryNotFound
	}
	if update.Slug != nil {
		for otherID, other := range s.d.categories {
			if otherID != id && other.Slug == *update.Slug {
				return models.BlogCategory{}, repository.ErrSlugTaken
			}
		}
		category.Slug = *update.Slug
	}
	if update.Name != nil {
		category.Name = *update.Name
	}
	s.d.categories[id] = category
	return category, nil
}

func (s *MemCategoryStore) Delete(_ context.Context, id string) (bool, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.categories[id]; !ok {
		return false, nil
	}
	for key := range s.d.assocs {
		if key.categoryID == id {
			delete(s.d.assocs, key)
		}
	}
	delete(s.d.categories, id)
	return true, nil
}

type MemContactStore struct {
	mu          sync.Mutex
	submissions []models.ContactSubmission
}

func NewMemContactStore() *MemContactStore {
	return &MemContactStore{}
}

func (s *MemContactStore) Create(_ context.Context, submission models.ContactSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append(s.submissions, submission)
	return nil
}

func (s *MemContactStore) List(_ context.Context) ([]models.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ContactSubmission, len(s.submissions))
	copy(out, s.submissions)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func sortNewestFirst(posts []models.BlogPost) []models.BlogPost {
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts
}

func page(posts []models.BlogPost, limit, offset int) []models.BlogPost {
	if offset >= len(posts) {
		return []models.BlogPost{}
	}
	posts = posts[offset:]
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts
}
