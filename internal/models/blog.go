package models

import "time"

type BlogPost struct {
	ID            string
	Title         string
	Slug          string
	Summary       string
	Content       string
	FeaturedImage *string
	AuthorID      *string
	Published     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type BlogCategory struct {
	ID   string
	Name string
	Slug string
}

// PostUpdate carries a partial post update. Nil fields are left unchanged.
type PostUpdate struct {
	Title         *string
	Slug          *string
	Summary       *string
	Content       *string
	FeaturedImage *string
	Published     *bool
}

// CategoryUpdate carries a partial category update. Nil fields are left
// unchanged.
type CategoryUpdate struct {
	Name *string
	Slug *string
}
