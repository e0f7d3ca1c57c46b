package domain

import (
	"time"
)

type Article struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Author       string    `json:"author"`
	PublishedAt  time.Time `json:"published_at"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Likes        int64     `json:"likes"`
	Source       Source    `json:"source"`
	Tags         []Tag     `json:"tags"`
}

// HasTagIn reports whether any of the article's tags is a member of ids.
func (a Article) HasTagIn(ids IDSet) bool {
	for _, t := range a.Tags {
		if ids.Has(t.ID) {
			return true
		}
	}
	return false
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Source struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ArticleTag is a single row of the article/tag association.
// The data access layer folds these into Article.Tags.
type ArticleTag struct {
	ArticleID int64
	TagID     int64
}
