package ingest

import "time"

// Article is the unit of ingestion, written by the store once per item.
type Article struct {
	ID             int64     `db:"id" json:"id"`
	PublicID       int64     `db:"public_id" json:"public_id"`
	Title          string    `db:"title" json:"title"`
	Slug           string    `db:"slug" json:"slug"`
	Content        string    `db:"content" json:"content"`
	Image          string    `db:"image" json:"image"`
	Category       string    `db:"category" json:"category,omitempty"`
	ParentCategory string    `db:"parent_category" json:"parent_category,omitempty"`
	VideoURL       string    `db:"video_url" json:"video_url,omitempty"`
	VideoThumbnail string    `db:"video_thumbnail" json:"video_thumbnail,omitempty"`
	SourceURL      string    `db:"source_url" json:"source_url"`
	Status         string    `db:"status" json:"status"`
	PublishedAt    time.Time `db:"published_at" json:"published_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// StatusPublished is the only status ingested content gets.
const StatusPublished = "published"

// ListingItem is one entry scraped from a listing page.
type ListingItem struct {
	Title     string
	Link      string
	Summary   string
	Thumbnail string
}

// DetailResult is the best-effort extraction from a detail page. It never
// carries empty content; parse gaps are backfilled with placeholders.
type DetailResult struct {
	Title   string
	Content string
}

// Media is the resolved media for one article.
type Media struct {
	Image          string
	VideoURL       string
	VideoThumbnail string
}

// IngestionTarget describes one unit of crawl work: either a category
// listing or an explicit article URL with category overrides. Created by
// the orchestrator from run configuration and consumed once.
type IngestionTarget struct {
	CategorySlug   string
	ListingURL     string
	ArticleURL     string
	Category       string
	ParentCategory string
}

// IsListing reports whether the target is a category listing crawl.
func (t IngestionTarget) IsListing() bool {
	return t.ListingURL != ""
}
