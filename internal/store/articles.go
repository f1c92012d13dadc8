package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"deshnews/ingestworker/internal/ingest"
)

// UpsertMode selects the write semantics for a run. It is always explicit
// per-run configuration, never inferred.
type UpsertMode string

const (
	// InsertOnly leaves conflicting records untouched.
	InsertOnly UpsertMode = "insert_only"
	// InsertOrUpdate overwrites mutable fields on conflict, preserving the
	// identity fields (id, public_id, slug).
	InsertOrUpdate UpsertMode = "insert_or_update"
)

// Valid reports whether m is a supported mode.
func (m UpsertMode) Valid() bool {
	return m == InsertOnly || m == InsertOrUpdate
}

// Outcome is the single result reported for every upsert call.
type Outcome string

const (
	OutcomeInserted Outcome = "inserted"
	OutcomeUpdated  Outcome = "updated"
	OutcomeSkipped  Outcome = "skipped"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	id              BIGSERIAL PRIMARY KEY,
	public_id       BIGINT NOT NULL,
	title           TEXT NOT NULL,
	slug            TEXT NOT NULL UNIQUE,
	content         TEXT NOT NULL,
	image           TEXT NOT NULL,
	category        TEXT NOT NULL DEFAULT '',
	parent_category TEXT NOT NULL DEFAULT '',
	video_url       TEXT NOT NULL DEFAULT '',
	video_thumbnail TEXT NOT NULL DEFAULT '',
	source_url      TEXT NOT NULL UNIQUE,
	status          TEXT NOT NULL DEFAULT 'published',
	published_at    TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
)`

const insertQuery = `
INSERT INTO articles
	(public_id, title, slug, content, image, category, parent_category,
	 video_url, video_thumbnail, source_url, status, published_at, updated_at)
VALUES
	(:public_id, :title, :slug, :content, :image, :category, :parent_category,
	 :video_url, :video_thumbnail, :source_url, :status, :published_at, :updated_at)
ON CONFLICT DO NOTHING`

const updateQuery = `
UPDATE articles SET
	title = :title,
	content = :content,
	image = :image,
	category = :category,
	parent_category = :parent_category,
	video_url = :video_url,
	video_thumbnail = :video_thumbnail,
	updated_at = :updated_at
WHERE slug = :slug OR source_url = :source_url`

// ArticleRepository handles article writes. Each call is a single-statement
// upsert; no transaction spans more than one article.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// EnsureSchema creates the articles table if it does not exist.
func (r *ArticleRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure articles schema: %w", err)
	}
	return nil
}

// Upsert writes one article under the given mode and reports exactly one of
// inserted, updated, or skipped. Conflicts key on slug or source_url.
func (r *ArticleRepository) Upsert(ctx context.Context, article *ingest.Article, mode UpsertMode) (Outcome, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("unsupported upsert mode: %q", mode)
	}

	if mode == InsertOrUpdate {
		result, err := r.db.NamedExecContext(ctx, updateQuery, article)
		if err != nil {
			return "", fmt.Errorf("failed to update article %s: %w", article.Slug, err)
		}
		if n, err := result.RowsAffected(); err == nil && n > 0 {
			return OutcomeUpdated, nil
		}
	}

	result, err := r.db.NamedExecContext(ctx, insertQuery, article)
	if err != nil {
		return "", fmt.Errorf("failed to insert article %s: %w", article.Slug, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return OutcomeSkipped, nil
	}
	return OutcomeInserted, nil
}

// GetBySlug fetches one article by its slug.
func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*ingest.Article, error) {
	var article ingest.Article
	err := r.db.GetContext(ctx, &article, `SELECT * FROM articles WHERE slug = $1`, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get article %s: %w", slug, err)
	}
	return &article, nil
}

// GetBySourceURL fetches one article by its canonical source URL.
func (r *ArticleRepository) GetBySourceURL(ctx context.Context, sourceURL string) (*ingest.Article, error) {
	var article ingest.Article
	err := r.db.GetContext(ctx, &article, `SELECT * FROM articles WHERE source_url = $1`, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get article by source url: %w", err)
	}
	return &article, nil
}
