package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"deshnews/ingestworker/config"
	"deshnews/ingestworker/internal/ingest"
	"deshnews/ingestworker/internal/store"
	"deshnews/ingestworker/internal/taxonomy"
	"deshnews/ingestworker/services/worker"
)

// listingHTML mimics a category listing page of the source site
const listingHTML = `<!DOCTYPE html>
<html>
<body>
	<div class="news-card">
		<h2 class="news-title">Example Title</h2>
		<a href="/region/article/5001/example-title">read more</a>
		<img src="/thumbs/5001.jpg" />
		<p class="news-summary">Listing summary text.</p>
	</div>
</body>
</html>`

// detailHTML has a recognizable body container, a detail image, and no video
const detailHTML = `<!DOCTYPE html>
<html>
<body>
	<h1>Example Title</h1>
	<div class="news-details">
		<img src="/images/5001-large.jpg" />
		<p>Full article body text.</p>
		<script>adInit();</script>
	</div>
</body>
</html>`

// inMemoryStore implements worker.ArticleStore for the end-to-end run
type inMemoryStore struct {
	mu       sync.Mutex
	articles map[string]*ingest.Article
}

func newInMemoryStore() *inMemoryStore {
	return &inMemoryStore{articles: make(map[string]*ingest.Article)}
}

func (s *inMemoryStore) Upsert(_ context.Context, a *ingest.Article, mode store.UpsertMode) (store.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.articles {
		if e.Slug == a.Slug || e.SourceURL == a.SourceURL {
			if mode == store.InsertOnly {
				return store.OutcomeSkipped, nil
			}
			e.Content = a.Content
			e.Image = a.Image
			e.UpdatedAt = a.UpdatedAt
			return store.OutcomeUpdated, nil
		}
	}

	stored := *a
	s.articles[a.Slug] = &stored
	return store.OutcomeInserted, nil
}

func newSourceServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/category/dhaka", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(listingHTML))
	})
	mux.HandleFunc("/region/article/5001/example-title", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(detailHTML))
	})
	return httptest.NewServer(mux)
}

func TestEndToEndListingIngestion(t *testing.T) {
	server := newSourceServer()
	defer server.Close()

	st := newInMemoryStore()
	cfg := config.Config{
		SourceBaseURL: server.URL,
		Categories:    []string{"dhaka"},
		Mode:          config.ModeSequential,
		BatchSize:     5,
		ItemDelay:     time.Millisecond,
		BatchDelay:    time.Millisecond,
		UpsertMode:    "insert_or_update",
		RunOnce:       true,
	}

	w := worker.NewWorker(cfg, taxonomy.New(), st, nil, nil)
	stats := w.Run(context.Background())

	assert.Equal(t, 1, stats.Inserted)
	assert.Equal(t, 0, stats.Failed)

	article := st.articles["example-title"]
	assert.NotNil(t, article)
	assert.Equal(t, int64(5001), article.PublicID)
	assert.Equal(t, "example-title", article.Slug)
	assert.Equal(t, "Example Title", article.Title)
	assert.NotEmpty(t, article.Content)
	assert.Contains(t, article.Content, "Full article body text.")
	assert.NotContains(t, article.Content, "adInit")
	assert.Equal(t, server.URL+"/images/5001-large.jpg", article.Image)
	assert.Empty(t, article.VideoURL)
	assert.Equal(t, "ঢাকা", article.Category)
	assert.Equal(t, "সারাদেশ", article.ParentCategory)
	assert.Equal(t, ingest.StatusPublished, article.Status)
}

func TestEndToEndExplicitURL(t *testing.T) {
	server := newSourceServer()
	defer server.Close()

	st := newInMemoryStore()
	cfg := config.Config{
		SourceBaseURL:    server.URL,
		ArticleURLs:      []string{server.URL + "/region/article/5001/example-title"},
		CategoryOverride: "dhaka",
		Mode:             config.ModeSequential,
		BatchSize:        5,
		ItemDelay:        time.Millisecond,
		BatchDelay:       time.Millisecond,
		UpsertMode:       "insert_or_update",
		RunOnce:          true,
	}

	w := worker.NewWorker(cfg, taxonomy.New(), st, nil, nil)
	stats := w.Run(context.Background())

	assert.Equal(t, 1, stats.Inserted)

	article := st.articles["example-title"]
	assert.NotNil(t, article)
	assert.Equal(t, int64(5001), article.PublicID)
	assert.Equal(t, "ঢাকা", article.Category)

	// A second run updates in place: still one record per slug
	stats = w.Run(context.Background())
	assert.Equal(t, 1, stats.Updated)
	assert.Len(t, st.articles, 1)
}
