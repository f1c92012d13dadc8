package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractListingCardStrategy(t *testing.T) {
	extractor := NewExtractor(origin)
	doc := docFrom(t, `<html><body>
		<div class="news-card">
			<h2 class="news-title">First headline</h2>
			<a href="/dhaka/article/1001/first-headline">read</a>
			<img src="//cdn.example.com/1001.jpg" />
			<p class="news-summary">A short summary.</p>
		</div>
		<div class="news-card">
			<h2 class="news-title">Second headline</h2>
			<a href="https://example.com/dhaka/article/1002/second-headline">read</a>
		</div>
	</body></html>`)

	items := extractor.ExtractListing(doc)
	assert.Len(t, items, 2)

	assert.Equal(t, "First headline", items[0].Title)
	assert.Equal(t, "https://example.com/dhaka/article/1001/first-headline", items[0].Link)
	assert.Equal(t, "https://cdn.example.com/1001.jpg", items[0].Thumbnail)
	assert.Equal(t, "A short summary.", items[0].Summary)

	assert.Equal(t, "Second headline", items[1].Title)
	assert.Equal(t, "https://example.com/dhaka/article/1002/second-headline", items[1].Link)
	assert.Empty(t, items[1].Thumbnail)
}

func TestExtractListingAnchorHeadingFallback(t *testing.T) {
	// No card containers at all; the bare anchor-wrapping-a-heading rung
	// must still find the items.
	extractor := NewExtractor(origin)
	doc := docFrom(t, `<html><body>
		<a href="/sylhet/article/2001/flood-update"><h3>Flood update</h3></a>
		<a href="/sylhet/article/2002/road-repair"><h3>Road repair</h3></a>
	</body></html>`)

	items := extractor.ExtractListing(doc)
	assert.Len(t, items, 2)
	assert.Equal(t, "Flood update", items[0].Title)
	assert.Equal(t, "https://example.com/sylhet/article/2001/flood-update", items[0].Link)
}

func TestExtractListingTitleFallsBackToAnchorText(t *testing.T) {
	extractor := NewExtractor(origin)
	doc := docFrom(t, `<html><body>
		<ul class="news-list">
			<li><a href="/news/3001">Anchor text headline</a></li>
		</ul>
	</body></html>`)

	items := extractor.ExtractListing(doc)
	assert.Len(t, items, 1)
	assert.Equal(t, "Anchor text headline", items[0].Title)
}

func TestExtractListingDropsItemsWithoutTitleOrLink(t *testing.T) {
	extractor := NewExtractor(origin)
	doc := docFrom(t, `<html><body>
		<div class="news-card">
			<h2 class="news-title">Has no link</h2>
		</div>
		<div class="news-card">
			<h2 class="news-title">Complete item</h2>
			<a href="/ok/4001">read</a>
		</div>
	</body></html>`)

	items := extractor.ExtractListing(doc)
	assert.Len(t, items, 1)
	assert.Equal(t, "Complete item", items[0].Title)
}

func TestExtractListingEmptyDocument(t *testing.T) {
	extractor := NewExtractor(origin)
	doc := docFrom(t, `<html><body><p>nothing here</p></body></html>`)

	items := extractor.ExtractListing(doc)
	assert.Empty(t, items)
}

func TestExtractDetailBody(t *testing.T) {
	extractor := NewExtractor(origin)
	doc := docFrom(t, `<html><body>
		<h1>Detail headline</h1>
		<div class="news-details">
			<p>First paragraph.</p>
			<script>trackPageView();</script>
			<div class="advertisement">Buy things</div>
			<p>Second paragraph.</p>
		</div>
	</body></html>`)

	result := extractor.ExtractDetail(doc, ListingItem{Title: "Listing title"})
	assert.Equal(t, "Detail headline", result.Title)
	assert.Contains(t, result.Content, "First paragraph.")
	assert.Contains(t, result.Content, "Second paragraph.")
	assert.NotContains(t, result.Content, "trackPageView")
	assert.NotContains(t, result.Content, "Buy things")
}

func TestExtractDetailBodyCascade(t *testing.T) {
	// The primary container is absent; a later rung must match.
	extractor := NewExtractor(origin)
	doc := docFrom(t, `<html><body>
		<div class="post-content"><p>Body via fallback selector.</p></div>
	</body></html>`)

	result := extractor.ExtractDetail(doc, ListingItem{Title: "Listing title"})
	assert.Contains(t, result.Content, "Body via fallback selector.")
}

func TestExtractDetailSynthesizesBodyFromSummary(t *testing.T) {
	extractor := NewExtractor(origin)
	doc := docFrom(t, `<html><body><div class="unrelated">no body container</div></body></html>`)

	result := extractor.ExtractDetail(doc, ListingItem{
		Title:   "Listing title",
		Summary: "The listing summary.",
	})
	assert.Equal(t, "<p>The listing summary.</p>", result.Content)
	assert.Equal(t, "Listing title", result.Title)
}

func TestExtractDetailSynthesizesBodyFromTitle(t *testing.T) {
	// No body container and no summary: the title becomes the one-paragraph
	// placeholder so content is never empty.
	extractor := NewExtractor(origin)
	doc := docFrom(t, `<html><body></body></html>`)

	result := extractor.ExtractDetail(doc, ListingItem{Title: "Only a title"})
	assert.Equal(t, "<p>Only a title</p>", result.Content)
}
