package ingest

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
)

const origin = "https://example.com"

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)
	return doc
}

func TestNormalizeURL(t *testing.T) {
	// Protocol-relative gets https:
	assert.Equal(t, "https://cdn.example.com/a.jpg", NormalizeURL("//cdn.example.com/a.jpg", origin))

	// Site-relative gets the origin prefix
	assert.Equal(t, "https://example.com/local/a.jpg", NormalizeURL("/local/a.jpg", origin))

	// Absolute passes through unchanged
	assert.Equal(t, "https://x.com/a.jpg", NormalizeURL("https://x.com/a.jpg", origin))

	// Relative without a leading slash still resolves against the origin
	assert.Equal(t, "https://example.com/img/b.jpg", NormalizeURL("img/b.jpg", origin))

	// Data-URIs are invalid and discarded
	assert.Equal(t, "", NormalizeURL("data:image/png;base64,iVBORw0KGgo=", origin))

	assert.Equal(t, "", NormalizeURL("", origin))
}

func TestDeriveVideoThumbnail(t *testing.T) {
	expected := "https://img.youtube.com/vi/ABC123/hqdefault.jpg"

	assert.Equal(t, expected, DeriveVideoThumbnail("https://www.youtube.com/embed/ABC123"))
	assert.Equal(t, expected, DeriveVideoThumbnail("https://www.youtube.com/watch?v=ABC123"))
	assert.Equal(t, expected, DeriveVideoThumbnail("https://youtu.be/ABC123"))

	// No recognizable pattern yields no thumbnail, not an error
	assert.Equal(t, "", DeriveVideoThumbnail("https://example.com/videos/unrelated"))
}

func TestResolveDetailImageWins(t *testing.T) {
	resolver := NewMediaResolver(origin)
	doc := docFrom(t, `<html><body>
		<div class="news-details">
			<img src="/images/hi-res.jpg" />
		</div>
		<iframe src="https://www.youtube.com/embed/XYZ98765"></iframe>
	</body></html>`)

	media := resolver.Resolve(doc, "https://example.com/thumb.jpg")
	assert.Equal(t, "https://example.com/images/hi-res.jpg", media.Image)
	assert.Equal(t, "https://www.youtube.com/embed/XYZ98765", media.VideoURL)
	assert.Equal(t, "https://img.youtube.com/vi/XYZ98765/hqdefault.jpg", media.VideoThumbnail)
}

func TestResolveVideoThumbnailBeatsListingThumbnail(t *testing.T) {
	// No detail image, a video present, and a listing thumbnail present:
	// the derived video thumbnail wins.
	resolver := NewMediaResolver(origin)
	doc := docFrom(t, `<html><body>
		<iframe src="https://www.youtube.com/embed/VID11111"></iframe>
	</body></html>`)

	media := resolver.Resolve(doc, "https://example.com/listing-thumb.jpg")
	assert.Equal(t, "https://img.youtube.com/vi/VID11111/hqdefault.jpg", media.Image)
}

func TestResolveListingThumbnailFallback(t *testing.T) {
	resolver := NewMediaResolver(origin)
	doc := docFrom(t, `<html><body><p>no media here</p></body></html>`)

	media := resolver.Resolve(doc, "https://example.com/listing-thumb.jpg")
	assert.Equal(t, "https://example.com/listing-thumb.jpg", media.Image)
	assert.Empty(t, media.VideoURL)
	assert.Empty(t, media.VideoThumbnail)
}

func TestResolvePlaceholderFallback(t *testing.T) {
	resolver := NewMediaResolver(origin)
	doc := docFrom(t, `<html><body><p>nothing at all</p></body></html>`)

	media := resolver.Resolve(doc, "")
	assert.Equal(t, PlaceholderImage, media.Image)
}

func TestResolveDiscardsDataURIImage(t *testing.T) {
	resolver := NewMediaResolver(origin)
	doc := docFrom(t, `<html><body>
		<div class="news-details">
			<img src="data:image/gif;base64,R0lGOD" />
		</div>
	</body></html>`)

	media := resolver.Resolve(doc, "")
	assert.Equal(t, PlaceholderImage, media.Image)
}

func TestResolveIgnoresNonVideoHostFrames(t *testing.T) {
	resolver := NewMediaResolver(origin)
	doc := docFrom(t, `<html><body>
		<iframe src="https://maps.example.com/embed/location"></iframe>
	</body></html>`)

	media := resolver.Resolve(doc, "")
	assert.Empty(t, media.VideoURL)
	assert.Empty(t, media.VideoThumbnail)
}
