package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlaceholderImage is the fixed fallback when no usable image is found.
// The rendering layer expects image to always be non-null.
const PlaceholderImage = "https://cdn.deshnews.example/static/placeholder-news.jpg"

// detailImageSelectors is the high-resolution detail image cascade.
var detailImageSelectors = []string{
	"div.news-details img",
	"article .featured-image img",
	"div.post-content img",
	"figure.featured img",
}

// videoIDPattern captures the platform video identifier from any of the
// known URL shapes: embed/ID, watch?v=ID, youtu.be/ID.
var videoIDPattern = regexp.MustCompile(`(?:embed/|[?&]v=|youtu\.be/)([A-Za-z0-9_-]{5,})`)

const videoThumbnailTemplate = "https://img.youtube.com/vi/%s/hqdefault.jpg"

// MediaResolver extracts the article image and any embedded video from a
// detail page, with a fixed fallback chain for the image.
type MediaResolver struct {
	Origin string
}

// NewMediaResolver creates a resolver for the given source origin.
func NewMediaResolver(origin string) *MediaResolver {
	return &MediaResolver{Origin: strings.TrimRight(origin, "/")}
}

// Resolve evaluates the image priority chain over the detail document:
// detail image, then derived video thumbnail, then the listing thumbnail,
// then the placeholder. First non-empty wins. Video fields are set
// independently of which image won.
func (m *MediaResolver) Resolve(doc *goquery.Document, listingThumbnail string) Media {
	media := Media{}

	media.VideoURL = m.extractVideoURL(doc)
	if media.VideoURL != "" {
		media.VideoThumbnail = DeriveVideoThumbnail(media.VideoURL)
	}

	if image := m.extractDetailImage(doc); image != "" {
		media.Image = image
	} else if media.VideoThumbnail != "" {
		media.Image = media.VideoThumbnail
	} else if listingThumbnail != "" {
		media.Image = listingThumbnail
	} else {
		media.Image = PlaceholderImage
	}

	return media
}

// extractDetailImage walks the detail image cascade, discarding data-URIs.
func (m *MediaResolver) extractDetailImage(doc *goquery.Document) string {
	for _, selector := range detailImageSelectors {
		img := doc.Find(selector).First()
		if img.Length() == 0 {
			continue
		}
		src, exists := img.Attr("src")
		if !exists {
			continue
		}
		if normalized := NormalizeURL(strings.TrimSpace(src), m.Origin); normalized != "" {
			return normalized
		}
	}
	return ""
}

// extractVideoURL finds an embedded frame on the known video host.
func (m *MediaResolver) extractVideoURL(doc *goquery.Document) string {
	var videoURL string
	doc.Find("iframe").EachWithBreak(func(i int, s *goquery.Selection) bool {
		src, exists := s.Attr("src")
		if !exists {
			return true
		}
		src = strings.TrimSpace(src)
		if strings.Contains(src, "youtube.com") || strings.Contains(src, "youtu.be") {
			videoURL = NormalizeURL(src, m.Origin)
			return false
		}
		return true
	})
	return videoURL
}

// DeriveVideoThumbnail builds the thumbnail URL from the video identifier.
// An unrecognized URL yields no thumbnail, which is absent rather than an
// error.
func DeriveVideoThumbnail(videoURL string) string {
	match := videoIDPattern.FindStringSubmatch(videoURL)
	if len(match) < 2 {
		return ""
	}
	return fmt.Sprintf(videoThumbnailTemplate, match[1])
}

// NormalizeURL resolves a raw URL against the source origin: absolute URLs
// pass through, protocol-relative URLs get https:, site-relative paths get
// the origin prefix. Data-URIs and other embedded payloads are invalid and
// come back empty.
func NormalizeURL(raw, origin string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "data:") {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return strings.TrimRight(origin, "/") + raw
}
