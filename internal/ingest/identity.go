package ingest

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// hashSeq disambiguates fallback slugs derived within the same nanosecond.
var hashSeq atomic.Uint64

// DeriveIdentity derives the stable (publicID, slug) pair for an article.
// When the URL path carries a numeric article id segment, the id becomes
// publicID and the following segment (or a synthesized news-{id}) becomes
// the slug; this path is deterministic. Otherwise the slug is a short hash
// of the title salted with the current time and publicID is assigned
// randomly: the fallback exists for uniqueness, not reproducibility.
func DeriveIdentity(sourceURL, title string) (int64, string) {
	if id, slug, ok := identityFromPath(sourceURL); ok {
		return id, slug
	}

	h := fnv.New32a()
	h.Write([]byte(title))
	h.Write([]byte(strconv.FormatInt(time.Now().UnixNano(), 10)))
	h.Write([]byte(strconv.FormatUint(hashSeq.Add(1), 10)))
	slug := fmt.Sprintf("news-%08x", h.Sum32())

	return rand.Int63n(9_000_000) + 1_000_000, slug
}

// identityFromPath scans the URL path for the first all-digit segment.
func identityFromPath(sourceURL string) (int64, string, bool) {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return 0, "", false
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments {
		id, err := strconv.ParseInt(segment, 10, 64)
		if err != nil || segment == "" {
			continue
		}

		slug := ""
		if i+1 < len(segments) {
			slug = strings.TrimSpace(segments[i+1])
		}
		if slug == "" {
			slug = fmt.Sprintf("news-%d", id)
		}
		return id, slug, true
	}

	return 0, "", false
}
