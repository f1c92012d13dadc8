package ingest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"deshnews/ingestworker/logger"
)

// ListingStrategy is one rung of the listing selector cascade. Container
// selects the repeated item blocks; the per-field selectors are scoped to
// one block. Empty field selectors fall back to the defaults in
// extractItem.
type ListingStrategy struct {
	Name      string
	Container string
	Title     string
	Link      string
	Thumbnail string
	Summary   string
}

// defaultListingStrategies orders the known shapes of the source site's
// listing markup, most specific first, ending at the bare
// anchor-wrapping-a-heading fallback. Selectors drift with the site's
// redesigns; order is the contract, not any single selector.
var defaultListingStrategies = []ListingStrategy{
	{
		Name:      "news-card",
		Container: "div.news-card, div.card-news, article.news-item",
		Title:     ".news-title, h2, h3",
		Link:      "a",
		Thumbnail: "img",
		Summary:   ".news-summary, p",
	},
	{
		Name:      "listing-row",
		Container: "div.listing div.row-item, ul.news-list li",
		Title:     ".title, h3, h4",
		Link:      "a",
		Thumbnail: "img",
		Summary:   "p",
	},
	{
		Name:      "anchor-heading",
		Container: "a:has(h1), a:has(h2), a:has(h3)",
		Title:     "h1, h2, h3",
		Link:      "",
		Thumbnail: "img",
	},
}

// defaultBodySelectors is the detail-page content container cascade.
var defaultBodySelectors = []string{
	"div.news-details",
	"article .content-details",
	"div#content-details",
	"div.post-content",
	"div.description",
}

// removeSelectors strips non-content nodes before the body HTML is taken.
const removeSelectors = "script, style, ins, .ads, .advertisement, .ad-holder, .social-share"

// Extractor pulls listing items and detail bodies out of parsed documents
// using ordered selector cascades.
type Extractor struct {
	Origin            string
	ListingStrategies []ListingStrategy
	BodySelectors     []string
}

// NewExtractor creates an extractor for the given source origin with the
// default cascades.
func NewExtractor(origin string) *Extractor {
	return &Extractor{
		Origin:            strings.TrimRight(origin, "/"),
		ListingStrategies: defaultListingStrategies,
		BodySelectors:     defaultBodySelectors,
	}
}

// ExtractListing applies the listing cascade and returns the items of the
// first strategy that matches at least one usable block.
func (e *Extractor) ExtractListing(doc *goquery.Document) []ListingItem {
	for _, strategy := range e.ListingStrategies {
		selections := doc.Find(strategy.Container)
		if selections.Length() == 0 {
			continue
		}

		var items []ListingItem
		selections.Each(func(i int, s *goquery.Selection) {
			item := e.extractItem(s, strategy)
			if item != nil {
				items = append(items, *item)
			}
		})

		if len(items) > 0 {
			logger.Debug("listing strategy %q matched %d items", strategy.Name, len(items))
			return items
		}
	}

	return nil
}

// extractItem pulls one listing item out of a container block. Items
// without a title or link are dropped; everything else is best effort.
func (e *Extractor) extractItem(s *goquery.Selection, strategy ListingStrategy) *ListingItem {
	title := e.extractTitle(s, strategy)
	if title == "" {
		return nil
	}

	link := e.extractLink(s, strategy)
	if link == "" {
		return nil
	}

	item := &ListingItem{
		Title: title,
		Link:  link,
	}

	if strategy.Summary != "" {
		item.Summary = strings.TrimSpace(s.Find(strategy.Summary).First().Text())
	}

	if strategy.Thumbnail != "" {
		if src, exists := s.Find(strategy.Thumbnail).First().Attr("src"); exists {
			item.Thumbnail = NormalizeURL(strings.TrimSpace(src), e.Origin)
		}
	}

	return item
}

// extractTitle tries the strategy's title selector, then falls back to the
// first anchor's own text.
func (e *Extractor) extractTitle(s *goquery.Selection, strategy ListingStrategy) string {
	if strategy.Title != "" {
		titleSel := s.Find(strategy.Title).First()
		if titleSel.Length() > 0 {
			if title := strings.TrimSpace(titleSel.Text()); title != "" {
				return title
			}
		}
	}
	return strings.TrimSpace(s.Find("a").First().Text())
}

// extractLink resolves the item link to an absolute URL on the source
// origin. An anchor-container strategy (empty Link selector) reads the
// container's own href.
func (e *Extractor) extractLink(s *goquery.Selection, strategy ListingStrategy) string {
	var href string
	var exists bool
	if strategy.Link == "" {
		href, exists = s.Attr("href")
	} else {
		href, exists = s.Find(strategy.Link).First().Attr("href")
	}
	if !exists {
		return ""
	}
	return NormalizeURL(strings.TrimSpace(href), e.Origin)
}

// ExtractDetail extracts the title and sanitized body HTML from a detail
// page. It never fails on parse gaps: a missing title falls back to the
// listing title, a missing body is synthesized from the listing summary so
// the record never has empty content.
func (e *Extractor) ExtractDetail(doc *goquery.Document, item ListingItem) DetailResult {
	result := DetailResult{Title: item.Title}

	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		result.Title = title
	}

	for _, selector := range e.BodySelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}

		container.Find(removeSelectors).Remove()

		html, err := container.Html()
		if err != nil {
			continue
		}
		html = strings.TrimSpace(html)
		if html != "" {
			result.Content = html
			break
		}
	}

	if result.Content == "" {
		summary := item.Summary
		if summary == "" {
			summary = result.Title
		}
		result.Content = fmt.Sprintf("<p>%s</p>", summary)
	}

	return result
}
