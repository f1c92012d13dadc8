// Package taxonomy holds the static bilingual category graph: ASCII slugs
// mapped to Bengali display labels, with a parent adjacency forming
// sections -> divisions -> districts -> sub-topics. Built once at startup,
// read-only afterwards.
package taxonomy

// Definition is one entry of the static category table.
type Definition struct {
	Slug   string
	Label  string
	Parent string
}

// Taxonomy is the immutable category graph.
type Taxonomy struct {
	defs     []Definition
	bySlug   map[string]Definition
	children map[string][]string
}

// New builds the taxonomy from the package definition table.
func New() *Taxonomy {
	return NewFromDefinitions(definitions)
}

// NewFromDefinitions builds a taxonomy from an arbitrary definition table.
// Mainly for tests; production code uses New.
func NewFromDefinitions(defs []Definition) *Taxonomy {
	t := &Taxonomy{
		defs:     defs,
		bySlug:   make(map[string]Definition, len(defs)),
		children: make(map[string][]string),
	}
	for _, d := range defs {
		if _, exists := t.bySlug[d.Slug]; !exists {
			t.bySlug[d.Slug] = d
		}
		if d.Parent != "" {
			t.children[d.Parent] = append(t.children[d.Parent], d.Slug)
		}
	}
	return t
}

// Expand returns slug plus every transitive descendant, without duplicates.
// The visited set guards against cycles: they should not exist by
// construction, but a malformed table must not hang the traversal.
func (t *Taxonomy) Expand(slug string) []string {
	visited := make(map[string]bool)
	var out []string
	t.expand(slug, visited, &out)
	return out
}

func (t *Taxonomy) expand(slug string, visited map[string]bool, out *[]string) {
	if visited[slug] {
		return
	}
	visited[slug] = true
	*out = append(*out, slug)
	for _, child := range t.children[slug] {
		t.expand(child, visited, out)
	}
}

// ResolveToSlug maps an input to a slug: a known slug passes through,
// a known label resolves to the first matching slug in definition order,
// anything else is returned unchanged so callers can treat the result as
// best effort.
func (t *Taxonomy) ResolveToSlug(input string) string {
	if _, ok := t.bySlug[input]; ok {
		return input
	}
	for _, d := range t.defs {
		if d.Label == input {
			return d.Slug
		}
	}
	return input
}

// ParentOf returns the parent slug, if any.
func (t *Taxonomy) ParentOf(slug string) (string, bool) {
	d, ok := t.bySlug[slug]
	if !ok || d.Parent == "" {
		return "", false
	}
	return d.Parent, true
}

// LabelOf returns the display label for a slug.
func (t *Taxonomy) LabelOf(slug string) (string, bool) {
	d, ok := t.bySlug[slug]
	if !ok {
		return "", false
	}
	return d.Label, true
}

// ListingPath returns the source-site listing path for a category.
func (t *Taxonomy) ListingPath(slug string) string {
	return "/category/" + slug
}

// Known reports whether slug is in the definition table.
func (t *Taxonomy) Known(slug string) bool {
	_, ok := t.bySlug[slug]
	return ok
}
