package catalog

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Placeholders for synthesized entries.
const (
	ProjectDescriptionPlaceholder     = "Project description coming soon."
	CertificateDescriptionPlaceholder = "Certificate details coming soon."
	CertificateLinkPlaceholder        = "#"
)

// ImagePolicy decides which image a matched project keeps.
type ImagePolicy string

const (
	// ImageFromCatalog keeps the curated catalog image on every match.
	ImageFromCatalog ImagePolicy = "catalog"
	// ImageFromIncoming takes the incoming image when it is usable.
	ImageFromIncoming ImagePolicy = "incoming"
)

type mergeConfig struct {
	images ImagePolicy
	now    func() time.Time
}

// MergeOption configures a merge call.
type MergeOption func(*mergeConfig)

// WithImagePolicy sets the project image policy. Unknown values fall back
// to ImageFromCatalog.
func WithImagePolicy(p ImagePolicy) MergeOption {
	return func(c *mergeConfig) {
		if p == ImageFromIncoming {
			c.images = p
		}
	}
}

// WithClock overrides the clock used for synthesized certificate dates.
func WithClock(now func() time.Time) MergeOption {
	return func(c *mergeConfig) {
		if now != nil {
			c.now = now
		}
	}
}

func newMergeConfig(opts []MergeOption) mergeConfig {
	cfg := mergeConfig{images: ImageFromCatalog, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// keyed exposes the match keys of an incoming record.
type keyed interface {
	matchKeys() (link, title *string)
}

func (r ProjectRecord) matchKeys() (*string, *string)     { return r.Link, r.Title }
func (r CertificateRecord) matchKeys() (*string, *string) { return r.Link, r.Title }

// assignMatches pairs each catalog item (given by its links and titles) with
// the index of its incoming record, or -1. A record matches at most one item.
// Link equality is settled across the whole catalog first. Title equality
// then only considers unclaimed records whose link names no other item.
func assignMatches[R keyed](links, titles []string, records []R) []int {
	match := make([]int, len(links))
	claimed := make([]bool, len(records))
	owner := make(map[string]int, len(links))
	for i, l := range links {
		match[i] = -1
		if _, ok := owner[l]; !ok {
			owner[l] = i
		}
	}

	for i, link := range links {
		for j, r := range records {
			if l, _ := r.matchKeys(); !claimed[j] && equalsKey(l, link) {
				match[i], claimed[j] = j, true
				break
			}
		}
	}

	for i, title := range titles {
		if match[i] >= 0 {
			continue
		}
		for j, r := range records {
			if claimed[j] {
				continue
			}
			l, t := r.matchKeys()
			if IsUsable(l) {
				if o, ok := owner[strings.TrimSpace(*l)]; ok && o != i {
					continue
				}
			}
			if equalsKey(t, title) {
				match[i], claimed[j] = j, true
				break
			}
		}
	}
	return match
}

// matchesAny reports whether r shares a link or title with any catalog key.
func matchesAny[R keyed](r R, links, titles map[string]struct{}) bool {
	l, t := r.matchKeys()
	if IsUsable(l) {
		if _, ok := links[strings.TrimSpace(*l)]; ok {
			return true
		}
	}
	if IsUsable(t) {
		if _, ok := titles[strings.TrimSpace(*t)]; ok {
			return true
		}
	}
	return false
}

func keyList[T any](items []T, key func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = key(it)
	}
	return out
}

func keySets[T any](items []T, keys func(T) (link, title string)) (links, titles map[string]struct{}) {
	links = make(map[string]struct{}, len(items))
	titles = make(map[string]struct{}, len(items))
	for _, it := range items {
		l, t := keys(it)
		links[l] = struct{}{}
		titles[t] = struct{}{}
	}
	return links, titles
}

func equalsKey(v *string, key string) bool {
	return IsUsable(v) && strings.TrimSpace(*v) == key
}

// MergeProjects overlays incoming records onto the project catalog and
// appends viable unmatched records. It never fails: unusable fields fall back
// to catalog values or placeholders.
func MergeProjects(catalog []Project, incoming []ProjectRecord, opts ...MergeOption) []Project {
	if len(incoming) == 0 {
		return cloneProjects(catalog)
	}
	cfg := newMergeConfig(opts)

	out := make([]Project, 0, len(catalog))
	links, titles := keySets(catalog, func(p Project) (string, string) { return p.Link, p.Title })
	match := assignMatches(keyList(catalog, func(p Project) string { return p.Link }),
		keyList(catalog, func(p Project) string { return p.Title }), incoming)
	for i, item := range catalog {
		idx := match[i]
		if idx < 0 {
			out = append(out, cloneProject(item))
			continue
		}
		out = append(out, overlayProject(item, incoming[idx], cfg))
	}

	extra := 0
	for _, r := range incoming {
		if matchesAny(r, links, titles) || !viableProject(r) {
			continue
		}
		out = append(out, synthesizeProject(r, extra))
		extra++
	}
	return out
}

func overlayProject(item Project, r ProjectRecord, cfg mergeConfig) Project {
	merged := Project{
		ID:          item.ID,
		Title:       pick(r.Title, item.Title),
		Description: pick(r.Description, item.Description),
		Image:       item.Image,
		Link:        pick(r.Link, item.Link),
		Tags:        slices.Clone(item.Tags),
		Featured:    item.Featured,
	}
	if cfg.images == ImageFromIncoming {
		merged.Image = pick(r.Image, item.Image)
	}
	if TagsUsable(r.Tags) {
		merged.Tags = slices.Clone(r.Tags)
	}
	if r.Featured != nil {
		merged.Featured = *r.Featured
	}
	return merged
}

func viableProject(r ProjectRecord) bool {
	return IsUsable(r.Title) && IsUsable(r.Image) && IsUsable(r.Link)
}

func synthesizeProject(r ProjectRecord, n int) Project {
	p := Project{
		ID:          synthesizedID(r.ID, r.StoreID, n),
		Title:       strings.TrimSpace(*r.Title),
		Description: pick(r.Description, ProjectDescriptionPlaceholder),
		Image:       strings.TrimSpace(*r.Image),
		Link:        strings.TrimSpace(*r.Link),
		Tags:        []string{},
	}
	if r.Tags != nil {
		p.Tags = slices.Clone(r.Tags)
	}
	if r.Featured != nil {
		p.Featured = *r.Featured
	}
	return p
}

// MergeCertificates overlays incoming records onto the certificate catalog
// and appends viable unmatched records.
func MergeCertificates(catalog []Certificate, incoming []CertificateRecord, opts ...MergeOption) []Certificate {
	if len(incoming) == 0 {
		return slices.Clone(catalog)
	}
	cfg := newMergeConfig(opts)

	out := make([]Certificate, 0, len(catalog))
	links, titles := keySets(catalog, func(c Certificate) (string, string) { return c.Link, c.Title })
	match := assignMatches(keyList(catalog, func(c Certificate) string { return c.Link }),
		keyList(catalog, func(c Certificate) string { return c.Title }), incoming)
	for i, item := range catalog {
		idx := match[i]
		if idx < 0 {
			out = append(out, item)
			continue
		}
		out = append(out, overlayCertificate(item, incoming[idx]))
	}

	extra := 0
	for _, r := range incoming {
		if matchesAny(r, links, titles) || !viableCertificate(r) {
			continue
		}
		out = append(out, synthesizeCertificate(r, extra, cfg.now()))
		extra++
	}
	return out
}

func overlayCertificate(item Certificate, r CertificateRecord) Certificate {
	merged := Certificate{
		ID:          item.ID,
		Title:       pick(r.Title, item.Title),
		Issuer:      pick(r.Issuer, item.Issuer),
		Date:        item.Date,
		Description: pick(r.Description, item.Description),
		Type:        item.Type,
		Link:        pick(r.Link, item.Link),
	}
	if d, ok := NormalizeDate(r.Date); ok {
		merged.Date = d
	}
	if IsKnownType(r.Type) {
		merged.Type = *r.Type
	}
	return merged
}

func viableCertificate(r CertificateRecord) bool {
	return IsUsable(r.Title) && IsUsable(r.Issuer)
}

func synthesizeCertificate(r CertificateRecord, n int, now time.Time) Certificate {
	c := Certificate{
		ID:          synthesizedID(r.ID, r.StoreID, n),
		Title:       strings.TrimSpace(*r.Title),
		Issuer:      strings.TrimSpace(*r.Issuer),
		Date:        NormalizeTime(now),
		Description: pick(r.Description, CertificateDescriptionPlaceholder),
		Type:        TypeCertification,
		Link:        pick(r.Link, CertificateLinkPlaceholder),
	}
	if d, ok := NormalizeDate(r.Date); ok {
		c.Date = d
	}
	if IsKnownType(r.Type) {
		c.Type = *r.Type
	}
	return c
}

func synthesizedID(id *string, storeID string, n int) string {
	if IsUsable(id) {
		return strings.TrimSpace(*id)
	}
	if storeID != "" {
		return storeID
	}
	return fmt.Sprintf("extra-%d", n)
}

func cloneProject(p Project) Project {
	p.Tags = slices.Clone(p.Tags)
	return p
}

func cloneProjects(in []Project) []Project {
	out := make([]Project, len(in))
	for i, p := range in {
		out[i] = cloneProject(p)
	}
	return out
}
