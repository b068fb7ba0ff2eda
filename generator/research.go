package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTrendingTopics     = 5
	maxHashtags           = 10
	maxCompetitorMentions = 5
	maxInsightsLength     = 500
	maxFragmentLength     = 100
)

var (
	hashtagRe    = regexp.MustCompile(`#\w+`)
	trendingRe   = regexp.MustCompile(`(?i)\b(?:trending|popular)\s*:\s*(.+)`)
	numberedRe   = regexp.MustCompile(`^\s*\d+\.\s+(.+)`)
	competitorRe = regexp.MustCompile(`(?i)\b(?:brands?|competitors?|compan(?:y|ies)|products?)\s*:\s*(.+)`)
	markdownRe   = regexp.MustCompile("[*`]+")
)

// Researcher enriches prompts with web research. It never fails: any problem
// yields EmptyDigest.
type Researcher struct {
	searcher Searcher
	now      func() time.Time
}

// NewResearcher returns a Researcher backed by s. A nil s disables research.
func NewResearcher(s Searcher) *Researcher {
	return &Researcher{searcher: s, now: time.Now}
}

// Research looks up current trends for the product.
func (r *Researcher) Research(ctx context.Context, productName, category string) Digest {
	if r == nil || r.searcher == nil {
		slog.Debug("web research not configured")
		return EmptyDigest()
	}

	raw, err := r.searcher.Search(ctx, researchQuery(productName, category, r.now().Year()))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Debug("web research canceled", "product", productName)
		} else {
			slog.Warn("web research failed, continuing without it", "error", err, "product", productName)
		}
		return EmptyDigest()
	}

	d := ExtractDigest(raw)
	slog.Debug("web research done",
		"product", productName,
		"topics", len(d.TrendingTopics),
		"hashtags", len(d.RelevantHashtags),
		"competitors", len(d.CompetitorMentions),
	)
	return d
}

func researchQuery(name, category string, year int) string {
	subject := name
	if category != "" {
		subject = fmt.Sprintf("%s (%s category)", name, category)
	}
	return fmt.Sprintf(
		"Research current social media marketing trends for %s in %d. "+
			"List trending topics (prefix each line with \"Trending:\"), popular hashtags, "+
			"key market insights, and competitor brands (prefix with \"Competitors:\").",
		subject, year)
}

// ExtractDigest mines raw research text for topics, hashtags, competitors and
// an insights excerpt. It is heuristic; counts are bounded and entries are
// deduplicated in first-seen order.
func ExtractDigest(raw string) Digest {
	d := EmptyDigest()

	hashtags := newOrderedSet(maxHashtags, 0)
	for _, tag := range hashtagRe.FindAllString(raw, -1) {
		hashtags.add(tag)
	}
	d.RelevantHashtags = hashtags.items

	topics := newOrderedSet(maxTrendingTopics, maxFragmentLength)
	competitors := newOrderedSet(maxCompetitorMentions, maxFragmentLength)
	for _, line := range strings.Split(raw, "\n") {
		if m := competitorRe.FindStringSubmatch(line); m != nil {
			for _, name := range strings.FieldsFunc(m[1], func(r rune) bool { return r == ',' || r == ';' }) {
				competitors.add(cleanFragment(name))
			}
			continue
		}
		if m := trendingRe.FindStringSubmatch(line); m != nil {
			topics.add(cleanFragment(m[1]))
			continue
		}
		if m := numberedRe.FindStringSubmatch(line); m != nil {
			topics.add(cleanFragment(m[1]))
		}
	}
	d.TrendingTopics = topics.items
	d.CompetitorMentions = competitors.items

	d.MarketInsights = truncateRunes(raw, maxInsightsLength)
	return d
}

func cleanFragment(s string) string {
	s = markdownRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// orderedSet keeps up to limit distinct strings in insertion order. When
// maxLen is non-zero, strings of maxLen runes or more are rejected.
type orderedSet struct {
	limit  int
	maxLen int
	seen   map[string]bool
	items  []string
}

func newOrderedSet(limit, maxLen int) *orderedSet {
	return &orderedSet{limit: limit, maxLen: maxLen, seen: make(map[string]bool), items: []string{}}
}

// add keeps s if it is non-empty, short enough, new, and the set is not full.
func (o *orderedSet) add(s string) {
	if s == "" || (o.maxLen > 0 && utf8.RuneCountInString(s) >= o.maxLen) {
		return
	}
	if len(o.items) >= o.limit || o.seen[s] {
		return
	}
	o.seen[s] = true
	o.items = append(o.items, s)
}
