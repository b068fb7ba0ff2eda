package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	out     string
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	return f.out, f.err
}

const sampleResearch = `Here is what is happening for reusable bottles right now.

Trending: refill stations in offices
Popular: **plastic-free July**
1. Insulated bottles for commuters
2. Custom engraving
3. Trending: refill stations in offices

Competitors: Hydro Flask, S'well; Yeti
Hashtags to use: #ZeroWaste #EcoFriendly #ZeroWaste #Hydration`

func TestExtractDigest(t *testing.T) {
	d := ExtractDigest(sampleResearch)

	assert.Equal(t, []string{"#ZeroWaste", "#EcoFriendly", "#Hydration"}, d.RelevantHashtags)
	assert.Equal(t, []string{
		"refill stations in offices",
		"plastic-free July",
		"Insulated bottles for commuters",
		"Custom engraving",
	}, d.TrendingTopics)
	assert.Equal(t, []string{"Hydro Flask", "S'well", "Yeti"}, d.CompetitorMentions)
	assert.Equal(t, sampleResearch, d.MarketInsights)
}

func TestExtractDigest_Bounds(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 20; i++ {
		sb.WriteString(fmt.Sprintf("%d. topic %d #tag%d\n", i, i, i))
	}
	sb.WriteString("Brands: a, b, c, d, e, f, g\n")
	sb.WriteString("Trending: " + strings.Repeat("x", 120) + "\n")
	sb.WriteString(strings.Repeat("filler ", 100))

	d := ExtractDigest(sb.String())
	assert.Len(t, d.TrendingTopics, 5)
	assert.Equal(t, "topic 1 #tag1", d.TrendingTopics[0])
	assert.Len(t, d.RelevantHashtags, 10)
	assert.Equal(t, "#tag10", d.RelevantHashtags[9])
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, d.CompetitorMentions)
	assert.Len(t, []rune(d.MarketInsights), 500)
}

func TestExtractDigest_DropsLongTopics(t *testing.T) {
	d := ExtractDigest("Trending: " + strings.Repeat("x", 100))
	assert.Empty(t, d.TrendingTopics)

	d = ExtractDigest("Trending: " + strings.Repeat("x", 99))
	assert.Len(t, d.TrendingTopics, 1)
}

func TestExtractDigest_Empty(t *testing.T) {
	assert.Equal(t, EmptyDigest(), ExtractDigest(""))
}

func TestResearcher_FailureYieldsEmptyDigest(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"network", errors.New("dial tcp: connection refused")},
		{"canceled", context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResearcher(&fakeSearcher{err: tt.err})
			assert.Equal(t, EmptyDigest(), r.Research(context.Background(), "EcoBottle", ""))
		})
	}
}

func TestResearcher_NotConfigured(t *testing.T) {
	assert.Equal(t, EmptyDigest(), NewResearcher(nil).Research(context.Background(), "EcoBottle", ""))

	var r *Researcher
	assert.Equal(t, EmptyDigest(), r.Research(context.Background(), "EcoBottle", ""))
}

func TestResearcher_Query(t *testing.T) {
	s := &fakeSearcher{out: sampleResearch}
	r := NewResearcher(s)
	r.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	d := r.Research(context.Background(), "EcoBottle", "Outdoors")
	require.Len(t, s.queries, 1)
	assert.Contains(t, s.queries[0], "EcoBottle (Outdoors category)")
	assert.Contains(t, s.queries[0], "2026")
	assert.True(t, d.HasSignal())

	r.Research(context.Background(), "EcoBottle", "")
	assert.NotContains(t, s.queries[1], "category")
}

func TestExtractDigest_LongHashtagsKept(t *testing.T) {
	tag := "#" + strings.Repeat("h", 120)
	d := ExtractDigest("Use " + tag + " and #short\nCompetitors: " + strings.Repeat("c", 100) + ", Yeti")

	assert.Equal(t, []string{tag, "#short"}, d.RelevantHashtags)
	assert.Equal(t, []string{"Yeti"}, d.CompetitorMentions)
}
