package generator

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	errNotJSONObject = errors.New("model output is not a JSON object")
	errNoPostsArray  = errors.New(`model output has no "posts" array`)
)

// ParsePosts extracts the posts from a model response of the form
// {"posts": [{"platform": ..., "content": ...}]}. Broken JSON or a missing
// posts array is a malformed-output error; individual items that are not
// usable are dropped.
func ParsePosts(raw string) ([]GeneratedPost, error) {
	raw = strings.TrimSpace(raw)
	if !gjson.Valid(raw) {
		return nil, newGenerationError(KindMalformedOutput, errNotJSONObject)
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return nil, newGenerationError(KindMalformedOutput, errNotJSONObject)
	}
	items := doc.Get("posts")
	if !items.IsArray() {
		return nil, newGenerationError(KindMalformedOutput, errNoPostsArray)
	}

	posts := []GeneratedPost{}
	for i, item := range items.Array() {
		post, ok := parsePost(item)
		if !ok {
			slog.Debug("dropping invalid post from model output", "index", i)
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func parsePost(item gjson.Result) (GeneratedPost, bool) {
	if !item.IsObject() {
		return GeneratedPost{}, false
	}
	platform := item.Get("platform")
	content := item.Get("content")
	if platform.Type != gjson.String || content.Type != gjson.String {
		return GeneratedPost{}, false
	}
	p := Platform(platform.Str)
	text := strings.TrimSpace(content.Str)
	if !p.Valid() || text == "" {
		return GeneratedPost{}, false
	}
	return GeneratedPost{Platform: p, Content: text}, true
}

// filterRequested keeps the first post for each requested platform and returns
// the requested platforms that got no post.
func filterRequested(posts []GeneratedPost, requested []Platform) ([]GeneratedPost, []Platform) {
	want := make(map[Platform]bool, len(requested))
	for _, p := range requested {
		want[p] = true
	}

	kept := []GeneratedPost{}
	got := make(map[Platform]bool, len(requested))
	for _, post := range posts {
		if !want[post.Platform] || got[post.Platform] {
			continue
		}
		kept = append(kept, post)
		got[post.Platform] = true
	}

	var missing []Platform
	for _, p := range requested {
		if !got[p] {
			missing = append(missing, p)
		}
	}
	return kept, missing
}
