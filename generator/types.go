package generator

import "time"

// Product is the caller's product description after validation.
type Product struct {
	Name        string
	Description string
	Price       float64
	Category    string
}

// Tone selects the writing style of every generated post.
type Tone string

const (
	ToneProfessional  Tone = "professional"
	ToneCasual        Tone = "casual"
	ToneHumorous      Tone = "humorous"
	ToneInspirational Tone = "inspirational"
	ToneUrgent        Tone = "urgent"
)

// AllTones lists the supported tones in display order.
var AllTones = []Tone{
	ToneProfessional,
	ToneCasual,
	ToneHumorous,
	ToneInspirational,
	ToneUrgent,
}

var toneDirectives = map[Tone]string{
	ToneProfessional:  "Use a professional, polished and trustworthy tone. Focus on quality, value and credibility.",
	ToneCasual:        "Use a casual, friendly and conversational tone, like talking to a friend.",
	ToneHumorous:      "Use a light-hearted, witty and humorous tone. Playful jokes are welcome but keep it tasteful.",
	ToneInspirational: "Use an inspirational, uplifting and motivating tone that connects the product to the reader's aspirations.",
	ToneUrgent:        "Use an urgent, action-driven tone that creates a sense of FOMO and encourages buying now.",
}

// Directive returns the style instruction used verbatim in prompts.
func (t Tone) Directive() string {
	return toneDirectives[t]
}

// Valid reports whether t is one of AllTones.
func (t Tone) Valid() bool {
	_, ok := toneDirectives[t]
	return ok
}

// Platform is a target social network.
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
)

// AllPlatforms is the default selection when the caller names none.
var AllPlatforms = []Platform{
	PlatformTwitter,
	PlatformInstagram,
	PlatformLinkedIn,
}

type platformSpec struct {
	maxLength int
	directive string
}

var platformSpecs = map[Platform]platformSpec{
	PlatformTwitter: {
		maxLength: 280,
		directive: "Short and punchy. Lead with a hook, use 1-2 relevant hashtags and at most a couple of emojis.",
	},
	PlatformInstagram: {
		maxLength: 2200,
		directive: "Visual, story-driven caption. Use line breaks and emojis generously, end with a block of 5-10 hashtags.",
	},
	PlatformLinkedIn: {
		maxLength: 3000,
		directive: "Professional and insight-led. Speak to business value, use short paragraphs and few emojis, 3-5 hashtags at most.",
	},
}

// MaxLength is the longest content the platform accepts, in characters.
func (p Platform) MaxLength() int {
	return platformSpecs[p].maxLength
}

// Directive returns the platform's style instruction.
func (p Platform) Directive() string {
	return platformSpecs[p].directive
}

// Valid reports whether p is one of AllPlatforms.
func (p Platform) Valid() bool {
	_, ok := platformSpecs[p]
	return ok
}

// Digest is the bounded summary mined from web research text.
type Digest struct {
	TrendingTopics     []string `json:"trendingTopics"`
	RelevantHashtags   []string `json:"relevantHashtags"`
	MarketInsights     string   `json:"marketInsights"`
	CompetitorMentions []string `json:"competitorMentions"`
}

// EmptyDigest is the result of skipped or failed research.
func EmptyDigest() Digest {
	return Digest{
		TrendingTopics:     []string{},
		RelevantHashtags:   []string{},
		CompetitorMentions: []string{},
	}
}

// HasSignal reports whether the digest carries anything worth adding to a prompt.
func (d Digest) HasSignal() bool {
	return len(d.TrendingTopics) > 0 || len(d.RelevantHashtags) > 0
}

// GeneratedPost is one draft for one platform.
type GeneratedPost struct {
	Platform Platform `json:"platform"`
	Content  string   `json:"content"`
}

// Envelope is the successful result of one generation request.
type Envelope struct {
	Posts           []GeneratedPost `json:"posts"`
	GeneratedAt     time.Time       `json:"generated_at"`
	Count           int             `json:"count"`
	Tone            Tone            `json:"tone"`
	Platforms       []Platform      `json:"platforms"`
	WebResearchUsed bool            `json:"webResearchUsed"`
	WebResearch     *Digest         `json:"webResearch"`
}
