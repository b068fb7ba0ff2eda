package generator

import (
	"fmt"
	"strings"
)

const promptInsightsLimit = 300

// BuildPrompt assembles the generation instruction for product. digest may be
// nil; it is only used when it carries topics or hashtags.
func BuildPrompt(product Product, tone Tone, platforms []Platform, digest *Digest) string {
	withResearch := digest != nil && digest.HasSignal()

	var sb strings.Builder
	sb.WriteString("You are an expert social media copywriter who writes high-converting marketing posts for small businesses.\n\n")

	sb.WriteString("PRODUCT INFORMATION:\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n", product.Name))
	sb.WriteString(fmt.Sprintf("- Description: %s\n", product.Description))
	sb.WriteString(fmt.Sprintf("- Price: $%.2f\n", product.Price))
	if product.Category != "" {
		sb.WriteString(fmt.Sprintf("- Category: %s\n", product.Category))
	}
	sb.WriteString("\n")

	sb.WriteString("TONE:\n")
	sb.WriteString(tone.Directive())
	sb.WriteString("\n\n")

	sb.WriteString("PLATFORMS:\n")
	for _, p := range platforms {
		sb.WriteString(fmt.Sprintf("- %s: max %d characters. %s\n", p, p.MaxLength(), p.Directive()))
	}
	sb.WriteString("\n")

	if withResearch {
		sb.WriteString("CURRENT MARKET RESEARCH:\n")
		if len(digest.TrendingTopics) > 0 {
			sb.WriteString(fmt.Sprintf("- Trending topics: %s\n", strings.Join(digest.TrendingTopics, ", ")))
		}
		if len(digest.RelevantHashtags) > 0 {
			sb.WriteString(fmt.Sprintf("- Relevant hashtags: %s\n", strings.Join(digest.RelevantHashtags, " ")))
		}
		if digest.MarketInsights != "" {
			sb.WriteString(fmt.Sprintf("- Market insights: %s\n", truncateRunes(digest.MarketInsights, promptInsightsLimit)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("GUIDELINES:\n")
	sb.WriteString("- Make each post unique and tailored to its platform\n")
	sb.WriteString("- Use emojis where they fit the platform and tone\n")
	sb.WriteString("- Make the posts engaging and shareable\n")
	sb.WriteString("- Highlight the key benefits of the product\n")
	sb.WriteString("- Include a clear call-to-action\n")
	sb.WriteString("- Respect each platform's character limit\n")
	if withResearch {
		sb.WriteString("- Naturally weave in the trending topics and hashtags from the market research\n")
	}
	sb.WriteString("\n")

	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	sb.WriteString(fmt.Sprintf("Generate exactly %d post(s), one per platform, in this exact order: %s.\n\n",
		len(platforms), strings.Join(names, ", ")))

	sb.WriteString("OUTPUT FORMAT:\n")
	sb.WriteString(`Respond with a single JSON object with exactly one key, "posts", whose value is an array of objects.`)
	sb.WriteString("\n")
	sb.WriteString(`Each object must have a "platform" property (one of the platform names above, lowercase) and a "content" property (the post text).`)
	sb.WriteString("\n")
	sb.WriteString("Do not include any text outside the JSON object.\n")

	return sb.String()
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
