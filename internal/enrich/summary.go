package enrich

import (
	"sort"
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"
)

// DefaultMaxSentences is the summary length used when none is specified.
const DefaultMaxSentences = 3

// truncationLimit bounds the fallback summary when segmentation yields nothing.
const truncationLimit = 500

// Summarize produces a bounded extractive summary of text. Sentences are
// scored by position (earlier is better) with a bonus for medium length,
// and the selected subset is re-ordered by original position so the summary
// reads in narrative order.
func Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}

	var sents []string
	tokens := sentences.FromString(text)
	for tokens.Next() {
		if s := strings.TrimSpace(tokens.Value()); s != "" {
			sents = append(sents, s)
		}
	}
	if len(sents) == 0 {
		return truncate(text, truncationLimit)
	}
	if len(sents) <= maxSentences {
		return text
	}

	type scoredSentence struct {
		pos   int
		score float64
	}
	scored := make([]scoredSentence, len(sents))
	for i, s := range sents {
		score := 1.0 / float64(i+1)
		if words := len(strings.Fields(s)); words >= 10 && words <= 30 {
			score += 0.5
		}
		scored[i] = scoredSentence{pos: i, score: score}
	}

	// Stable sort keeps earlier sentences ahead on score ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	top := scored[:maxSentences]
	sort.Slice(top, func(i, j int) bool { return top[i].pos < top[j].pos })

	picked := make([]string, len(top))
	for i, s := range top {
		picked[i] = sents[s.pos]
	}
	return strings.Join(picked, " ")
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
