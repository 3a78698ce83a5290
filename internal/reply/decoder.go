// Package reply decodes the inline directive tags the tutor persona embeds in
// otherwise free-form model output.
package reply

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cosmusapp/cosmus-go/internal/models"
)

// Directive grammars. Each tag appears at most once per reply; the first
// occurrence wins. A tag that is present but does not match its grammar
// (unbalanced quotes, wrong arity) is treated as absent and left in the text.
var (
	imageRe       = regexp.MustCompile(`\[IMAGEM\]:\s*\["([^"]*)"\]`)
	sourceRe      = regexp.MustCompile(`\[FONTE\]:\s*\["([^"]*)"\]`)
	suggestionsRe = regexp.MustCompile(`\[SUGESTÕES\]:\s*\[(.*?)\]`)
	missionRe     = regexp.MustCompile(`\[MISSÃO CONCLUÍDA\]:\s*\["([^"]*)"\]`)
	challengeRe   = regexp.MustCompile(`\[DESAFIO DO DIA\]:\s*\["([^"]*)",\s*"([^"]*)"\]`)

	quotedItemRe = regexp.MustCompile(`"([^"]*)"`)
)

// span marks a matched directive region in the original text.
type span struct {
	start, end int
}

// Decode extracts the structured reply from one raw model reply. It never
// fails: missing or malformed directives simply leave the corresponding field
// unset. All five grammars are matched against the original immutable text
// first and the matched spans are stripped in a single pass, so no match can
// corrupt the offsets of another.
func Decode(raw string) models.StructuredReply {
	var out models.StructuredReply
	var spans []span

	if loc := imageRe.FindStringSubmatchIndex(raw); loc != nil {
		out.ImageQuery = raw[loc[2]:loc[3]]
		spans = append(spans, span{loc[0], loc[1]})
	}

	if loc := sourceRe.FindStringSubmatchIndex(raw); loc != nil {
		out.Source = raw[loc[2]:loc[3]]
		spans = append(spans, span{loc[0], loc[1]})
	}

	if loc := suggestionsRe.FindStringSubmatchIndex(raw); loc != nil {
		inner := raw[loc[2]:loc[3]]
		for _, m := range quotedItemRe.FindAllStringSubmatch(inner, -1) {
			out.Suggestions = append(out.Suggestions, m[1])
		}
		spans = append(spans, span{loc[0], loc[1]})
	}

	if loc := missionRe.FindStringSubmatchIndex(raw); loc != nil {
		out.MissionCompleted = raw[loc[2]:loc[3]]
		spans = append(spans, span{loc[0], loc[1]})
	}

	if loc := challengeRe.FindStringSubmatchIndex(raw); loc != nil {
		out.Challenge = &models.Challenge{
			Name:        raw[loc[2]:loc[3]],
			Description: raw[loc[4]:loc[5]],
		}
		spans = append(spans, span{loc[0], loc[1]})
	}

	out.DisplayText = strings.TrimSpace(strip(raw, spans))
	return out
}

// strip removes the matched spans from text in one pass. Overlapping spans are
// merged so the removal is well defined regardless of match order.
func strip(text string, spans []span) string {
	if len(spans) == 0 {
		return text
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, s := range spans {
		if s.start < pos {
			// Overlaps the previous span; extend the removal.
			if s.end > pos {
				pos = s.end
			}
			continue
		}
		b.WriteString(text[pos:s.start])
		pos = s.end
	}
	b.WriteString(text[pos:])
	return b.String()
}
