package segment

import (
	"strings"

	"github.com/avolkov/dealbrief/internal/model"
)

// minBodyLine is the length below which in-deal prose is treated as noise:
// kept in the original text, left out of the body.
const minBodyLine = 30

// Segmenter groups classified lines into deal blocks. Deal boundaries are
// the next numbered item or section header; blank lines never close a deal,
// which tolerates digests that separate a deal's prose from its bullet list.
type Segmenter struct{}

// NewSegmenter creates a segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment splits raw digest text into deal blocks, in document order.
func (s *Segmenter) Segment(text string) []model.DealBlock {
	var (
		blocks  []model.DealBlock
		current *model.DealBlock
		section string
		body    strings.Builder
		orig    strings.Builder
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(body.String())
		current.OriginalText = strings.TrimSpace(orig.String())
		blocks = append(blocks, *current)
		current = nil
		body.Reset()
		orig.Reset()
	}

	appendOrig := func(line string) {
		if orig.Len() > 0 {
			orig.WriteByte('\n')
		}
		orig.WriteString(line)
	}

	for _, raw := range strings.Split(text, "\n") {
		line := ClassifyLine(raw)

		switch line.Kind {
		case KindBlank:
			// skipped without altering state

		case KindSectionHeader:
			// A header always terminates the deal that precedes it.
			flush()
			section = line.Raw

		case KindDealStart:
			flush()
			current = &model.DealBlock{
				ID:       line.DealID,
				Title:    line.Title,
				Section:  section,
				Metadata: make(map[string]string),
			}

		case KindBullet:
			if current != nil {
				current.Bullets = append(current.Bullets, line.Text)
				appendOrig(line.Raw)
			}

		case KindMetadata:
			if current != nil {
				current.Metadata[line.Key] = line.Value // later duplicates overwrite
				appendOrig(line.Raw)
			}

		case KindProse:
			if current != nil {
				if len(line.Raw) > minBodyLine {
					if body.Len() > 0 {
						body.WriteByte('\n')
					}
					body.WriteString(line.Raw)
				}
				appendOrig(line.Raw)
			}
		}
	}
	flush()

	return blocks
}

// CountDealStarts returns how many deal-start lines the classifier detects.
// The number of produced records must always equal this count.
func CountDealStarts(text string) int {
	n := 0
	for _, raw := range strings.Split(text, "\n") {
		if ClassifyLine(raw).Kind == KindDealStart {
			n++
		}
	}
	return n
}
