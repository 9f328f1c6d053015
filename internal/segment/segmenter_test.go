package segment

import (
	"strings"
	"testing"
)

const digestFixture = `Automotive

1. Supplier Group buys drivetrain maker
The supplier group agreed to buy the drivetrain maker to expand its components arm.
* Family owners exit completely
Source: Trade press

2. EV startup seeks new backers

The startup is holding talks with several funds about a capital increase.

Computer software

3. ERP vendor merges with rival
* All-share merger
* Combined revenue above EUR 1bn
Grade: Strong evidence
`

func TestSegmentBlocks(t *testing.T) {
	blocks := NewSegmenter().Segment(digestFixture)

	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}

	first := blocks[0]
	if first.ID != "1" || first.Title != "Supplier Group buys drivetrain maker" {
		t.Errorf("unexpected first block: %q %q", first.ID, first.Title)
	}
	if first.Section != "Automotive" {
		t.Errorf("Section = %q, want Automotive", first.Section)
	}
	if len(first.Bullets) != 1 || first.Bullets[0] != "Family owners exit completely" {
		t.Errorf("Bullets = %v", first.Bullets)
	}
	if first.Metadata["source"] != "Trade press" {
		t.Errorf("Metadata = %v", first.Metadata)
	}
	if !strings.Contains(first.Body, "agreed to buy") {
		t.Errorf("Body = %q", first.Body)
	}
}

func TestSegmentBlankLinesDoNotCloseDeals(t *testing.T) {
	blocks := NewSegmenter().Segment(digestFixture)

	// Deal 2's prose arrives after a blank line and must still attach.
	second := blocks[1]
	if second.ID != "2" {
		t.Fatalf("expected block 2, got %s", second.ID)
	}
	if !strings.Contains(second.Body, "capital increase") {
		t.Errorf("blank line detached the prose: body = %q", second.Body)
	}
}

func TestSegmentSectionCarriesForward(t *testing.T) {
	blocks := NewSegmenter().Segment(digestFixture)

	if blocks[1].Section != "Automotive" {
		t.Errorf("block 2 section = %q, want Automotive", blocks[1].Section)
	}
	if blocks[2].Section != "Computer software" {
		t.Errorf("block 3 section = %q, want Computer software", blocks[2].Section)
	}
}

func TestSegmentShortProseKeptInOriginalOnly(t *testing.T) {
	text := "1. Deal headline\nShort note.\nThis sentence is long enough to be kept as substantive body text.\n"
	blocks := NewSegmenter().Segment(text)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if strings.Contains(blocks[0].Body, "Short note") {
		t.Error("short prose leaked into body")
	}
	if !strings.Contains(blocks[0].OriginalText, "Short note") {
		t.Error("short prose missing from original text")
	}
	if !strings.Contains(blocks[0].Body, "substantive body text") {
		t.Errorf("body = %q", blocks[0].Body)
	}
}

func TestSegmentOrphanLinesIgnored(t *testing.T) {
	text := "Some prose before any deal starts in this document at all.\n* stray bullet\n1. First real deal\n"
	blocks := NewSegmenter().Segment(text)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if len(blocks[0].Bullets) != 0 {
		t.Errorf("stray bullet attached: %v", blocks[0].Bullets)
	}
}

func TestSegmentDuplicateMetadataLastWins(t *testing.T) {
	text := "1. Deal headline\nSource: First wire\nSource: Second wire\n"
	blocks := NewSegmenter().Segment(text)

	if got := blocks[0].Metadata["source"]; got != "Second wire" {
		t.Errorf("source = %q, want the later value", got)
	}
}

func TestCountDealStartsMatchesSegment(t *testing.T) {
	if n := CountDealStarts(digestFixture); n != 3 {
		t.Errorf("CountDealStarts = %d, want 3", n)
	}
	blocks := NewSegmenter().Segment(digestFixture)
	if len(blocks) != CountDealStarts(digestFixture) {
		t.Errorf("block count %d != deal-start count %d", len(blocks), CountDealStarts(digestFixture))
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	if blocks := NewSegmenter().Segment(""); len(blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(blocks))
	}
}
