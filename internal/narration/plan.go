// Package narration turns a character script into an ordered narration plan.
//
// Script format:
//   - Lines starting with "#" introduce a character. Every "#" is removed
//     and the remainder, spaces included, is the character name.
//   - Any other non-blank line is dialogue spoken by the most recently
//     introduced character.
//   - Blank lines are ignored.
//
// Lines end at "\n", "\r" or "\r\n" and have no length limit. A leading
// UTF-8 byte order mark is skipped. Each line is trimmed and lower-cased.
// Dialogue of the target character is narrated at full prominence with extra
// pacing; everything else is rendered in the background.
package narration

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Designator marks a line as a character announcement.
const Designator = "#"

// SegmentKind is the closed set of styles a segment can carry.
type SegmentKind int

const (
	// Announcement introduces a character: emphasised, pause before and after.
	Announcement SegmentKind = iota
	// ActiveLine is dialogue of the target character: two pauses before, default prominence.
	ActiveLine
	// BackgroundLine is dialogue of any other character: reduced prominence, no pauses.
	BackgroundLine
)

func (k SegmentKind) String() string {
	switch k {
	case Announcement:
		return "announcement"
	case ActiveLine:
		return "active"
	case BackgroundLine:
		return "background"
	default:
		return "unknown"
	}
}

// Segment is one styled unit of the plan, derived from exactly one input line.
type Segment struct {
	Kind      SegmentKind
	Character string // announced character, or speaker of a dialogue line ("" before any marker)
	Text      string // spoken text
	LineNo    int    // 1-based line number in the source
}

// PausesBefore returns how many pause markers precede the segment text.
func (s Segment) PausesBefore() int {
	switch s.Kind {
	case Announcement:
		return 1
	case ActiveLine:
		return 2
	default:
		return 0
	}
}

// PausesAfter returns how many pause markers follow the segment text.
func (s Segment) PausesAfter() int {
	if s.Kind == Announcement {
		return 1
	}
	return 0
}

// Plan is the ordered, immutable input to speech synthesis.
type Plan struct {
	Target   string
	Segments []Segment
}

// Stats summarises a plan.
type Stats struct {
	Announcements   int
	ActiveLines     int
	BackgroundLines int
	Characters      int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d characters, %d announcements, %d active lines, %d background lines",
		s.Characters, s.Announcements, s.ActiveLines, s.BackgroundLines)
}

// Stats counts segments per kind and distinct announced characters.
func (p *Plan) Stats() Stats {
	var st Stats
	seen := map[string]struct{}{}
	for _, seg := range p.Segments {
		switch seg.Kind {
		case Announcement:
			st.Announcements++
			seen[seg.Character] = struct{}{}
		case ActiveLine:
			st.ActiveLines++
		case BackgroundLine:
			st.BackgroundLines++
		}
	}
	st.Characters = len(seen)
	return st
}

// Build reads a script from r and returns its narration plan for target.
// target is lower-cased but otherwise compared as given. The only error
// returned is a read error from r.
func Build(r io.Reader, target string) (*Plan, error) {
	target = strings.ToLower(target)
	plan := &Plan{Target: target, Segments: []Segment{}}

	br := bufio.NewReader(r)
	skipBOM(br)

	lineNo := 0
	character := ""
	kind := BackgroundLine

	for {
		raw, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		lineNo++

		line := normalize(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, Designator) {
			character = strings.ReplaceAll(line, Designator, "")
			plan.Segments = append(plan.Segments, Segment{
				Kind:      Announcement,
				Character: character,
				Text:      character,
				LineNo:    lineNo,
			})
			kind = BackgroundLine
			if character == target {
				kind = ActiveLine
			}
			continue
		}

		plan.Segments = append(plan.Segments, Segment{
			Kind:      kind,
			Character: character,
			Text:      line,
			LineNo:    lineNo,
		})
	}

	return plan, nil
}

// BuildFile opens path and builds its narration plan.
func BuildFile(path, target string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	return Build(f, target)
}

const utf8BOM = "\ufeff"

func skipBOM(br *bufio.Reader) {
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		br.Discard(len(utf8BOM))
	}
}

// readLine returns the next line without its terminator. io.EOF is only
// returned once no bytes are left.
func readLine(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err == io.EOF && sb.Len() > 0 {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}

		switch b {
		case '\n':
			return sb.String(), nil
		case '\r':
			if next, err := br.Peek(1); err == nil && next[0] == '\n' {
				br.Discard(1)
			}
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
