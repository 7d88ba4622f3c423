package narration

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAttributesLinesToMostRecentMarker(t *testing.T) {
	input := `#Alice#
Hello there.
#Bob#
Hi Alice.`

	plan, err := Build(strings.NewReader(input), "alice")
	require.NoError(t, err)

	want := []Segment{
		{Kind: Announcement, Character: "alice", Text: "alice", LineNo: 1},
		{Kind: ActiveLine, Character: "alice", Text: "hello there.", LineNo: 2},
		{Kind: Announcement, Character: "bob", Text: "bob", LineNo: 3},
		{Kind: BackgroundLine, Character: "bob", Text: "hi alice.", LineNo: 4},
	}
	assert.Equal(t, want, plan.Segments)
	assert.Equal(t, "alice", plan.Target)
}

func TestBuildOneSegmentPerNonBlankLine(t *testing.T) {
	input := "\n#ALICE\n\n   \nfirst line\n\tsecond line  \n\n#bob\nthird\n"

	plan, err := Build(strings.NewReader(input), "alice")
	require.NoError(t, err)
	require.Len(t, plan.Segments, 5)

	texts := make([]string, 0, len(plan.Segments))
	for _, s := range plan.Segments {
		texts = append(texts, s.Text)
	}
	assert.Equal(t, []string{"alice", "first line", "second line", "bob", "third"}, texts)
	assert.Equal(t, []int{2, 5, 6, 8, 9}, []int{
		plan.Segments[0].LineNo, plan.Segments[1].LineNo, plan.Segments[2].LineNo,
		plan.Segments[3].LineNo, plan.Segments[4].LineNo,
	})
}

func TestBuildTargetIsCaseInsensitive(t *testing.T) {
	plan, err := Build(strings.NewReader("#alice\nline"), "ALICE")
	require.NoError(t, err)
	require.Len(t, plan.Segments, 2)
	assert.Equal(t, ActiveLine, plan.Segments[1].Kind)

	plan, err = Build(strings.NewReader("#ALICE\nline"), "Alice")
	require.NoError(t, err)
	assert.Equal(t, ActiveLine, plan.Segments[1].Kind)
}

func TestBuildComparesNameWithoutTrimming(t *testing.T) {
	plan, err := Build(strings.NewReader("# Alice\nHello.\n"), "alice")
	require.NoError(t, err)
	require.Len(t, plan.Segments, 2)
	assert.Equal(t, " alice", plan.Segments[0].Character)
	assert.Equal(t, BackgroundLine, plan.Segments[1].Kind)

	// surrounding spaces of the target are kept as well
	plan, err = Build(strings.NewReader("#alice\nHello.\n"), " alice")
	require.NoError(t, err)
	assert.Equal(t, " alice", plan.Target)
	assert.Equal(t, BackgroundLine, plan.Segments[1].Kind)

	// trailing spaces after the name are trimmed with the line
	plan, err = Build(strings.NewReader("#alice  \nHello.\n"), "alice")
	require.NoError(t, err)
	assert.Equal(t, ActiveLine, plan.Segments[1].Kind)
}

func TestBuildDialogueBeforeAnyMarkerIsBackground(t *testing.T) {
	plan, err := Build(strings.NewReader("cold open\n#alice\nhi"), "alice")
	require.NoError(t, err)
	require.Len(t, plan.Segments, 3)

	assert.Equal(t, BackgroundLine, plan.Segments[0].Kind)
	assert.Equal(t, "", plan.Segments[0].Character)
	assert.Equal(t, ActiveLine, plan.Segments[2].Kind)
}

func TestBuildActiveStatusChangesOnlyAtMarkers(t *testing.T) {
	input := `#bob
one
#alice
two
three
#carol
four`
	plan, err := Build(strings.NewReader(input), "alice")
	require.NoError(t, err)

	var kinds []SegmentKind
	for _, s := range plan.Segments {
		if s.Kind != Announcement {
			kinds = append(kinds, s.Kind)
		}
	}
	assert.Equal(t, []SegmentKind{BackgroundLine, ActiveLine, ActiveLine, BackgroundLine}, kinds)
}

func TestBuildMarkerOfOnlyDesignatorsYieldsEmptyName(t *testing.T) {
	plan, err := Build(strings.NewReader("#alice\nhi\n###\nwho speaks"), "alice")
	require.NoError(t, err)
	require.Len(t, plan.Segments, 4)

	assert.Equal(t, Announcement, plan.Segments[2].Kind)
	assert.Equal(t, "", plan.Segments[2].Text)
	assert.Equal(t, BackgroundLine, plan.Segments[3].Kind)
}

func TestBuildStripsEveryDesignator(t *testing.T) {
	plan, err := Build(strings.NewReader("#Mary#Jane#\nhi"), "maryjane")
	require.NoError(t, err)
	require.Len(t, plan.Segments, 2)
	assert.Equal(t, "maryjane", plan.Segments[0].Character)
	assert.Equal(t, ActiveLine, plan.Segments[1].Kind)

	plan, err = Build(strings.NewReader("# Mary#Jane #"), "maryjane")
	require.NoError(t, err)
	assert.Equal(t, " maryjane ", plan.Segments[0].Character)
}

func TestBuildSkipsUTF8BOM(t *testing.T) {
	plan, err := Build(strings.NewReader("\ufeff#Alice\nHello there.\n"), "alice")
	require.NoError(t, err)

	want := []Segment{
		{Kind: Announcement, Character: "alice", Text: "alice", LineNo: 1},
		{Kind: ActiveLine, Character: "alice", Text: "hello there.", LineNo: 2},
	}
	assert.Equal(t, want, plan.Segments)
}

func TestBuildAcceptsVeryLongLines(t *testing.T) {
	long := strings.Repeat("la ", 700*1024) // about 2 MiB
	plan, err := Build(strings.NewReader("#alice\n"+long+"\n#bob\nbye"), "alice")
	require.NoError(t, err)
	require.Len(t, plan.Segments, 4)

	assert.Equal(t, ActiveLine, plan.Segments[1].Kind)
	assert.Equal(t, strings.TrimSpace(long), plan.Segments[1].Text)
	assert.Equal(t, 4, plan.Segments[3].LineNo)
}

func TestBuildSplitsOnEveryLineEnding(t *testing.T) {
	input := "#alice\rone\r\ntwo\n\r#bob\rthree"
	plan, err := Build(strings.NewReader(input), "alice")
	require.NoError(t, err)

	want := []Segment{
		{Kind: Announcement, Character: "alice", Text: "alice", LineNo: 1},
		{Kind: ActiveLine, Character: "alice", Text: "one", LineNo: 2},
		{Kind: ActiveLine, Character: "alice", Text: "two", LineNo: 3},
		{Kind: Announcement, Character: "bob", Text: "bob", LineNo: 5},
		{Kind: BackgroundLine, Character: "bob", Text: "three", LineNo: 6},
	}
	assert.Equal(t, want, plan.Segments)
}

func TestBuildIsIdempotent(t *testing.T) {
	input := "#alice\nhello\n#bob\nbye\n"

	first, err := Build(strings.NewReader(input), "alice")
	require.NoError(t, err)
	second, err := Build(strings.NewReader(input), "alice")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestBuildReturnsReadErrors(t *testing.T) {
	_, err := Build(failingReader{}, "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestBuildFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.txt")
	require.NoError(t, os.WriteFile(path, []byte("#Alice\nHi\n"), 0o644))

	plan, err := BuildFile(path, "alice")
	require.NoError(t, err)
	assert.Len(t, plan.Segments, 2)

	_, err = BuildFile(filepath.Join(t.TempDir(), "missing.txt"), "alice")
	assert.Error(t, err)
}

func TestPlanStats(t *testing.T) {
	plan, err := Build(strings.NewReader("#a\n1\n#b\n2\n3\n#a\n4"), "a")
	require.NoError(t, err)

	st := plan.Stats()
	assert.Equal(t, Stats{Announcements: 3, ActiveLines: 2, BackgroundLines: 2, Characters: 2}, st)
	assert.Equal(t, "2 characters, 3 announcements, 2 active lines, 2 background lines", st.String())
}

func TestSegmentPauses(t *testing.T) {
	assert.Equal(t, 1, Segment{Kind: Announcement}.PausesBefore())
	assert.Equal(t, 1, Segment{Kind: Announcement}.PausesAfter())
	assert.Equal(t, 2, Segment{Kind: ActiveLine}.PausesBefore())
	assert.Equal(t, 0, Segment{Kind: ActiveLine}.PausesAfter())
	assert.Equal(t, 0, Segment{Kind: BackgroundLine}.PausesBefore())
	assert.Equal(t, 0, Segment{Kind: BackgroundLine}.PausesAfter())
	assert.Equal(t, "background", BackgroundLine.String())
}
