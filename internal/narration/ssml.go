package narration

import (
	"encoding/xml"
	"strings"
)

// Style controls how segment kinds map to SSML.
type Style struct {
	Emphasis         string // emphasis level for announcements
	BreakStrength    string // strength of one pause marker
	BackgroundVolume string // prosody volume for background lines
	Lang             string // xml:lang of the document, omitted when empty
}

// DefaultStyle matches a moderate emphasis, medium breaks and soft background.
var DefaultStyle = Style{
	Emphasis:         "moderate",
	BreakStrength:    "medium",
	BackgroundVolume: "soft",
}

// RenderSSML renders the plan as an SSML 1.0 document.
func RenderSSML(p *Plan, style Style) string {
	if style.Emphasis == "" {
		style.Emphasis = DefaultStyle.Emphasis
	}
	if style.BreakStrength == "" {
		style.BreakStrength = DefaultStyle.BreakStrength
	}
	if style.BackgroundVolume == "" {
		style.BackgroundVolume = DefaultStyle.BackgroundVolume
	}

	var b strings.Builder
	b.WriteString(`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis"`)
	if style.Lang != "" {
		b.WriteString(` xml:lang="`)
		b.WriteString(escape(style.Lang))
		b.WriteString(`"`)
	}
	b.WriteString(">\n")

	pause := `<break strength="` + escape(style.BreakStrength) + `"/>`

	for _, seg := range p.Segments {
		switch seg.Kind {
		case Announcement:
			b.WriteString(`<emphasis level="` + escape(style.Emphasis) + `">`)
			b.WriteString(strings.Repeat(pause, seg.PausesBefore()))
			b.WriteString(escape(seg.Text))
			b.WriteString(strings.Repeat(pause, seg.PausesAfter()))
			b.WriteString("</emphasis>")
		case ActiveLine:
			b.WriteString(strings.Repeat(pause, seg.PausesBefore()))
			b.WriteString(escape(seg.Text))
		case BackgroundLine:
			b.WriteString(`<prosody volume="` + escape(style.BackgroundVolume) + `">`)
			b.WriteString(escape(seg.Text))
			b.WriteString("</prosody>")
		}
		b.WriteString("\n")
	}

	b.WriteString("</speak>\n")
	return b.String()
}

func escape(s string) string {
	var b strings.Builder
	// strings.Builder never fails to write
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
