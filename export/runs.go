package export

import (
	"strings"

	"github.com/beevik/etree"

	"gdex/css"
	"gdex/gdocs"
)

// runFace is the comparable projection of an effective text style. Adjacent
// runs with equal faces merge into one wrapper element.
type runFace struct {
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Baseline  string
	SizePt    float64
	Family    string
	Color     string
	Background string
	Href      string
}

func faceOf(eff *gdocs.TextStyle) runFace {
	var f runFace
	if eff == nil {
		return f
	}
	f.Bold = gdocs.Flag(eff.Bold)
	f.Italic = gdocs.Flag(eff.Italic)
	f.Underline = gdocs.Flag(eff.Underline)
	f.Strike = gdocs.Flag(eff.Strikethrough)
	switch eff.BaselineOffset {
	case gdocs.BaselineSuperscript, gdocs.BaselineSubscript:
		f.Baseline = eff.BaselineOffset
	}
	if eff.FontSize != nil {
		f.SizePt = eff.FontSize.Points()
	}
	if eff.WeightedFontFamily != nil {
		f.Family = eff.WeightedFontFamily.FontFamily
	}
	if r, g, b, ok := gdocs.RGB(eff.ForegroundColor); ok {
		f.Color = css.HexRGB(r, g, b)
	}
	if r, g, b, ok := gdocs.RGB(eff.BackgroundColor); ok {
		f.Background = css.HexRGB(r, g, b)
	}
	if eff.Link != nil {
		if eff.Link.HeadingID != "" {
			f.Href = "#" + headingAnchor(eff.Link.HeadingID)
		} else if eff.Link.URL != "" {
			f.Href = eff.Link.URL
		}
	}
	return f
}

func (f runFace) classes() string {
	var cls []string
	if f.Bold {
		cls = append(cls, "bold")
	}
	if f.Italic {
		cls = append(cls, "italic")
	}
	if f.Underline {
		cls = append(cls, "underline")
	}
	if f.Strike {
		cls = append(cls, "strikethrough")
	}
	switch f.Baseline {
	case gdocs.BaselineSuperscript:
		cls = append(cls, "superscript")
	case gdocs.BaselineSubscript:
		cls = append(cls, "subscript")
	}
	return strings.Join(cls, " ")
}

func (f runFace) style() string {
	var st css.Inline
	if f.SizePt > 0 {
		st.Add("font-size", css.Pt(f.SizePt))
	}
	if f.Family != "" {
		st.Add("font-family", "'"+f.Family+"', sans-serif")
	}
	st.Add("color", f.Color)
	st.Add("background-color", f.Background)
	return st.String()
}

// appendRun emits one merged run. Linked text becomes an anchor, everything
// else a span. The wrapper is written even for empty text so the output keeps
// one element per source run group.
func (r *Renderer) appendRun(parent *etree.Element, f runFace, text string) {
	tag := "span"
	if f.Href != "" {
		tag = "a"
	}
	el := parent.CreateElement(tag)
	if f.Href != "" {
		el.CreateAttr("href", f.Href)
	}
	if cls := f.classes(); cls != "" {
		el.CreateAttr("class", cls)
	}
	if st := f.style(); st != "" {
		el.CreateAttr("style", st)
	}
	el.SetText(text)
	if f.Family != "" {
		r.fonts[f.Family] = struct{}{}
	}
}

// Footnote bodies are not part of the exported page, the reference keeps its
// number so the call site stays visible.
func appendFootnoteRef(parent *etree.Element, ref *gdocs.FootnoteReference) {
	n := ref.FootnoteNumber
	if n == "" {
		n = "*"
	}
	sup := parent.CreateElement("sup")
	sup.CreateAttr("class", "footnote-ref")
	sup.SetText("[" + n + "]")
}

// appendAutoText renders page number and count placeholders. They stay empty
// on screen, the print rules in the page stylesheet fill them with counters.
func appendAutoText(parent *etree.Element, at *gdocs.AutoText) {
	span := parent.CreateElement("span")
	if at.Type == gdocs.AutoTextPageCount {
		span.CreateAttr("class", "page-count")
	} else {
		span.CreateAttr("class", "page-number")
	}
}
