package export

import (
	"fmt"
	"strings"

	"gdex/css"
	"gdex/gdocs"
)

const (
	// defaultContainerPx is the text column width when the document declares
	// no page geometry.
	defaultContainerPx = 800

	// containerExtraPx widens the column past the computed text width so
	// paragraph borders and padding do not crowd the edge.
	containerExtraPx = 64

	// defaultMarginPt stands in for undeclared page margins, the one inch
	// the editor defaults to.
	defaultMarginPt = 72.0
)

// pageCSS carries the shared classes of the page. Everything paragraph level
// is inline on the elements themselves.
const pageCSS = `
h1, h2, h3, h4, h5, h6 { margin: 1em 0; font-size: 1em; font-weight: normal; }
body { font-family: sans-serif; }
.doc-content { margin: 1em auto; max-width: %s; padding: 2em 1em; }
p, li { margin: 0.5em 0; }
img { display: inline-block; max-width: 100%%; height: auto; }
.bold { font-weight: bold; }
.italic { font-style: italic; }
.underline { text-decoration: underline; }
.strikethrough { text-decoration: line-through; }
.superscript { vertical-align: super; font-size: 0.8em; }
.subscript { vertical-align: sub; font-size: 0.8em; }
.section-break { page-break-before: always; }
.doc-toc { margin: 0.5em 0; padding: 0.5em; }
.toc-level-2 { margin-left: 1.5em; }
.toc-level-3 { margin-left: 3em; }
.toc-level-4 { margin-left: 4.5em; }
.subtitle { display: block; white-space: pre-wrap; }
.doc-table { border-collapse: collapse; margin: 0.5em 0; }
@media print { .page-number::after { content: counter(page); } .page-count::after { content: counter(pages); } }
`

func globalCSS(containerPx int, ds *gdocs.DocumentStyle) string {
	text := fmt.Sprintf(pageCSS, css.Px(containerPx))
	if rule := pageRule(ds); rule != "" {
		text += rule + "\n"
	}
	return text
}

// containerWidth computes the max-width of the content column from the page
// geometry, falling back to a fixed width when the document declares no page
// size.
func (r *Renderer) containerWidth() int {
	px := defaultContainerPx
	if ds := r.doc.DocumentStyle; ds != nil && ds.PageSize != nil && ds.PageSize.Width != nil {
		usable := ds.PageSize.Width.Points() -
			marginOr(ds.MarginLeft, defaultMarginPt) -
			marginOr(ds.MarginRight, defaultMarginPt)
		if usable > 0 {
			px = css.PtToPx(usable)
		}
	}
	return px + containerExtraPx
}

func marginOr(d *gdocs.Dimension, def float64) float64 {
	if d == nil {
		return def
	}
	return d.Magnitude
}

// pageRule emits an @page declaration when the document declares physical
// geometry, so printed output matches the source layout.
func pageRule(ds *gdocs.DocumentStyle) string {
	if ds == nil || ds.PageSize == nil || ds.PageSize.Width == nil || ds.PageSize.Height == nil {
		return ""
	}
	in := func(pt float64) string { return css.Num(pt/72) + "in" }
	return "@page { size: " + in(ds.PageSize.Width.Points()) + " " + in(ds.PageSize.Height.Points()) +
		"; margin: " + in(marginOr(ds.MarginTop, defaultMarginPt)) +
		" " + in(marginOr(ds.MarginRight, defaultMarginPt)) +
		" " + in(marginOr(ds.MarginBottom, defaultMarginPt)) +
		" " + in(marginOr(ds.MarginLeft, defaultMarginPt)) + "; }"
}

// fontsURL builds one Google Fonts request covering every family the page
// references.
func fontsURL(families []string) string {
	var b strings.Builder
	b.WriteString("https://fonts.googleapis.com/css2")
	for i, f := range families {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString("family=")
		b.WriteString(strings.ReplaceAll(f, " ", "+"))
	}
	b.WriteString("&display=swap")
	return b.String()
}
