package export

import (
	"context"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"gdex/css"
	"gdex/gdocs"
)

// headingAnchor builds the element id headings are linked by.
func headingAnchor(headingID string) string {
	return "heading-" + headingID
}

// blockTag maps the paragraph's named style to its HTML element and class.
func blockTag(named string) (tag, class string) {
	switch named {
	case gdocs.StyleTitle:
		return "h1", "title"
	case gdocs.StyleSubtitle:
		return "h2", "subtitle"
	}
	if lv, ok := gdocs.HeadingLevel(named); ok {
		return "h" + strconv.Itoa(lv), ""
	}
	return "p", ""
}

// isRTL reports right to left paragraph direction. Suffix match also covers
// dumps carrying the bare value without the CONTENT_DIRECTION_ prefix.
func isRTL(ps *gdocs.ParagraphStyle) bool {
	return ps != nil && strings.HasSuffix(ps.Direction, "RIGHT_TO_LEFT")
}

// cssAlign converts paragraph alignment to a text-align value, flipping start
// and end for right to left text first.
func cssAlign(alignment string, rtl bool) string {
	if rtl {
		switch alignment {
		case gdocs.AlignStart:
			alignment = gdocs.AlignEnd
		case gdocs.AlignEnd:
			alignment = gdocs.AlignStart
		}
	}
	switch alignment {
	case gdocs.AlignStart:
		return "left"
	case gdocs.AlignCenter:
		return "center"
	case gdocs.AlignEnd:
		return "right"
	case gdocs.AlignJustified:
		return "justify"
	}
	return ""
}

// isRuleParagraph reports a paragraph whose only visible content is
// horizontal rules. Those render as a block level <hr> on their own.
func isRuleParagraph(p *gdocs.Paragraph) bool {
	seen := false
	for i := range p.Elements {
		el := &p.Elements[i]
		switch {
		case el.HorizontalRule != nil:
			seen = true
		case el.TextRun != nil:
			if strings.TrimRight(el.TextRun.Content, "\n") != "" {
				return false
			}
		default:
			return false
		}
	}
	return seen
}

// appendParagraph renders a paragraph or heading as its own block element.
func (r *Renderer) appendParagraph(ctx context.Context, host *etree.Element, p *gdocs.Paragraph, eff *gdocs.ParagraphStyle, rtl bool) error {
	tag, class := blockTag(eff.NamedStyleType)
	el := host.CreateElement(tag)
	if class != "" {
		el.CreateAttr("class", class)
	}
	r.decorateParagraph(el, eff, rtl, true)
	return r.renderInline(ctx, el, p)
}

// fillListItem renders paragraph content into its list item. Normal text goes
// directly into the <li> which then carries the paragraph attributes, title
// and heading styles keep their own element nested inside. Indent driven
// properties stay off - the list structure already encodes them.
func (r *Renderer) fillListItem(ctx context.Context, li *etree.Element, p *gdocs.Paragraph, eff *gdocs.ParagraphStyle, rtl bool) error {
	tag, class := blockTag(eff.NamedStyleType)
	target := li
	if tag != "p" {
		target = li.CreateElement(tag)
		if class != "" {
			target.CreateAttr("class", class)
		}
	}
	r.decorateParagraph(target, eff, rtl, false)
	return r.renderInline(ctx, target, p)
}

// decorateParagraph sets id, direction and the inline style of a block
// element from the effective paragraph style.
func (r *Renderer) decorateParagraph(el *etree.Element, eff *gdocs.ParagraphStyle, rtl, withIndents bool) {
	if eff.HeadingID != "" {
		el.CreateAttr("id", headingAnchor(eff.HeadingID))
	}
	if rtl {
		el.CreateAttr("dir", "rtl")
	}

	var st css.Inline
	st.Add("text-align", cssAlign(eff.Alignment, rtl))
	if eff.LineSpacing != nil && *eff.LineSpacing > 0 {
		st.Add("line-height", css.Num(*eff.LineSpacing*r.cfg.LineSpacingFactor/100))
	}
	st.AddPx("margin-top", css.PtToPx(eff.SpaceAbove.Points()))
	st.AddPx("margin-bottom", css.PtToPx(eff.SpaceBelow.Points()))
	if withIndents {
		if in := eff.IndentFirstLine.Points(); in > 0 {
			st.AddPx("text-indent", css.PtToPx(in))
		} else if in := eff.IndentStart.Points(); in > 0 {
			if rtl {
				st.AddPx("margin-right", css.PtToPx(in))
			} else {
				st.AddPx("margin-left", css.PtToPx(in))
			}
		}
	}
	if eff.Shading != nil {
		if r, g, b, ok := gdocs.RGB(eff.Shading.BackgroundColor); ok {
			st.Add("background-color", css.HexRGB(r, g, b))
		}
	}
	addParagraphBorders(&st, eff)
	if !st.Empty() {
		el.CreateAttr("style", st.String())
	}
}

func addParagraphBorders(st *css.Inline, eff *gdocs.ParagraphStyle) {
	for _, s := range []struct {
		side   string
		border *gdocs.ParagraphBorder
	}{
		{"top", eff.BorderTop},
		{"bottom", eff.BorderBottom},
		{"left", eff.BorderLeft},
		{"right", eff.BorderRight},
	} {
		if s.border == nil || s.border.Width.Points() <= 0 {
			continue
		}
		hex := "#000000"
		if r, g, b, ok := gdocs.RGB(s.border.Color); ok {
			hex = css.HexRGB(r, g, b)
		}
		st.Add("border-"+s.side, css.Border(s.border.Width.Points(), s.border.DashStyle, hex))
		st.AddPx("padding-"+s.side, css.PtToPx(s.border.Padding.Points()))
	}
}

// renderInline renders the paragraph's element sequence into parent, merging
// adjacent text runs which resolve to the same face. Any non-text element
// breaks the merge window.
func (r *Renderer) renderInline(ctx context.Context, parent *etree.Element, p *gdocs.Paragraph) error {
	base := r.styles.NamedText(p)

	var (
		pending strings.Builder
		face    runFace
		open    bool
	)
	flush := func() {
		if !open {
			return
		}
		r.appendRun(parent, face, strings.TrimRight(pending.String(), "\n"))
		pending.Reset()
		open = false
	}

	for i := range p.Elements {
		el := &p.Elements[i]
		switch {
		case el.TextRun != nil:
			f := faceOf(r.styles.ResolveText(base, el.TextRun.TextStyle))
			if open && f != face {
				flush()
			}
			face = f
			open = true
			pending.WriteString(el.TextRun.Content)
		case el.InlineObjectElement != nil:
			flush()
			if err := r.appendImage(ctx, parent, el.InlineObjectElement.InlineObjectID); err != nil {
				return err
			}
		case el.FootnoteReference != nil:
			flush()
			appendFootnoteRef(parent, el.FootnoteReference)
		case el.AutoText != nil:
			flush()
			appendAutoText(parent, el.AutoText)
		case el.Equation != nil:
			flush()
			parent.CreateComment(" equation omitted ")
		default:
			// horizontal rules are handled at block level, page and column
			// breaks have no HTML counterpart
			flush()
		}
	}
	flush()
	return nil
}
