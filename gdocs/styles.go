package gdocs

// Style cascading. The effective style of a paragraph is its named style
// overlaid with the paragraph's own overrides, the effective style of a text
// run is the named text style overlaid with the run's own overrides. Overlay
// wins per field, presence is what matters: nil pointers and empty strings
// never clobber values from the layer below. Inputs are never mutated, every
// resolution hands back a fresh copy.

// StyleMap indexes the document's named styles by style type.
type StyleMap struct {
	para map[string]*ParagraphStyle
	text map[string]*TextStyle
}

// NewStyleMap builds the named style lookup. Missing declarations are fine,
// lookups fall back to empty base layers.
func NewStyleMap(doc *Document) *StyleMap {
	m := &StyleMap{
		para: make(map[string]*ParagraphStyle),
		text: make(map[string]*TextStyle),
	}
	if doc == nil || doc.NamedStyles == nil {
		return m
	}
	for i := range doc.NamedStyles.Styles {
		s := &doc.NamedStyles.Styles[i]
		if s.NamedStyleType == "" {
			continue
		}
		m.para[s.NamedStyleType] = s.ParagraphStyle
		m.text[s.NamedStyleType] = s.TextStyle
	}
	return m
}

// ResolveParagraph returns the effective paragraph style, never nil.
func (m *StyleMap) ResolveParagraph(p *Paragraph) *ParagraphStyle {
	var own *ParagraphStyle
	named := StyleNormalText
	if p != nil && p.ParagraphStyle != nil {
		own = p.ParagraphStyle
		if p.ParagraphStyle.NamedStyleType != "" {
			named = p.ParagraphStyle.NamedStyleType
		}
	}
	out := MergeParagraphStyles(m.para[named], own)
	if out == nil {
		out = &ParagraphStyle{}
	}
	return out
}

// NamedText returns the named text style layer for a paragraph, used as the
// base of every run resolution within it. May be nil.
func (m *StyleMap) NamedText(p *Paragraph) *TextStyle {
	named := StyleNormalText
	if p != nil && p.ParagraphStyle != nil && p.ParagraphStyle.NamedStyleType != "" {
		named = p.ParagraphStyle.NamedStyleType
	}
	return m.text[named]
}

// ResolveText returns the effective text style of a run over the given base
// layer, never nil.
func (m *StyleMap) ResolveText(base, run *TextStyle) *TextStyle {
	out := MergeTextStyles(base, run)
	if out == nil {
		out = &TextStyle{}
	}
	return out
}

// MergeParagraphStyles overlays override onto base and returns a fresh copy.
// Either side may be nil.
func MergeParagraphStyles(base, override *ParagraphStyle) *ParagraphStyle {
	if base == nil {
		return CloneParagraphStyle(override)
	}
	out := CloneParagraphStyle(base)
	if override == nil {
		return out
	}
	if override.HeadingID != "" {
		out.HeadingID = override.HeadingID
	}
	if override.NamedStyleType != "" {
		out.NamedStyleType = override.NamedStyleType
	}
	if override.Alignment != "" {
		out.Alignment = override.Alignment
	}
	if override.Direction != "" {
		out.Direction = override.Direction
	}
	if override.LineSpacing != nil {
		v := *override.LineSpacing
		out.LineSpacing = &v
	}
	if override.SpaceAbove != nil {
		out.SpaceAbove = cloneDimension(override.SpaceAbove)
	}
	if override.SpaceBelow != nil {
		out.SpaceBelow = cloneDimension(override.SpaceBelow)
	}
	if override.IndentFirstLine != nil {
		out.IndentFirstLine = cloneDimension(override.IndentFirstLine)
	}
	if override.IndentStart != nil {
		out.IndentStart = cloneDimension(override.IndentStart)
	}
	if override.IndentEnd != nil {
		out.IndentEnd = cloneDimension(override.IndentEnd)
	}
	if override.Shading != nil {
		out.Shading = mergeShading(out.Shading, override.Shading)
	}
	if override.BorderTop != nil {
		out.BorderTop = mergeBorder(out.BorderTop, override.BorderTop)
	}
	if override.BorderBottom != nil {
		out.BorderBottom = mergeBorder(out.BorderBottom, override.BorderBottom)
	}
	if override.BorderLeft != nil {
		out.BorderLeft = mergeBorder(out.BorderLeft, override.BorderLeft)
	}
	if override.BorderRight != nil {
		out.BorderRight = mergeBorder(out.BorderRight, override.BorderRight)
	}
	return out
}

// MergeTextStyles overlays override onto base and returns a fresh copy.
// Either side may be nil.
func MergeTextStyles(base, override *TextStyle) *TextStyle {
	if base == nil {
		return CloneTextStyle(override)
	}
	out := CloneTextStyle(base)
	if override == nil {
		return out
	}
	if override.Bold != nil {
		out.Bold = cloneBool(override.Bold)
	}
	if override.Italic != nil {
		out.Italic = cloneBool(override.Italic)
	}
	if override.Underline != nil {
		out.Underline = cloneBool(override.Underline)
	}
	if override.Strikethrough != nil {
		out.Strikethrough = cloneBool(override.Strikethrough)
	}
	if override.BaselineOffset != "" {
		out.BaselineOffset = override.BaselineOffset
	}
	if override.FontSize != nil {
		out.FontSize = cloneDimension(override.FontSize)
	}
	if override.WeightedFontFamily != nil {
		f := *override.WeightedFontFamily
		out.WeightedFontFamily = &f
	}
	// Colors replace as a whole. Components are not optional in the model,
	// merging them per channel would manufacture colors no layer asked for.
	if override.ForegroundColor != nil {
		out.ForegroundColor = cloneOptionalColor(override.ForegroundColor)
	}
	if override.BackgroundColor != nil {
		out.BackgroundColor = cloneOptionalColor(override.BackgroundColor)
	}
	if override.Link != nil {
		l := *override.Link
		out.Link = &l
	}
	return out
}

// CloneParagraphStyle deep-copies a paragraph style, nil in nil out.
func CloneParagraphStyle(s *ParagraphStyle) *ParagraphStyle {
	if s == nil {
		return nil
	}
	out := *s
	if s.LineSpacing != nil {
		v := *s.LineSpacing
		out.LineSpacing = &v
	}
	out.SpaceAbove = cloneDimension(s.SpaceAbove)
	out.SpaceBelow = cloneDimension(s.SpaceBelow)
	out.IndentFirstLine = cloneDimension(s.IndentFirstLine)
	out.IndentStart = cloneDimension(s.IndentStart)
	out.IndentEnd = cloneDimension(s.IndentEnd)
	if s.Shading != nil {
		sh := Shading{BackgroundColor: cloneOptionalColor(s.Shading.BackgroundColor)}
		out.Shading = &sh
	}
	out.BorderTop = cloneParagraphBorder(s.BorderTop)
	out.BorderBottom = cloneParagraphBorder(s.BorderBottom)
	out.BorderLeft = cloneParagraphBorder(s.BorderLeft)
	out.BorderRight = cloneParagraphBorder(s.BorderRight)
	return &out
}

// CloneTextStyle deep-copies a text style, nil in nil out.
func CloneTextStyle(s *TextStyle) *TextStyle {
	if s == nil {
		return nil
	}
	out := *s
	out.Bold = cloneBool(s.Bold)
	out.Italic = cloneBool(s.Italic)
	out.Underline = cloneBool(s.Underline)
	out.Strikethrough = cloneBool(s.Strikethrough)
	out.FontSize = cloneDimension(s.FontSize)
	if s.WeightedFontFamily != nil {
		f := *s.WeightedFontFamily
		out.WeightedFontFamily = &f
	}
	out.ForegroundColor = cloneOptionalColor(s.ForegroundColor)
	out.BackgroundColor = cloneOptionalColor(s.BackgroundColor)
	if s.Link != nil {
		l := *s.Link
		out.Link = &l
	}
	return &out
}

func mergeShading(base, override *Shading) *Shading {
	if base == nil {
		return &Shading{BackgroundColor: cloneOptionalColor(override.BackgroundColor)}
	}
	out := Shading{BackgroundColor: cloneOptionalColor(base.BackgroundColor)}
	if override.BackgroundColor != nil {
		out.BackgroundColor = cloneOptionalColor(override.BackgroundColor)
	}
	return &out
}

func mergeBorder(base, override *ParagraphBorder) *ParagraphBorder {
	if base == nil {
		return cloneParagraphBorder(override)
	}
	out := cloneParagraphBorder(base)
	if override.Color != nil {
		out.Color = cloneOptionalColor(override.Color)
	}
	if override.Width != nil {
		out.Width = cloneDimension(override.Width)
	}
	if override.Padding != nil {
		out.Padding = cloneDimension(override.Padding)
	}
	if override.DashStyle != "" {
		out.DashStyle = override.DashStyle
	}
	return out
}

func cloneParagraphBorder(b *ParagraphBorder) *ParagraphBorder {
	if b == nil {
		return nil
	}
	out := ParagraphBorder{
		Color:     cloneOptionalColor(b.Color),
		Width:     cloneDimension(b.Width),
		Padding:   cloneDimension(b.Padding),
		DashStyle: b.DashStyle,
	}
	return &out
}

func cloneDimension(d *Dimension) *Dimension {
	if d == nil {
		return nil
	}
	out := *d
	return &out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func cloneOptionalColor(c *OptionalColor) *OptionalColor {
	if c == nil {
		return nil
	}
	out := OptionalColor{}
	if c.Color != nil {
		col := Color{}
		if c.Color.RgbColor != nil {
			rgb := *c.Color.RgbColor
			col.RgbColor = &rgb
		}
		out.Color = &col
	}
	return &out
}

// Flag reports a pointer-optional boolean, false when unset.
func Flag(b *bool) bool {
	return b != nil && *b
}

// RGB extracts the color components behind an optional color, reporting
// whether a concrete color is present.
func RGB(c *OptionalColor) (r, g, b float64, ok bool) {
	if c == nil || c.Color == nil || c.Color.RgbColor == nil {
		return 0, 0, 0, false
	}
	rgb := c.Color.RgbColor
	return rgb.Red, rgb.Green, rgb.Blue, true
}
