// Package gdocs defines the typed model for Google Docs documents and the
// style resolution rules the exporter depends on.
package gdocs

// Type definitions mirror the subset of the Docs API document resource the
// exporter consumes. Optional scalars which participate in style cascading are
// pointers so that "absent" survives decoding and does not override values
// from lower cascade layers. Fields the exporter never looks at are omitted,
// decoding drops them silently.

// Document is the root of the document tree returned by the API.
type Document struct {
	DocumentID    string                  `json:"documentId"`
	Title         string                  `json:"title"`
	Body          Body                    `json:"body"`
	DocumentStyle *DocumentStyle          `json:"documentStyle"`
	NamedStyles   *NamedStyles            `json:"namedStyles"`
	Lists         map[string]List         `json:"lists"`
	InlineObjects map[string]InlineObject `json:"inlineObjects"`
}

type Body struct {
	Content []StructuralElement `json:"content"`
}

// StructuralElement is a union - exactly one of the pointers is set.
type StructuralElement struct {
	Paragraph       *Paragraph       `json:"paragraph"`
	Table           *Table           `json:"table"`
	SectionBreak    *SectionBreak    `json:"sectionBreak"`
	TableOfContents *TableOfContents `json:"tableOfContents"`
}

// SectionBreak carries section styling we do not consume, presence is all
// that matters for rendering.
type SectionBreak struct{}

type TableOfContents struct {
	Content []StructuralElement `json:"content"`
}

type Paragraph struct {
	Elements       []ParagraphElement `json:"elements"`
	ParagraphStyle *ParagraphStyle    `json:"paragraphStyle"`
	Bullet         *Bullet            `json:"bullet"`
}

// Bullet marks paragraph as a list item. NestingLevel is a pointer - when the
// source leaves it out the level has to be inferred from indentation.
type Bullet struct {
	ListID       string     `json:"listId"`
	NestingLevel *int64     `json:"nestingLevel"`
	TextStyle    *TextStyle `json:"textStyle"`
}

// ParagraphElement is a union - exactly one of the pointers is set.
type ParagraphElement struct {
	TextRun             *TextRun             `json:"textRun"`
	InlineObjectElement *InlineObjectElement `json:"inlineObjectElement"`
	FootnoteReference   *FootnoteReference   `json:"footnoteReference"`
	HorizontalRule      *HorizontalRule      `json:"horizontalRule"`
	Equation            *Equation            `json:"equation"`
	AutoText            *AutoText            `json:"autoText"`
	PageBreak           *PageBreak           `json:"pageBreak"`
	ColumnBreak         *ColumnBreak         `json:"columnBreak"`
}

type TextRun struct {
	Content   string     `json:"content"`
	TextStyle *TextStyle `json:"textStyle"`
}

type InlineObjectElement struct {
	InlineObjectID string     `json:"inlineObjectId"`
	TextStyle      *TextStyle `json:"textStyle"`
}

type FootnoteReference struct {
	FootnoteID     string `json:"footnoteId"`
	FootnoteNumber string `json:"footnoteNumber"`
}

type HorizontalRule struct {
	TextStyle *TextStyle `json:"textStyle"`
}

type Equation struct{}

type AutoText struct {
	Type      string     `json:"type"`
	TextStyle *TextStyle `json:"textStyle"`
}

type PageBreak struct {
	TextStyle *TextStyle `json:"textStyle"`
}

type ColumnBreak struct {
	TextStyle *TextStyle `json:"textStyle"`
}

// AutoText kinds we render as placeholders.
const (
	AutoTextPageNumber = "PAGE_NUMBER"
	AutoTextPageCount  = "PAGE_COUNT"
)

type ParagraphStyle struct {
	HeadingID       string           `json:"headingId"`
	NamedStyleType  string           `json:"namedStyleType"`
	Alignment       string           `json:"alignment"`
	Direction       string           `json:"direction"`
	LineSpacing     *float64         `json:"lineSpacing"`
	SpaceAbove      *Dimension       `json:"spaceAbove"`
	SpaceBelow      *Dimension       `json:"spaceBelow"`
	IndentFirstLine *Dimension       `json:"indentFirstLine"`
	IndentStart     *Dimension       `json:"indentStart"`
	IndentEnd       *Dimension       `json:"indentEnd"`
	Shading         *Shading         `json:"shading"`
	BorderTop       *ParagraphBorder `json:"borderTop"`
	BorderBottom    *ParagraphBorder `json:"borderBottom"`
	BorderLeft      *ParagraphBorder `json:"borderLeft"`
	BorderRight     *ParagraphBorder `json:"borderRight"`
}

// Paragraph alignment values.
const (
	AlignStart     = "START"
	AlignCenter    = "CENTER"
	AlignEnd       = "END"
	AlignJustified = "JUSTIFIED"
)

// DirectionRTL is the only direction value that changes rendering, everything
// else is treated as left-to-right.
const DirectionRTL = "CONTENT_DIRECTION_RIGHT_TO_LEFT"

// Named style identifiers.
const (
	StyleNormalText = "NORMAL_TEXT"
	StyleTitle      = "TITLE"
	StyleSubtitle   = "SUBTITLE"
	StyleHeading1   = "HEADING_1"
	StyleHeading2   = "HEADING_2"
	StyleHeading3   = "HEADING_3"
	StyleHeading4   = "HEADING_4"
	StyleHeading5   = "HEADING_5"
	StyleHeading6   = "HEADING_6"
)

type TextStyle struct {
	Bold               *bool               `json:"bold"`
	Italic             *bool               `json:"italic"`
	Underline          *bool               `json:"underline"`
	Strikethrough      *bool               `json:"strikethrough"`
	BaselineOffset     string              `json:"baselineOffset"`
	FontSize           *Dimension          `json:"fontSize"`
	WeightedFontFamily *WeightedFontFamily `json:"weightedFontFamily"`
	ForegroundColor    *OptionalColor      `json:"foregroundColor"`
	BackgroundColor    *OptionalColor      `json:"backgroundColor"`
	Link               *Link               `json:"link"`
}

// Baseline offsets for super/subscript runs.
const (
	BaselineSuperscript = "SUPERSCRIPT"
	BaselineSubscript   = "SUBSCRIPT"
)

type WeightedFontFamily struct {
	FontFamily string `json:"fontFamily"`
	Weight     int64  `json:"weight"`
}

// Link target - a URL, an internal heading or a bookmark.
type Link struct {
	URL        string `json:"url"`
	HeadingID  string `json:"headingId"`
	BookmarkID string `json:"bookmarkId"`
}

// OptionalColor wraps a color that may be "unset" (fully transparent).
type OptionalColor struct {
	Color *Color `json:"color"`
}

type Color struct {
	RgbColor *RgbColor `json:"rgbColor"`
}

// RgbColor components are fractions in [0, 1]. The API omits zero components,
// plain float64 zero values decode exactly right.
type RgbColor struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

type Shading struct {
	BackgroundColor *OptionalColor `json:"backgroundColor"`
}

type ParagraphBorder struct {
	Color     *OptionalColor `json:"color"`
	Width     *Dimension     `json:"width"`
	Padding   *Dimension     `json:"padding"`
	DashStyle string         `json:"dashStyle"`
}

// Dimension is a magnitude with a unit, points in every document we have seen.
type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

// Points returns the magnitude, zero for nil receiver. Keeps call sites free
// of pointer checks.
func (d *Dimension) Points() float64 {
	if d == nil {
		return 0
	}
	return d.Magnitude
}

type NamedStyles struct {
	Styles []NamedStyle `json:"styles"`
}

type NamedStyle struct {
	NamedStyleType string          `json:"namedStyleType"`
	ParagraphStyle *ParagraphStyle `json:"paragraphStyle"`
	TextStyle      *TextStyle      `json:"textStyle"`
}

type DocumentStyle struct {
	PageSize     *Size      `json:"pageSize"`
	MarginTop    *Dimension `json:"marginTop"`
	MarginBottom *Dimension `json:"marginBottom"`
	MarginLeft   *Dimension `json:"marginLeft"`
	MarginRight  *Dimension `json:"marginRight"`
}

type Size struct {
	Width  *Dimension `json:"width"`
	Height *Dimension `json:"height"`
}

type List struct {
	ListProperties *ListProperties `json:"listProperties"`
}

type ListProperties struct {
	NestingLevels []NestingLevel `json:"nestingLevels"`
}

// NestingLevel describes glyph and indentation for one depth of a list.
type NestingLevel struct {
	BulletAlignment string     `json:"bulletAlignment"`
	GlyphType       string     `json:"glyphType"`
	GlyphSymbol     string     `json:"glyphSymbol"`
	GlyphFormat     string     `json:"glyphFormat"`
	StartNumber     *int64     `json:"startNumber"`
	IndentFirstLine *Dimension `json:"indentFirstLine"`
	IndentStart     *Dimension `json:"indentStart"`
	TextStyle       *TextStyle `json:"textStyle"`
}

// Glyph types of numbered lists.
const (
	GlyphTypeUnspecified = "GLYPH_TYPE_UNSPECIFIED"
	GlyphTypeNone        = "NONE"
	GlyphTypeDecimal     = "DECIMAL"
	GlyphTypeZeroDecimal = "ZERO_DECIMAL"
	GlyphTypeAlpha       = "ALPHA"
	GlyphTypeUpperAlpha  = "UPPER_ALPHA"
	GlyphTypeRoman       = "ROMAN"
	GlyphTypeUpperRoman  = "UPPER_ROMAN"
)

type InlineObject struct {
	InlineObjectProperties *InlineObjectProperties `json:"inlineObjectProperties"`
}

type InlineObjectProperties struct {
	EmbeddedObject *EmbeddedObject `json:"embeddedObject"`
}

type EmbeddedObject struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Size            *Size            `json:"size"`
	Transform       *Transform       `json:"transform"`
	ImageProperties *ImageProperties `json:"imageProperties"`
}

type ImageProperties struct {
	ContentURI     string          `json:"contentUri"`
	SourceURI      string          `json:"sourceUri"`
	CropProperties *CropProperties `json:"cropProperties"`
}

// CropProperties offsets are fractions of the original dimensions.
type CropProperties struct {
	OffsetLeft   float64 `json:"offsetLeft"`
	OffsetRight  float64 `json:"offsetRight"`
	OffsetTop    float64 `json:"offsetTop"`
	OffsetBottom float64 `json:"offsetBottom"`
	Angle        float64 `json:"angle"`
}

// Zero reports whether the crop box is effectively absent.
func (c *CropProperties) Zero() bool {
	if c == nil {
		return true
	}
	return c.OffsetLeft == 0 && c.OffsetRight == 0 && c.OffsetTop == 0 && c.OffsetBottom == 0
}

// Transform as saved dumps of this exporter's origin carry it on the embedded
// object - absent factors mean identity.
type Transform struct {
	ScaleX     *float64 `json:"scaleX"`
	ScaleY     *float64 `json:"scaleY"`
	TranslateX *float64 `json:"translateX"`
	TranslateY *float64 `json:"translateY"`
}

// Scales returns the scale factors, 1 for anything unset.
func (t *Transform) Scales() (sx, sy float64) {
	sx, sy = 1, 1
	if t == nil {
		return
	}
	if t.ScaleX != nil {
		sx = *t.ScaleX
	}
	if t.ScaleY != nil {
		sy = *t.ScaleY
	}
	return
}

// Offsets returns the translation in points, zero for anything unset.
func (t *Transform) Offsets() (dx, dy float64) {
	if t == nil {
		return 0, 0
	}
	if t.TranslateX != nil {
		dx = *t.TranslateX
	}
	if t.TranslateY != nil {
		dy = *t.TranslateY
	}
	return
}

type Table struct {
	Rows      int64      `json:"rows"`
	Columns   int64      `json:"columns"`
	TableRows []TableRow `json:"tableRows"`
}

type TableRow struct {
	TableCells    []TableCell    `json:"tableCells"`
	TableRowStyle *TableRowStyle `json:"tableRowStyle"`
}

type TableRowStyle struct {
	MinRowHeight *Dimension `json:"minRowHeight"`
}

type TableCell struct {
	Content        []StructuralElement `json:"content"`
	TableCellStyle *TableCellStyle     `json:"tableCellStyle"`
}

type TableCellStyle struct {
	BackgroundColor *OptionalColor   `json:"backgroundColor"`
	BorderTop       *TableCellBorder `json:"borderTop"`
	BorderBottom    *TableCellBorder `json:"borderBottom"`
	BorderLeft      *TableCellBorder `json:"borderLeft"`
	BorderRight     *TableCellBorder `json:"borderRight"`
	PaddingTop      *Dimension       `json:"paddingTop"`
	PaddingBottom   *Dimension       `json:"paddingBottom"`
	PaddingLeft     *Dimension       `json:"paddingLeft"`
	PaddingRight    *Dimension       `json:"paddingRight"`
	ColumnSpan      int64            `json:"columnSpan"`
	RowSpan         int64            `json:"rowSpan"`
}

type TableCellBorder struct {
	Color     *OptionalColor `json:"color"`
	Width     *Dimension     `json:"width"`
	DashStyle string         `json:"dashStyle"`
}

// GlyphFor returns the glyph definition of a list at the given depth, nil when
// list or level is not declared. Levels past the declared depth reuse the
// deepest declaration the way the editor cycles glyphs.
func (d *Document) GlyphFor(listID string, level int64) *NestingLevel {
	if d == nil || listID == "" {
		return nil
	}
	list, ok := d.Lists[listID]
	if !ok || list.ListProperties == nil || len(list.ListProperties.NestingLevels) == 0 {
		return nil
	}
	levels := list.ListProperties.NestingLevels
	if level < 0 {
		level = 0
	}
	if int(level) >= len(levels) {
		level = int64(len(levels) - 1)
	}
	return &levels[level]
}

// EmbeddedObjectFor resolves inline object reference to its embedded image
// metadata, nil when anything along the path is missing.
func (d *Document) EmbeddedObjectFor(objectID string) *EmbeddedObject {
	if d == nil || objectID == "" {
		return nil
	}
	obj, ok := d.InlineObjects[objectID]
	if !ok || obj.InlineObjectProperties == nil {
		return nil
	}
	return obj.InlineObjectProperties.EmbeddedObject
}
