package gdocs

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"

	"gdex/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the parsed document. It omits raw style
// payloads that carry no rendering weight and keeps map iteration in natural
// key order so dumps diff cleanly between runs. It exists solely for manual
// inspection during debugging.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}
	return treeWriter{debug.NewTreeWriter()}.document(d).String()
}

func (tw treeWriter) document(doc *Document) treeWriter {
	tw.Line(0, "Document id=%q title=%q", doc.DocumentID, doc.Title)
	if ds := doc.DocumentStyle; ds != nil {
		w, h := 0.0, 0.0
		if ds.PageSize != nil {
			w = ds.PageSize.Width.Points()
			h = ds.PageSize.Height.Points()
		}
		tw.Line(1, "DocumentStyle page=%gx%gpt margins=%g/%g/%g/%gpt",
			w, h, ds.MarginTop.Points(), ds.MarginRight.Points(), ds.MarginBottom.Points(), ds.MarginLeft.Points())
	}
	if doc.NamedStyles != nil && len(doc.NamedStyles.Styles) > 0 {
		tw.Line(1, "NamedStyles: %d", len(doc.NamedStyles.Styles))
		for i := range doc.NamedStyles.Styles {
			s := &doc.NamedStyles.Styles[i]
			tw.Line(2, "Style[%d] type=%q", i, s.NamedStyleType)
		}
	}
	if len(doc.Lists) > 0 {
		tw.Line(1, "Lists: %d", len(doc.Lists))
		for _, id := range sortedKeys(doc.Lists) {
			tw.list(2, id, doc.Lists[id])
		}
	}
	if len(doc.InlineObjects) > 0 {
		tw.Line(1, "InlineObjects: %d", len(doc.InlineObjects))
		for _, id := range sortedKeys(doc.InlineObjects) {
			tw.inlineObject(2, id, doc.EmbeddedObjectFor(id))
		}
	}
	tw.Line(1, "Body: %d elements", len(doc.Body.Content))
	tw.content(2, doc.Body.Content)
	return tw
}

func (tw treeWriter) list(depth int, id string, list List) {
	levels := 0
	if list.ListProperties != nil {
		levels = len(list.ListProperties.NestingLevels)
	}
	tw.Line(depth, "List id=%q levels=%d", id, levels)
	if list.ListProperties == nil {
		return
	}
	for i := range list.ListProperties.NestingLevels {
		nl := &list.ListProperties.NestingLevels[i]
		tw.Line(depth+1, "Level[%d] glyphType=%q glyphSymbol=%q indentStart=%gpt",
			i, nl.GlyphType, nl.GlyphSymbol, nl.IndentStart.Points())
	}
}

func (tw treeWriter) inlineObject(depth int, id string, obj *EmbeddedObject) {
	if obj == nil {
		tw.Line(depth, "Object id=%q (no embedded object)", id)
		return
	}
	uri := ""
	if obj.ImageProperties != nil {
		uri = obj.ImageProperties.ContentURI
	}
	w, h := 0.0, 0.0
	if obj.Size != nil {
		w = obj.Size.Width.Points()
		h = obj.Size.Height.Points()
	}
	sx, sy := obj.Transform.Scales()
	tw.Line(depth, "Object id=%q size=%gx%gpt scale=%gx%g uri=%q", id, w, h, sx, sy, uri)
}

func (tw treeWriter) content(depth int, content []StructuralElement) {
	for i := range content {
		el := &content[i]
		switch {
		case el.Paragraph != nil:
			tw.paragraph(depth, i, el.Paragraph)
		case el.Table != nil:
			tw.table(depth, i, el.Table)
		case el.SectionBreak != nil:
			tw.Line(depth, "SectionBreak[%d]", i)
		case el.TableOfContents != nil:
			tw.Line(depth, "TableOfContents[%d] entries=%d", i, len(el.TableOfContents.Content))
			tw.content(depth+1, el.TableOfContents.Content)
		default:
			tw.Line(depth, "Element[%d] (unrecognized)", i)
		}
	}
}

func (tw treeWriter) paragraph(depth, index int, p *Paragraph) {
	named, headingID := "", ""
	if p.ParagraphStyle != nil {
		named = p.ParagraphStyle.NamedStyleType
		headingID = p.ParagraphStyle.HeadingID
	}
	tw.Line(depth, "Paragraph[%d] style=%q headingId=%q", index, named, headingID)
	if p.Bullet != nil {
		level := "inferred"
		if p.Bullet.NestingLevel != nil {
			level = fmt.Sprintf("%d", *p.Bullet.NestingLevel)
		}
		tw.Line(depth+1, "Bullet listId=%q level=%s", p.Bullet.ListID, level)
	}
	for i := range p.Elements {
		tw.paragraphElement(depth+1, i, &p.Elements[i])
	}
}

func (tw treeWriter) paragraphElement(depth, index int, e *ParagraphElement) {
	switch {
	case e.TextRun != nil:
		tw.TextBlock(depth, fmt.Sprintf("TextRun[%d]", index), e.TextRun.Content)
	case e.InlineObjectElement != nil:
		tw.Line(depth, "InlineObject[%d] id=%q", index, e.InlineObjectElement.InlineObjectID)
	case e.FootnoteReference != nil:
		tw.Line(depth, "FootnoteRef[%d] id=%q number=%q", index, e.FootnoteReference.FootnoteID, e.FootnoteReference.FootnoteNumber)
	case e.HorizontalRule != nil:
		tw.Line(depth, "HorizontalRule[%d]", index)
	case e.Equation != nil:
		tw.Line(depth, "Equation[%d]", index)
	case e.AutoText != nil:
		tw.Line(depth, "AutoText[%d] type=%q", index, e.AutoText.Type)
	case e.PageBreak != nil:
		tw.Line(depth, "PageBreak[%d]", index)
	case e.ColumnBreak != nil:
		tw.Line(depth, "ColumnBreak[%d]", index)
	default:
		tw.Line(depth, "Element[%d] (unrecognized)", index)
	}
}

func (tw treeWriter) table(depth, index int, t *Table) {
	tw.Line(depth, "Table[%d] rows=%d columns=%d", index, t.Rows, t.Columns)
	for r := range t.TableRows {
		row := &t.TableRows[r]
		tw.Line(depth+1, "Row[%d] cells=%d", r, len(row.TableCells))
		for c := range row.TableCells {
			cell := &row.TableCells[c]
			span := ""
			if cs := cell.TableCellStyle; cs != nil && (cs.ColumnSpan > 1 || cs.RowSpan > 1) {
				span = fmt.Sprintf(" colspan=%d rowspan=%d", cs.ColumnSpan, cs.RowSpan)
			}
			tw.Line(depth+2, "Cell[%d]%s", c, span)
			tw.content(depth+3, cell.Content)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return natural.Less(keys[i], keys[j]) })
	return keys
}
