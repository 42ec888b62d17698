package gdocs

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// ParseDocument decodes document JSON into the typed model. Decoding is
// deliberately lenient - unknown fields are dropped and structural gaps are
// only reported, rendering degrades per element later instead of failing the
// whole export here.
func ParseDocument(data []byte, log *zap.Logger) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if log != nil {
		reportGaps(&doc, log)
	}
	return &doc, nil
}

// reportGaps warns about dangling references so a degraded export can be
// traced back to its input.
func reportGaps(doc *Document, log *zap.Logger) {
	if len(doc.Body.Content) == 0 {
		log.Warn("Document body is empty")
	}
	if doc.NamedStyles == nil || len(doc.NamedStyles.Styles) == 0 {
		log.Warn("Document declares no named styles, falling back to plain paragraphs")
	}

	var paragraphs, tables, tocs int
	ForEachParagraph(doc.Body.Content, func(p *Paragraph) {
		paragraphs++
		if p.Bullet != nil && p.Bullet.ListID != "" {
			if _, ok := doc.Lists[p.Bullet.ListID]; !ok {
				log.Warn("Bullet references undeclared list", zap.String("listId", p.Bullet.ListID))
			}
		}
		for _, e := range p.Elements {
			if e.InlineObjectElement == nil {
				continue
			}
			id := e.InlineObjectElement.InlineObjectID
			if doc.EmbeddedObjectFor(id) == nil {
				log.Warn("Paragraph references unknown inline object", zap.String("objectId", id))
			}
		}
	})
	for _, el := range doc.Body.Content {
		switch {
		case el.Table != nil:
			tables++
		case el.TableOfContents != nil:
			tocs++
		}
	}

	log.Debug("Document parsed",
		zap.String("id", doc.DocumentID),
		zap.String("title", doc.Title),
		zap.Int("paragraphs", paragraphs),
		zap.Int("tables", tables),
		zap.Int("tocs", tocs),
		zap.Int("lists", len(doc.Lists)),
		zap.Int("inlineObjects", len(doc.InlineObjects)))
}

// ForEachParagraph visits every paragraph in a content stream in document
// order, descending into tables and tables of contents.
func ForEachParagraph(content []StructuralElement, fn func(*Paragraph)) {
	for i := range content {
		el := &content[i]
		switch {
		case el.Paragraph != nil:
			fn(el.Paragraph)
		case el.Table != nil:
			for r := range el.Table.TableRows {
				row := &el.Table.TableRows[r]
				for c := range row.TableCells {
					ForEachParagraph(row.TableCells[c].Content, fn)
				}
			}
		case el.TableOfContents != nil:
			ForEachParagraph(el.TableOfContents.Content, fn)
		}
	}
}
