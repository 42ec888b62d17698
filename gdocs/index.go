package gdocs

import (
	"strconv"
	"strings"
)

// Index holds the immutable lookups computed in a single pre-pass before
// rendering starts. Rendering itself never walks the document out of order,
// anything that needs whole-document knowledge lives here.
type Index struct {
	// itemCounts counts bullet paragraphs per (listId, declared nesting
	// level). Paragraphs without an explicit level count at level 0, the
	// indentation heuristic only applies during the sequential pass.
	itemCounts map[string]map[int64]int

	// headingLevels maps heading anchor ids to their 1..6 outline level.
	headingLevels map[string]int
}

// BuildIndex walks the document once and snapshots everything the renderers
// look up by key.
func BuildIndex(doc *Document) *Index {
	idx := &Index{
		itemCounts:    make(map[string]map[int64]int),
		headingLevels: make(map[string]int),
	}
	if doc == nil {
		return idx
	}
	ForEachParagraph(doc.Body.Content, func(p *Paragraph) {
		if p.Bullet != nil && p.Bullet.ListID != "" {
			level := int64(0)
			if p.Bullet.NestingLevel != nil {
				level = *p.Bullet.NestingLevel
			}
			byLevel := idx.itemCounts[p.Bullet.ListID]
			if byLevel == nil {
				byLevel = make(map[int64]int)
				idx.itemCounts[p.Bullet.ListID] = byLevel
			}
			byLevel[level]++
		}
		if p.ParagraphStyle != nil && p.ParagraphStyle.HeadingID != "" {
			if lv, ok := HeadingLevel(p.ParagraphStyle.NamedStyleType); ok {
				idx.headingLevels[p.ParagraphStyle.HeadingID] = lv
			}
		}
	})
	return idx
}

// ListItemCount returns how many paragraphs reference the given list at the
// given declared level, zero when nothing does.
func (idx *Index) ListItemCount(listID string, level int64) int {
	if idx == nil {
		return 0
	}
	return idx.itemCounts[listID][level]
}

// HeadingLevelByID resolves a heading anchor to its outline level, 1 when the
// anchor is unknown or does not belong to a heading.
func (idx *Index) HeadingLevelByID(headingID string) int {
	if idx == nil {
		return 1
	}
	if lv, ok := idx.headingLevels[headingID]; ok {
		return lv
	}
	return 1
}

// HeadingLevel extracts n from a HEADING_n style type.
func HeadingLevel(namedStyleType string) (int, bool) {
	const prefix = "HEADING_"
	if !strings.HasPrefix(namedStyleType, prefix) {
		return 0, false
	}
	lv, err := strconv.Atoi(namedStyleType[len(prefix):])
	if err != nil || lv < 1 || lv > 6 {
		return 0, false
	}
	return lv, true
}
