package export

import (
	"context"
	"strconv"

	"github.com/beevik/etree"

	"gdex/gdocs"
)

// tocMaxLevel caps the indentation depth of table of contents entries.
const tocMaxLevel = 4

// renderTOC renders the table of contents block. Every entry paragraph wraps
// in a level div the shared stylesheet indents, bullets inside the TOC are
// ignored - the editor fakes entry nesting with indents, not lists.
func (r *Renderer) renderTOC(ctx context.Context, host *etree.Element, toc *gdocs.TableOfContents) error {
	div := host.CreateElement("div")
	div.CreateAttr("class", "doc-toc")

	for i := range toc.Content {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := toc.Content[i].Paragraph
		if p == nil {
			continue
		}
		entry := div.CreateElement("div")
		entry.CreateAttr("class", "toc-level-"+strconv.Itoa(r.tocEntryLevel(p)))
		eff := r.styles.ResolveParagraph(p)
		if err := r.appendParagraph(ctx, entry, p, eff, isRTL(eff)); err != nil {
			return err
		}
	}
	return nil
}

// tocEntryLevel resolves the outline level of one entry by scanning its runs
// for heading links and taking the deepest target. Entries with no resolvable
// link sit at level 1.
func (r *Renderer) tocEntryLevel(p *gdocs.Paragraph) int {
	level := 1
	for i := range p.Elements {
		run := p.Elements[i].TextRun
		if run == nil || run.TextStyle == nil || run.TextStyle.Link == nil {
			continue
		}
		id := run.TextStyle.Link.HeadingID
		if id == "" {
			continue
		}
		if lv := r.idx.HeadingLevelByID(id); lv > level {
			level = lv
		}
	}
	if level > tocMaxLevel {
		level = tocMaxLevel
	}
	return level
}
