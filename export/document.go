// Package export renders a parsed document tree into a self-contained HTML
// page with inline styling, downloading and preparing referenced images along
// the way.
package export

import (
	"bytes"
	"context"
	"sort"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"gdex/config"
	"gdex/gdocs"
	"gdex/misc"
)

// Result is one fully rendered document. Images holds files for the images
// subdirectory keyed by name, empty when everything embeds. Warnings counts
// pictures that could not be produced.
type Result struct {
	HTML     []byte
	Images   map[string][]byte
	Fonts    []string
	Warnings int
}

// Renderer turns one parsed document into HTML. It is single use - rendering
// accumulates font and image state.
type Renderer struct {
	// LinkStylesheet adds a styles.css link to the head for a user stylesheet
	// written next to index.html.
	LinkStylesheet bool

	doc    *gdocs.Document
	styles *gdocs.StyleMap
	idx    *gdocs.Index
	pics   *pictures
	cfg    *config.DocumentConfig
	fonts  map[string]struct{}
	log    *zap.Logger
}

// NewRenderer prepares rendering state for one document. brokenImage is the
// SVG drawn in place of failed downloads, nil disables the placeholder
// regardless of configuration.
func NewRenderer(doc *gdocs.Document, fetch Fetcher, cfg *config.DocumentConfig, brokenImage []byte, log *zap.Logger) *Renderer {
	return &Renderer{
		doc:    doc,
		styles: gdocs.NewStyleMap(doc),
		idx:    gdocs.BuildIndex(doc),
		pics:   newPictures(fetch, &cfg.Images, brokenImage, log),
		cfg:    cfg,
		fonts:  make(map[string]struct{}),
		log:    log,
	}
}

// Render produces the page. Content renders first so font usage is known by
// the time the head is assembled around it.
func (r *Renderer) Render(ctx context.Context) (*Result, error) {
	content := etree.NewElement("div")
	content.CreateAttr("class", "doc-content")
	if err := r.renderBlocks(ctx, content, r.doc.Body.Content); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := r.assemble(content).WriteTo(&buf); err != nil {
		return nil, err
	}

	return &Result{
		HTML:     buf.Bytes(),
		Images:   r.pics.files,
		Fonts:    r.fontList(),
		Warnings: r.pics.warnings,
	}, nil
}

func (r *Renderer) assemble(content *etree.Element) *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	html.CreateAttr("lang", "en")

	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	viewport := head.CreateElement("meta")
	viewport.CreateAttr("name", "viewport")
	viewport.CreateAttr("content", "width=device-width, initial-scale=1")
	generator := head.CreateElement("meta")
	generator.CreateAttr("name", "generator")
	generator.CreateAttr("content", misc.GetAppName()+" "+misc.GetVersion())
	head.CreateElement("title").SetText(r.doc.Title)

	if families := r.fontList(); len(families) > 0 && r.cfg.FontsLink {
		link := head.CreateElement("link")
		link.CreateAttr("rel", "stylesheet")
		link.CreateAttr("href", fontsURL(families))
	}

	style := head.CreateElement("style")
	style.SetText(globalCSS(r.containerWidth(), r.doc.DocumentStyle))

	if r.LinkStylesheet {
		link := head.CreateElement("link")
		link.CreateAttr("rel", "stylesheet")
		link.CreateAttr("href", "styles.css")
	}

	html.CreateElement("body").AddChild(content)
	return doc
}

func (r *Renderer) fontList() []string {
	families := make([]string, 0, len(r.fonts))
	for f := range r.fonts {
		families = append(families, f)
	}
	sort.Strings(families)
	return families
}

// renderBlocks renders a block stream into host. Every invocation carries its
// own list state, table cells nest through here.
func (r *Renderer) renderBlocks(ctx context.Context, host *etree.Element, content []gdocs.StructuralElement) error {
	lw := newListWriter(host)
	for i := range content {
		if err := ctx.Err(); err != nil {
			return err
		}
		el := &content[i]
		switch {
		case el.SectionBreak != nil:
			lw.CloseAll()
			host.CreateElement("div").CreateAttr("class", "section-break")
		case el.TableOfContents != nil:
			lw.CloseAll()
			if err := r.renderTOC(ctx, host, el.TableOfContents); err != nil {
				return err
			}
		case el.Table != nil:
			lw.CloseAll()
			if err := r.renderTable(ctx, host, el.Table); err != nil {
				return err
			}
		case el.Paragraph != nil:
			if err := r.renderBlockParagraph(ctx, host, lw, el.Paragraph); err != nil {
				return err
			}
		}
	}
	lw.CloseAll()
	return nil
}

func (r *Renderer) renderBlockParagraph(ctx context.Context, host *etree.Element, lw *listWriter, p *gdocs.Paragraph) error {
	eff := r.styles.ResolveParagraph(p)
	rtl := isRTL(eff)

	if isRuleParagraph(p) {
		lw.CloseAll()
		host.CreateElement("hr")
		return nil
	}
	if p.Bullet == nil {
		lw.CloseAll()
		return r.appendParagraph(ctx, host, p, eff, rtl)
	}

	li := lw.Item(r.bulletFrame(p, eff, rtl, lw.state.prevLevel))
	return r.fillListItem(ctx, li, p, eff, rtl)
}

// bulletFrame derives the list container a bullet paragraph belongs in.
func (r *Renderer) bulletFrame(p *gdocs.Paragraph, eff *gdocs.ParagraphStyle, rtl bool, prev int64) Frame {
	b := p.Bullet

	declared := int64(0)
	if b.NestingLevel != nil {
		declared = *b.NestingLevel
	}
	level := declared
	if b.NestingLevel == nil {
		level = inferLevel(eff.IndentStart.Points(), prev)
	}

	glyph := r.doc.GlyphFor(b.ListID, level)
	kind := listKind(glyph, r.idx.ListItemCount(b.ListID, declared))
	return Frame{
		Kind:   kind,
		Level:  level,
		RTL:    rtl,
		ListID: b.ListID,
		Marker: markerFor(kind, glyph),
	}
}

// listWriter applies list actions to the tree, tracking open containers and
// their current items in parallel.
type listWriter struct {
	host  *etree.Element
	state *listState
	lists []*etree.Element
	items []*etree.Element
}

func newListWriter(host *etree.Element) *listWriter {
	return &listWriter{host: host, state: newListState()}
}

// Item reconciles the container stack for the next item frame and returns a
// fresh <li> in the innermost list.
func (w *listWriter) Item(f Frame) *etree.Element {
	w.apply(w.state.Advance(f))
	li := w.lists[len(w.lists)-1].CreateElement("li")
	w.items[len(w.items)-1] = li
	return li
}

// CloseAll drops out of every open list.
func (w *listWriter) CloseAll() {
	w.apply(w.state.Flush())
}

func (w *listWriter) apply(actions []Action) {
	for _, a := range actions {
		if !a.Open {
			w.lists = w.lists[:len(w.lists)-1]
			w.items = w.items[:len(w.items)-1]
			continue
		}
		parent := w.host
		if n := len(w.lists); n > 0 {
			// nested lists live inside the current item of their parent
			if li := w.items[n-1]; li != nil {
				parent = li
			} else {
				parent = w.lists[n-1]
			}
		}
		el := parent.CreateElement(a.Frame.Kind.Tag())
		if a.Frame.RTL {
			el.CreateAttr("dir", "rtl")
		}
		if a.Frame.Marker != "" {
			el.CreateAttr("style", "list-style-type:"+a.Frame.Marker+";")
		}
		w.lists = append(w.lists, el)
		w.items = append(w.items, nil)
	}
}
