package export

import (
	"strings"
	"testing"
)

func TestRenderParagraphStyling(t *testing.T) {
	res := renderSample(t)
	page := string(res.HTML)

	for _, want := range []string{
		`<h1 class="title" style="margin-bottom:4px;">`,
		`<span style="font-size:26pt;font-family:'Arial', sans-serif;">Exporter Test</span>`,
		`<h1 id="heading-h.abc123" style="margin-top:27px;margin-bottom:8px;">`,
		`<span style="font-size:20pt;font-family:'Roboto', sans-serif;">First Chapter</span>`,
		`<p style="text-align:left;line-height:1.4375;">`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("output is missing %q", want)
		}
	}
}

func TestRenderRunMerging(t *testing.T) {
	res := renderSample(t)
	blocks := childElements(contentDiv(t, res))
	p := blocks[3]

	kids := childElements(p)
	if len(kids) != 4 {
		t.Fatalf("paragraph has %d inline elements, want 4 after merging", len(kids))
	}
	wantText := []string{"Plain text with ", "bold", " middle and ", "a link"}
	for i, w := range wantText {
		if got := textOf(kids[i]); got != w {
			t.Errorf("inline %d text = %q, want %q", i, got, w)
		}
	}

	if kids[1].Data != "span" || attrVal(kids[1], "class") != "bold" {
		t.Errorf("bold run rendered as <%s class=%q>", kids[1].Data, attrVal(kids[1], "class"))
	}
	link := kids[3]
	if link.Data != "a" {
		t.Fatalf("linked run rendered as <%s>, want <a>", link.Data)
	}
	if got := attrVal(link, "href"); got != "https://example.com/" {
		t.Errorf("link href = %q", got)
	}
	if got := attrVal(link, "class"); got != "underline" {
		t.Errorf("link class = %q", got)
	}
	if st := attrVal(link, "style"); !strings.Contains(st, "color:#0000cc;") {
		t.Errorf("link style = %q, want the declared foreground color", st)
	}
}

func TestRenderRightToLeft(t *testing.T) {
	res := renderSample(t)
	blocks := childElements(contentDiv(t, res))
	p := blocks[7]

	if got := attrVal(p, "dir"); got != "rtl" {
		t.Errorf("dir = %q, want rtl", got)
	}
	// START alignment flips to the right edge for right to left text
	if st := attrVal(p, "style"); !strings.Contains(st, "text-align:right;") {
		t.Errorf("style = %q, want text-align:right", st)
	}
	if got := textOf(p); got != "שלום עולם" {
		t.Errorf("text = %q", got)
	}
}

func TestRenderHorizontalRuleClosesList(t *testing.T) {
	doc := parseDoc(t, []byte(`{
		"documentId": "rule",
		"title": "Rule",
		"lists": { "l": { "listProperties": { "nestingLevels": [ { "glyphSymbol": "●" } ] } } },
		"body": { "content": [
			{ "paragraph": { "bullet": { "listId": "l", "nestingLevel": 0 }, "elements": [ { "textRun": { "content": "one\n", "textStyle": {} } } ] } },
			{ "paragraph": { "elements": [ { "horizontalRule": {} }, { "textRun": { "content": "\n", "textStyle": {} } } ] } },
			{ "paragraph": { "bullet": { "listId": "l", "nestingLevel": 0 }, "elements": [ { "textRun": { "content": "two\n", "textStyle": {} } } ] } }
		] }
	}`))
	res := render(t, doc, testDocumentConfig(), nil, nil)

	blocks := childElements(contentDiv(t, res))
	want := []string{"ul", "hr", "ul"}
	if len(blocks) != len(want) {
		t.Fatalf("content blocks are %v, want %v", tagNames(blocks), want)
	}
	for i, tag := range want {
		if blocks[i].Data != tag {
			t.Errorf("block %d is <%s>, want <%s>", i, blocks[i].Data, tag)
		}
	}
}

func TestRenderInlineExtras(t *testing.T) {
	doc := parseDoc(t, []byte(`{
		"documentId": "extras",
		"title": "Extras",
		"body": { "content": [
			{ "paragraph": { "elements": [
				{ "textRun": { "content": "Note", "textStyle": {} } },
				{ "footnoteReference": { "footnoteId": "f1", "footnoteNumber": "1" } },
				{ "textRun": { "content": " on page ", "textStyle": {} } },
				{ "autoText": { "type": "PAGE_NUMBER" } },
				{ "textRun": { "content": " of ", "textStyle": {} } },
				{ "autoText": { "type": "PAGE_COUNT" } },
				{ "equation": {} },
				{ "textRun": { "content": "\n", "textStyle": {} } }
			] } }
		] }
	}`))
	res := render(t, doc, testDocumentConfig(), nil, nil)

	page := string(res.HTML)
	for _, want := range []string{
		`<sup class="footnote-ref">[1]</sup>`,
		`<span class="page-number">`,
		`<span class="page-count">`,
		`<!-- equation omitted -->`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("output is missing %q", want)
		}
	}
}

func TestRenderParagraphIndents(t *testing.T) {
	doc := parseDoc(t, []byte(`{
		"documentId": "indents",
		"title": "Indents",
		"body": { "content": [
			{ "paragraph": {
				"paragraphStyle": { "indentFirstLine": { "magnitude": 18, "unit": "PT" }, "indentStart": { "magnitude": 36, "unit": "PT" } },
				"elements": [ { "textRun": { "content": "first line\n", "textStyle": {} } } ]
			} },
			{ "paragraph": {
				"paragraphStyle": { "indentStart": { "magnitude": 36, "unit": "PT" } },
				"elements": [ { "textRun": { "content": "whole block\n", "textStyle": {} } } ]
			} },
			{ "paragraph": {
				"paragraphStyle": { "indentStart": { "magnitude": 36, "unit": "PT" }, "direction": "CONTENT_DIRECTION_RIGHT_TO_LEFT" },
				"elements": [ { "textRun": { "content": "mirrored\n", "textStyle": {} } } ]
			} }
		] }
	}`))
	res := render(t, doc, testDocumentConfig(), nil, nil)

	blocks := childElements(contentDiv(t, res))
	if len(blocks) != 3 {
		t.Fatalf("content blocks are %v, want 3 paragraphs", tagNames(blocks))
	}

	// a first line indent takes precedence over the block indent
	if st := attrVal(blocks[0], "style"); st != "text-indent:24px;" {
		t.Errorf("first paragraph style = %q, want text-indent only", st)
	}
	if st := attrVal(blocks[1], "style"); st != "margin-left:48px;" {
		t.Errorf("second paragraph style = %q, want the left margin", st)
	}
	// indentation mirrors for right to left text
	if st := attrVal(blocks[2], "style"); st != "margin-right:48px;" {
		t.Errorf("third paragraph style = %q, want the right margin", st)
	}
}
