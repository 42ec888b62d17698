package export

import (
	"testing"

	"gdex/gdocs"
)

func ulFrame(level int64, listID string) Frame {
	return Frame{Kind: Unordered, Level: level, ListID: listID}
}

func TestAdvanceNestingAndReuse(t *testing.T) {
	s := newListState()

	acts := s.Advance(ulFrame(0, "a"))
	if len(acts) != 1 || !acts[0].Open {
		t.Fatalf("first item should open one container, got %+v", acts)
	}
	if acts := s.Advance(ulFrame(0, "a")); len(acts) != 0 {
		t.Fatalf("same frame should continue the open container, got %+v", acts)
	}

	// jumping several levels deeper still opens a single container
	acts = s.Advance(ulFrame(2, "a"))
	if len(acts) != 1 || !acts[0].Open || acts[0].Frame.Level != 2 {
		t.Fatalf("expected one nested open at level 2, got %+v", acts)
	}
	if s.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", s.Depth())
	}

	// dropping to level 0 of another list closes both and opens fresh
	acts = s.Advance(ulFrame(0, "b"))
	if len(acts) != 3 || acts[0].Open || acts[1].Open || !acts[2].Open {
		t.Fatalf("expected close, close, open, got %+v", acts)
	}
	if s.Depth() != 1 || s.top().ListID != "b" {
		t.Fatalf("unexpected stack after switch: %+v", s.stack)
	}
}

func TestAdvanceKindChangeReopens(t *testing.T) {
	s := newListState()
	s.Advance(Frame{Kind: Unordered, Level: 0, ListID: "a"})

	acts := s.Advance(Frame{Kind: Ordered, Level: 0, ListID: "a"})
	if len(acts) != 2 || acts[0].Open || !acts[1].Open {
		t.Fatalf("kind change on the same level should reopen, got %+v", acts)
	}
	if s.top().Kind != Ordered {
		t.Errorf("top kind = %v, want Ordered", s.top().Kind)
	}
}

func TestAdvanceDirectionChangeReopens(t *testing.T) {
	s := newListState()
	s.Advance(Frame{Kind: Unordered, Level: 0, ListID: "a"})

	acts := s.Advance(Frame{Kind: Unordered, Level: 0, ListID: "a", RTL: true})
	if len(acts) != 2 || acts[0].Open || !acts[1].Open {
		t.Fatalf("direction change on the same level should reopen, got %+v", acts)
	}
}

func TestAdvanceMarkerChangeContinues(t *testing.T) {
	s := newListState()
	s.Advance(Frame{Kind: Unordered, Level: 0, ListID: "a"})

	if acts := s.Advance(Frame{Kind: Unordered, Level: 0, ListID: "a", Marker: "square"}); len(acts) != 0 {
		t.Fatalf("marker difference alone should not start a new list, got %+v", acts)
	}
}

func TestActionsStayBalanced(t *testing.T) {
	frames := []Frame{
		{Kind: Unordered, Level: 0, ListID: "a"},
		{Kind: Unordered, Level: 1, ListID: "a"},
		{Kind: Unordered, Level: 3, ListID: "a"},
		{Kind: Ordered, Level: 3, ListID: "b"},
		{Kind: Unordered, Level: 2, ListID: "a"},
		{Kind: Unordered, Level: 0, ListID: "a"},
		{Kind: Ordered, Level: 0, ListID: "c"},
	}

	s := newListState()
	opens, closes := 0, 0
	count := func(acts []Action) {
		for _, a := range acts {
			if a.Open {
				opens++
			} else {
				closes++
			}
		}
	}

	for _, f := range frames {
		count(s.Advance(f))
		for i := 1; i < len(s.stack); i++ {
			if s.stack[i].Level <= s.stack[i-1].Level {
				t.Fatalf("stack levels not strictly increasing: %+v", s.stack)
			}
		}
	}
	count(s.Flush())

	if opens != closes {
		t.Errorf("opens %d, closes %d, want balanced", opens, closes)
	}
	if s.Depth() != 0 {
		t.Errorf("stack depth after flush = %d, want 0", s.Depth())
	}
	if s.prevLevel != -1 {
		t.Errorf("prevLevel after flush = %d, want -1", s.prevLevel)
	}
}

func TestInferLevel(t *testing.T) {
	tests := []struct {
		name   string
		indent float64
		prev   int64
		want   int64
	}{
		{"no_indent", 0, -1, 0},
		{"first_level", 36, -1, 0},
		{"second_level", 72, -1, 1},
		{"deep_still_one", 108, 0, 1},
		{"midband_outside_list", 54, -1, 0},
		{"midband_continues_prev", 54, 1, 1},
		{"midband_continues_zero", 54, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferLevel(tt.indent, tt.prev); got != tt.want {
				t.Errorf("inferLevel(%v, %d) = %d, want %d", tt.indent, tt.prev, got, tt.want)
			}
		})
	}
}

func TestListKind(t *testing.T) {
	sym := func(s string) *gdocs.NestingLevel { return &gdocs.NestingLevel{GlyphSymbol: s} }
	typ := func(s string) *gdocs.NestingLevel { return &gdocs.NestingLevel{GlyphType: s} }

	tests := []struct {
		name  string
		glyph *gdocs.NestingLevel
		count int
		want  ListKind
	}{
		{"undeclared_list", nil, 3, Unordered},
		{"disc_symbol", sym("●"), 2, Unordered},
		{"decimal", typ(gdocs.GlyphTypeDecimal), 1, Ordered},
		{"upper_roman", typ(gdocs.GlyphTypeUpperRoman), 5, Ordered},
		{"unspecified_single_item", typ(gdocs.GlyphTypeUnspecified), 1, Ordered},
		{"unspecified_uncounted", typ(gdocs.GlyphTypeUnspecified), 0, Ordered},
		{"unspecified_many_items", typ(gdocs.GlyphTypeUnspecified), 2, Unordered},
		{"suppressed_marker", typ(gdocs.GlyphTypeNone), 1, Unordered},
		{"empty_type", typ(""), 1, Unordered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := listKind(tt.glyph, tt.count); got != tt.want {
				t.Errorf("listKind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarkerFor(t *testing.T) {
	sym := func(s string) *gdocs.NestingLevel { return &gdocs.NestingLevel{GlyphSymbol: s} }
	typ := func(s string) *gdocs.NestingLevel { return &gdocs.NestingLevel{GlyphType: s} }

	tests := []struct {
		name  string
		kind  ListKind
		glyph *gdocs.NestingLevel
		want  string
	}{
		{"disc_is_default", Unordered, sym("●"), ""},
		{"circle", Unordered, sym("○"), "circle"},
		{"square", Unordered, sym("■"), "square"},
		{"custom_symbol", Unordered, sym("-"), "'-'"},
		{"quoted_symbol", Unordered, sym("'"), `'\''`},
		{"backslash_symbol", Unordered, sym(`\`), `'\\'`},
		{"no_marker", Unordered, typ(gdocs.GlyphTypeNone), "none"},
		{"decimal_is_default", Ordered, typ(gdocs.GlyphTypeDecimal), ""},
		{"zero_decimal", Ordered, typ(gdocs.GlyphTypeZeroDecimal), "decimal-leading-zero"},
		{"alpha", Ordered, typ(gdocs.GlyphTypeAlpha), "lower-alpha"},
		{"upper_alpha", Ordered, typ(gdocs.GlyphTypeUpperAlpha), "upper-alpha"},
		{"roman", Ordered, typ(gdocs.GlyphTypeRoman), "lower-roman"},
		{"upper_roman", Ordered, typ(gdocs.GlyphTypeUpperRoman), "upper-roman"},
		{"undeclared", Unordered, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markerFor(tt.kind, tt.glyph); got != tt.want {
				t.Errorf("markerFor = %q, want %q", got, tt.want)
			}
		})
	}
}
