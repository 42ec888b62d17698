package export

import (
	"strings"

	"gdex/gdocs"
)

// ListKind selects the HTML container element for a run of list items.
type ListKind int

const (
	Unordered ListKind = iota
	Ordered
)

func (k ListKind) Tag() string {
	if k == Ordered {
		return "ol"
	}
	return "ul"
}

// Frame describes one open list container. Marker is the list-style-type
// value, empty when the browser default is fine.
type Frame struct {
	Kind   ListKind
	Level  int64
	RTL    bool
	ListID string
	Marker string
}

// Matches reports whether an item belongs in the same container. Marker is
// deliberately not compared - glyph declarations repeat per level and a
// difference alone does not start a new list.
func (f Frame) Matches(o Frame) bool {
	return f.Kind == o.Kind && f.RTL == o.RTL && f.ListID == o.ListID
}

// Action tells the writer to open or close a single list container. Close
// actions always come before the open one.
type Action struct {
	Open  bool
	Frame Frame
}

// listState is the pure list reconciliation engine. The stack holds open
// containers with strictly increasing levels, prevLevel remembers the last
// item for the indentation heuristic and is -1 outside of any list.
type listState struct {
	stack     []Frame
	prevLevel int64
}

func newListState() *listState {
	return &listState{prevLevel: -1}
}

func (s *listState) Depth() int {
	return len(s.stack)
}

func (s *listState) top() Frame {
	return s.stack[len(s.stack)-1]
}

func (s *listState) pop() Frame {
	f := s.top()
	s.stack = s.stack[:len(s.stack)-1]
	return f
}

// Advance reconciles the stack with the next list item and returns actions in
// application order: deeper and mismatched containers close, then a new one
// opens when the item does not continue the container already on top.
func (s *listState) Advance(f Frame) []Action {
	var actions []Action
	for len(s.stack) > 0 && s.top().Level > f.Level {
		actions = append(actions, Action{Frame: s.pop()})
	}
	if len(s.stack) > 0 && s.top().Level == f.Level && !s.top().Matches(f) {
		actions = append(actions, Action{Frame: s.pop()})
	}
	if len(s.stack) == 0 || s.top().Level < f.Level {
		s.stack = append(s.stack, f)
		actions = append(actions, Action{Open: true, Frame: f})
	}
	s.prevLevel = f.Level
	return actions
}

// Flush closes every open container. Any non-list content does this first.
func (s *listState) Flush() []Action {
	actions := make([]Action, 0, len(s.stack))
	for len(s.stack) > 0 {
		actions = append(actions, Action{Frame: s.pop()})
	}
	s.prevLevel = -1
	return actions
}

// Bullet indentation heuristic for sources which carry no explicit nesting
// level. Docs indents level 0 items at 36pt and each deeper level 36pt
// further, the band between the thresholds continues the previous level.
const (
	indentLowPt  = 48.0
	indentHighPt = 60.0
)

func inferLevel(indentPt float64, prev int64) int64 {
	switch {
	case indentPt < indentLowPt:
		return 0
	case indentPt > indentHighPt:
		return 1
	case prev >= 0:
		return prev
	}
	return 0
}

// listKind decides between ordered and unordered rendering. count is the
// number of items the list has on the same declared level - when the glyph
// type stays unspecified a single item reads as a numbered list while several
// items read as bullets.
func listKind(glyph *gdocs.NestingLevel, count int) ListKind {
	if glyph == nil {
		return Unordered
	}
	if glyph.GlyphSymbol != "" {
		return Unordered
	}
	switch glyph.GlyphType {
	case gdocs.GlyphTypeDecimal, gdocs.GlyphTypeZeroDecimal,
		gdocs.GlyphTypeAlpha, gdocs.GlyphTypeUpperAlpha,
		gdocs.GlyphTypeRoman, gdocs.GlyphTypeUpperRoman:
		return Ordered
	case gdocs.GlyphTypeUnspecified:
		if count >= 2 {
			return Unordered
		}
		return Ordered
	}
	return Unordered
}

// markerFor maps a glyph declaration to a list-style-type value, empty when
// the browser default for the container kind already matches.
func markerFor(kind ListKind, glyph *gdocs.NestingLevel) string {
	if glyph == nil {
		return ""
	}
	if glyph.GlyphType == gdocs.GlyphTypeNone {
		return "none"
	}
	if kind == Ordered {
		switch glyph.GlyphType {
		case gdocs.GlyphTypeZeroDecimal:
			return "decimal-leading-zero"
		case gdocs.GlyphTypeAlpha:
			return "lower-alpha"
		case gdocs.GlyphTypeUpperAlpha:
			return "upper-alpha"
		case gdocs.GlyphTypeRoman:
			return "lower-roman"
		case gdocs.GlyphTypeUpperRoman:
			return "upper-roman"
		}
		return ""
	}
	switch glyph.GlyphSymbol {
	case "", "●":
		return ""
	case "○":
		return "circle"
	case "■":
		return "square"
	}
	return cssStringMarker(glyph.GlyphSymbol)
}

// cssStringMarker quotes an arbitrary bullet symbol as a CSS string so it can
// be used as list-style-type directly.
func cssStringMarker(symbol string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(symbol) + "'"
}
