package gdocs

import (
	"reflect"
	"testing"
)

func TestMergeTextStyles(t *testing.T) {
	t.Run("override wins per field", func(t *testing.T) {
		base := &TextStyle{
			Bold:     boolPtr(true),
			FontSize: &Dimension{Magnitude: 11, Unit: "PT"},
			WeightedFontFamily: &WeightedFontFamily{
				FontFamily: "Arial",
				Weight:     400,
			},
		}
		over := &TextStyle{
			Bold:     boolPtr(false),
			Italic:   boolPtr(true),
			FontSize: &Dimension{Magnitude: 14, Unit: "PT"},
		}
		got := MergeTextStyles(base, over)
		if Flag(got.Bold) {
			t.Fatal("override bold=false should win")
		}
		if !Flag(got.Italic) {
			t.Fatal("italic from override missing")
		}
		if got.FontSize.Points() != 14 {
			t.Fatalf("font size = %g, want 14", got.FontSize.Points())
		}
		if got.WeightedFontFamily == nil || got.WeightedFontFamily.FontFamily != "Arial" {
			t.Fatal("base font family should survive")
		}
	})

	t.Run("absent fields keep base values", func(t *testing.T) {
		base := &TextStyle{
			Underline:      boolPtr(true),
			BaselineOffset: BaselineSuperscript,
			ForegroundColor: &OptionalColor{
				Color: &Color{RgbColor: &RgbColor{Red: 1}},
			},
		}
		got := MergeTextStyles(base, &TextStyle{})
		if !Flag(got.Underline) || got.BaselineOffset != BaselineSuperscript {
			t.Fatalf("base fields lost: %+v", got)
		}
		if r, _, _, ok := RGB(got.ForegroundColor); !ok || r != 1 {
			t.Fatalf("base color lost: %+v", got.ForegroundColor)
		}
	})

	t.Run("colors replace as a whole", func(t *testing.T) {
		base := &TextStyle{ForegroundColor: &OptionalColor{Color: &Color{RgbColor: &RgbColor{Red: 1}}}}
		over := &TextStyle{ForegroundColor: &OptionalColor{Color: &Color{RgbColor: &RgbColor{Blue: 1}}}}
		r, g, b, ok := RGB(MergeTextStyles(base, over).ForegroundColor)
		if !ok || r != 0 || g != 0 || b != 1 {
			t.Fatalf("merged color = %g %g %g, want pure blue", r, g, b)
		}
	})

	t.Run("explicitly unset color overrides", func(t *testing.T) {
		base := &TextStyle{ForegroundColor: &OptionalColor{Color: &Color{RgbColor: &RgbColor{Red: 1}}}}
		over := &TextStyle{ForegroundColor: &OptionalColor{}}
		if _, _, _, ok := RGB(MergeTextStyles(base, over).ForegroundColor); ok {
			t.Fatal("override with empty optional color should clear the value")
		}
	})

	t.Run("nil sides", func(t *testing.T) {
		if got := MergeTextStyles(nil, nil); got != nil {
			t.Fatalf("nil merge = %+v", got)
		}
		over := &TextStyle{Bold: boolPtr(true)}
		if got := MergeTextStyles(nil, over); !Flag(got.Bold) {
			t.Fatal("override alone should pass through")
		}
		base := &TextStyle{Italic: boolPtr(true)}
		if got := MergeTextStyles(base, nil); !Flag(got.Italic) {
			t.Fatal("base alone should pass through")
		}
	})
}

func TestMergeIsCopyOnWrite(t *testing.T) {
	base := &TextStyle{
		Bold:            boolPtr(true),
		FontSize:        &Dimension{Magnitude: 11, Unit: "PT"},
		ForegroundColor: &OptionalColor{Color: &Color{RgbColor: &RgbColor{Red: 0.5}}},
		Link:            &Link{URL: "https://example.com/"},
	}
	snapshot := CloneTextStyle(base)

	merged := MergeTextStyles(base, &TextStyle{Bold: boolPtr(false), FontSize: &Dimension{Magnitude: 20, Unit: "PT"}})
	*merged.Bold = true
	merged.FontSize.Magnitude = 99
	merged.ForegroundColor.Color.RgbColor.Red = 0.9
	merged.Link.URL = "mutated"

	if !reflect.DeepEqual(base, snapshot) {
		t.Fatalf("merge mutated its input:\nbefore %+v\nafter  %+v", snapshot, base)
	}
}

func TestMergeIdentity(t *testing.T) {
	orig := &ParagraphStyle{
		NamedStyleType: StyleHeading2,
		Alignment:      AlignCenter,
		LineSpacing:    float64Ptr(115),
		SpaceAbove:     &Dimension{Magnitude: 18, Unit: "PT"},
		BorderBottom: &ParagraphBorder{
			Width:     &Dimension{Magnitude: 1, Unit: "PT"},
			DashStyle: "SOLID",
		},
	}
	got := MergeParagraphStyles(CloneParagraphStyle(orig), nil)
	if !reflect.DeepEqual(got, orig) {
		t.Fatalf("identity merge changed the style:\ngot  %+v\nwant %+v", got, orig)
	}
}

func TestMergeParagraphStyles(t *testing.T) {
	t.Run("scalar overrides", func(t *testing.T) {
		base := &ParagraphStyle{Alignment: AlignStart, LineSpacing: float64Ptr(100), Direction: "CONTENT_DIRECTION_LEFT_TO_RIGHT"}
		over := &ParagraphStyle{Alignment: AlignCenter, LineSpacing: float64Ptr(150)}
		got := MergeParagraphStyles(base, over)
		if got.Alignment != AlignCenter || *got.LineSpacing != 150 {
			t.Fatalf("override lost: %+v", got)
		}
		if got.Direction != "CONTENT_DIRECTION_LEFT_TO_RIGHT" {
			t.Fatal("base direction should survive")
		}
	})

	t.Run("nested border merge", func(t *testing.T) {
		base := &ParagraphStyle{BorderTop: &ParagraphBorder{
			Width:     &Dimension{Magnitude: 2, Unit: "PT"},
			DashStyle: "DOT",
		}}
		over := &ParagraphStyle{BorderTop: &ParagraphBorder{
			Color: &OptionalColor{Color: &Color{RgbColor: &RgbColor{Green: 1}}},
		}}
		got := MergeParagraphStyles(base, over)
		if got.BorderTop.Width.Points() != 2 || got.BorderTop.DashStyle != "DOT" {
			t.Fatalf("base border fields lost: %+v", got.BorderTop)
		}
		if _, g, _, ok := RGB(got.BorderTop.Color); !ok || g != 1 {
			t.Fatalf("override border color lost: %+v", got.BorderTop)
		}
	})

	t.Run("shading", func(t *testing.T) {
		over := &ParagraphStyle{Shading: &Shading{
			BackgroundColor: &OptionalColor{Color: &Color{RgbColor: &RgbColor{Red: 1, Green: 1}}},
		}}
		got := MergeParagraphStyles(&ParagraphStyle{}, over)
		if r, g, _, ok := RGB(got.Shading.BackgroundColor); !ok || r != 1 || g != 1 {
			t.Fatalf("shading lost: %+v", got.Shading)
		}
	})
}

func TestStyleMapResolveParagraph(t *testing.T) {
	doc := &Document{NamedStyles: &NamedStyles{Styles: []NamedStyle{
		{
			NamedStyleType: StyleNormalText,
			ParagraphStyle: &ParagraphStyle{Alignment: AlignStart, LineSpacing: float64Ptr(115)},
			TextStyle:      &TextStyle{FontSize: &Dimension{Magnitude: 11, Unit: "PT"}},
		},
		{
			NamedStyleType: StyleHeading1,
			ParagraphStyle: &ParagraphStyle{SpaceAbove: &Dimension{Magnitude: 20, Unit: "PT"}},
			TextStyle:      &TextStyle{FontSize: &Dimension{Magnitude: 20, Unit: "PT"}},
		},
	}}}
	m := NewStyleMap(doc)

	t.Run("named base under paragraph override", func(t *testing.T) {
		p := &Paragraph{ParagraphStyle: &ParagraphStyle{
			NamedStyleType: StyleNormalText,
			Alignment:      AlignCenter,
		}}
		got := m.ResolveParagraph(p)
		if got.Alignment != AlignCenter {
			t.Fatalf("alignment = %q, want CENTER", got.Alignment)
		}
		if got.LineSpacing == nil || *got.LineSpacing != 115 {
			t.Fatalf("line spacing from named style lost: %+v", got)
		}
	})

	t.Run("missing named style falls back to overrides only", func(t *testing.T) {
		p := &Paragraph{ParagraphStyle: &ParagraphStyle{
			NamedStyleType: "HEADING_9",
			Alignment:      AlignEnd,
		}}
		got := m.ResolveParagraph(p)
		if got.Alignment != AlignEnd || got.LineSpacing != nil {
			t.Fatalf("unexpected resolution %+v", got)
		}
	})

	t.Run("paragraph without style resolves to normal text", func(t *testing.T) {
		got := m.ResolveParagraph(&Paragraph{})
		if got.Alignment != AlignStart {
			t.Fatalf("expected NORMAL_TEXT base, got %+v", got)
		}
	})

	t.Run("never nil", func(t *testing.T) {
		empty := NewStyleMap(&Document{})
		if got := empty.ResolveParagraph(&Paragraph{}); got == nil {
			t.Fatal("ResolveParagraph returned nil")
		}
	})
}

func TestStyleMapResolveText(t *testing.T) {
	doc := &Document{NamedStyles: &NamedStyles{Styles: []NamedStyle{
		{
			NamedStyleType: StyleHeading2,
			TextStyle:      &TextStyle{FontSize: &Dimension{Magnitude: 16, Unit: "PT"}, Bold: boolPtr(true)},
		},
	}}}
	m := NewStyleMap(doc)
	p := &Paragraph{ParagraphStyle: &ParagraphStyle{NamedStyleType: StyleHeading2}}

	base := m.NamedText(p)
	got := m.ResolveText(base, &TextStyle{Italic: boolPtr(true)})
	if !Flag(got.Bold) || !Flag(got.Italic) {
		t.Fatalf("cascade lost a layer: %+v", got)
	}
	if got.FontSize.Points() != 16 {
		t.Fatalf("font size = %g, want 16", got.FontSize.Points())
	}

	run := &TextStyle{FontSize: &Dimension{Magnitude: 9, Unit: "PT"}}
	if got := m.ResolveText(base, run); got.FontSize.Points() != 9 {
		t.Fatalf("run font size should win, got %g", got.FontSize.Points())
	}
}

func TestFlagAndRGB(t *testing.T) {
	if Flag(nil) {
		t.Fatal("nil flag should be false")
	}
	if !Flag(boolPtr(true)) || Flag(boolPtr(false)) {
		t.Fatal("flag value mismatch")
	}

	if _, _, _, ok := RGB(nil); ok {
		t.Fatal("nil optional color should not resolve")
	}
	if _, _, _, ok := RGB(&OptionalColor{}); ok {
		t.Fatal("empty optional color should not resolve")
	}
	r, g, b, ok := RGB(&OptionalColor{Color: &Color{RgbColor: &RgbColor{Red: 0.25, Green: 0.5, Blue: 0.75}}})
	if !ok || r != 0.25 || g != 0.5 || b != 0.75 {
		t.Fatalf("RGB = %g %g %g %t", r, g, b, ok)
	}
}
