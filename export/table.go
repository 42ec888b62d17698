package export

import (
	"context"
	"strconv"

	"github.com/beevik/etree"

	"gdex/css"
	"gdex/gdocs"
)

// cellBorder is the default grid every cell starts with, matching how the
// editor draws tables. Declared cell borders override it side by side.
const cellBorder = "1px solid #ccc"

// renderTable renders a table block. Cell content is a full block stream and
// nests through renderBlocks, so each cell starts with its own list state.
func (r *Renderer) renderTable(ctx context.Context, host *etree.Element, t *gdocs.Table) error {
	table := host.CreateElement("table")
	table.CreateAttr("class", "doc-table")
	table.CreateAttr("style", "border-collapse:collapse;border:"+cellBorder+";")

	for ri := range t.TableRows {
		row := &t.TableRows[ri]
		tr := table.CreateElement("tr")
		if row.TableRowStyle != nil {
			if h := css.PtToPx(row.TableRowStyle.MinRowHeight.Points()); h > 0 {
				tr.CreateAttr("style", "height:"+css.Px(h)+";")
			}
		}
		for ci := range row.TableCells {
			if err := r.renderCell(ctx, tr, &row.TableCells[ci]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) renderCell(ctx context.Context, tr *etree.Element, cell *gdocs.TableCell) error {
	td := tr.CreateElement("td")

	if s := cell.TableCellStyle; s != nil {
		if s.ColumnSpan > 1 {
			td.CreateAttr("colspan", strconv.FormatInt(s.ColumnSpan, 10))
		}
		if s.RowSpan > 1 {
			td.CreateAttr("rowspan", strconv.FormatInt(s.RowSpan, 10))
		}
	}

	var st css.Inline
	st.Add("border", cellBorder)
	st.Add("padding", "0.5em")
	if s := cell.TableCellStyle; s != nil {
		if r, g, b, ok := gdocs.RGB(s.BackgroundColor); ok {
			st.Add("background-color", css.HexRGB(r, g, b))
		}
		addCellBorders(&st, s)
		addCellPaddings(&st, s)
	}
	td.CreateAttr("style", st.String())

	return r.renderBlocks(ctx, td, cell.Content)
}

func addCellBorders(st *css.Inline, s *gdocs.TableCellStyle) {
	for _, b := range []struct {
		side   string
		border *gdocs.TableCellBorder
	}{
		{"top", s.BorderTop},
		{"bottom", s.BorderBottom},
		{"left", s.BorderLeft},
		{"right", s.BorderRight},
	} {
		if b.border == nil || b.border.Width.Points() <= 0 {
			continue
		}
		hex := "#000000"
		if cr, cg, cb, ok := gdocs.RGB(b.border.Color); ok {
			hex = css.HexRGB(cr, cg, cb)
		}
		st.Add("border-"+b.side, css.Border(b.border.Width.Points(), b.border.DashStyle, hex))
	}
}

func addCellPaddings(st *css.Inline, s *gdocs.TableCellStyle) {
	for _, p := range []struct {
		side string
		dim  *gdocs.Dimension
	}{
		{"top", s.PaddingTop},
		{"bottom", s.PaddingBottom},
		{"left", s.PaddingLeft},
		{"right", s.PaddingRight},
	} {
		st.AddPx("padding-"+p.side, css.PtToPx(p.dim.Points()))
	}
}
