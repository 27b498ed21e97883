// Package export renders a visitor's selection as a quotation PDF and
// optionally archives a copy in object storage.
package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}    // near-black
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128} // gray-500
	colorBorder    = &props.Color{Red: 226, Green: 232, Blue: 240} // slate-200
	colorTableHead = &props.Color{Red: 241, Green: 245, Blue: 249} // slate-100
)

// QuoteLine is one selected item in insertion order. Kind tags the row
// as "service" or "package" next to the name.
type QuoteLine struct {
	Name       string
	Kind       string
	Quantity   int
	PriceCents int64
}

// QuotePDFData holds everything needed to render a quotation PDF.
type QuotePDFData struct {
	CatalogName   string
	CompanyName   string
	UseQuantities bool
	Lines         []QuoteLine
	TotalCents    int64
}

// GenerateQuotePDF renders the quotation document: catalog title,
// optional company line, the selected items in the order they were
// picked, and the grand total.
func GenerateQuotePDF(data QuotePDFData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(14).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRows(buildTitle(data)...)
	m.AddRows(row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	}))
	m.AddRows(row.New(4))

	m.AddRows(buildLinesTable(data)...)
	m.AddRows(row.New(4))
	m.AddRows(buildTotalRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func buildTitle(data QuotePDFData) []core.Row {
	rows := []core.Row{
		row.New(12).Add(
			col.New(12).Add(text.New(data.CatalogName, props.Text{
				Size:  18,
				Style: fontstyle.Bold,
				Align: align.Center,
				Color: colorPrimary,
			})),
		),
	}

	if data.CompanyName != "" {
		rows = append(rows, row.New(7).Add(
			col.New(12).Add(text.New("Empresa: "+data.CompanyName, props.Text{
				Size:  11,
				Color: colorSecondary,
			})),
		))
	}

	return rows
}

func buildLinesTable(data QuotePDFData) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(8).Add(
		col.New(12).Add(text.New("Seleccionados", props.Text{
			Size:  11,
			Style: fontstyle.Bold,
			Color: colorPrimary,
		})),
	))

	headerStyle := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary, Top: 1.5}
	headerStyleRight := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 1.5}

	// Quantities get their own column only when the session uses them.
	if data.UseQuantities {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New("N°", headerStyle)),
			col.New(7).Add(text.New("Item", headerStyle)),
			col.New(1).Add(text.New("Cant.", headerStyle)),
			col.New(3).Add(text.New("Precio (S/.)", headerStyleRight)),
		).WithStyle(&props.Cell{BackgroundColor: colorTableHead}))
	} else {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New("N°", headerStyle)),
			col.New(8).Add(text.New("Item", headerStyle)),
			col.New(3).Add(text.New("Precio (S/.)", headerStyleRight)),
		).WithStyle(&props.Cell{BackgroundColor: colorTableHead}))
	}

	cellStyle := props.Text{Size: 8.5, Color: colorPrimary, Top: 1.5}
	cellStyleRight := props.Text{Size: 8.5, Color: colorPrimary, Align: align.Right, Top: 1.5}

	for i, line := range data.Lines {
		price := line.PriceCents
		if data.UseQuantities {
			price = line.PriceCents * int64(line.Quantity)
		}

		label := line.Name + " (" + line.Kind + ")"

		if data.UseQuantities {
			rows = append(rows, row.New(6).Add(
				col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), cellStyle)),
				col.New(7).Add(text.New(label, cellStyle)),
				col.New(1).Add(text.New(fmt.Sprintf("%d", line.Quantity), cellStyle)),
				col.New(3).Add(text.New(FormatMoney(price), cellStyleRight)),
			))
		} else {
			rows = append(rows, row.New(6).Add(
				col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), cellStyle)),
				col.New(8).Add(text.New(label, cellStyle)),
				col.New(3).Add(text.New(FormatMoney(price), cellStyleRight)),
			))
		}
	}

	return rows
}

func buildTotalRow(data QuotePDFData) core.Row {
	return row.New(8).Add(
		col.New(9).Add(text.New("Total:", props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Right,
			Color: colorPrimary,
		})),
		col.New(3).Add(text.New("S/. "+FormatMoney(data.TotalCents), props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Right,
			Color: colorPrimary,
		})),
	)
}

// FormatMoney renders cents with two decimal places.
func FormatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
