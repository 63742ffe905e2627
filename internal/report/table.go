// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pdiddy/tract-engine/pkg/types"
)

// RenderTable renders the fiber-count records as a console table.
func RenderTable(records []types.FiberCount) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{columns[0], columns[1]})

	for _, r := range records {
		tw.AppendRow(table.Row{r.Label, countCell(r)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
