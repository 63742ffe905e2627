// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders fiber-count records: a one-page PDF table, a
// console table, and a YAML export. An absent count renders as "n/a" so it
// cannot be mistaken for a true zero.
package report

import (
	"strconv"

	"github.com/pdiddy/tract-engine/pkg/types"
)

// absentCell marks an unknown count in rendered tables.
const absentCell = "n/a"

var columns = []string{"TCK File", "Fiber Count"}

// countCell renders a count value for table output.
func countCell(c types.FiberCount) string {
	if !c.Known() {
		return absentCell
	}
	return strconv.FormatInt(*c.Count, 10)
}
