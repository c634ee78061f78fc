package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bellsbalance/backend/pkg/model"
)

// csvTimeLayout is the export date format, fixed by the external format
// contract
const csvTimeLayout = "2006-01-02 15:04"

// ExportCSV renders all records as CSV, newest first. The byte format is
// a compatibility contract with external tools: fixed header, raw
// unquoted note text, true/false booleans, one trailing newline per row.
// encoding/csv is deliberately not used because it would quote fields
// and change the bytes.
func ExportCSV(records []model.IntakeRecord) string {
	sorted := make([]model.IntakeRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	var b strings.Builder
	b.WriteString("Date,Amount,Type,Effective,Note,Reminder\n")
	for _, r := range sorted {
		note := ""
		if r.Note != nil {
			note = *r.Note
		}
		fmt.Fprintf(&b, "%s,%d,%s,%d,%s,%t\n",
			r.Timestamp.Format(csvTimeLayout),
			r.Amount,
			r.DrinkType,
			r.EffectiveAmount(),
			note,
			r.IsReminderResponse,
		)
	}
	return b.String()
}
