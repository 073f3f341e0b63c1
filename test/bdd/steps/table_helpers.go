package steps

import (
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"
)

// tableRecords maps every data row of a table to its header names
func tableRecords(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) < 2 {
		return nil, fmt.Errorf("table needs a header and at least one row")
	}
	header := table.Rows[0]
	records := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		records = append(records, rowRecord(header, row))
	}
	return records, nil
}

func rowRecord(header, row *messages.PickleTableRow) map[string]string {
	record := make(map[string]string, len(header.Cells))
	for i, cell := range header.Cells {
		if i < len(row.Cells) {
			record[cell.Value] = row.Cells[i].Value
		}
	}
	return record
}

func intField(record map[string]string, name string) (int, error) {
	v, err := strconv.Atoi(record[name])
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	return v, nil
}
