package dataops

import (
	"github.com/alekLukanen/dsutils/elements"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

func CountColumnNulls(record arrow.Record) []elements.ColumnNulls {
	numRows := record.NumRows()
	counts := make([]elements.ColumnNulls, record.NumCols())
	for idx, col := range record.Columns() {
		nulls := int64(col.NullN())
		counts[idx] = elements.ColumnNulls{
			Name:    record.ColumnName(idx),
			Count:   nulls,
			Percent: 100 * float64(nulls) / float64(numRows),
		}
	}
	return counts
}

/*
* Counts the missing cells of every column. The summary record has one
* row per input column, in input column order.
 */
func CountNulls(mem *memory.GoAllocator, record arrow.Record) (arrow.Record, []elements.ColumnNulls, error) {
	if record == nil || record.NumRows() == 0 {
		return nil, nil, newInvalidInputError("count nulls", MsgEmptyNullCount)
	}

	counts := CountColumnNulls(record)
	return elements.BuildNullSummaryRecord(mem, counts), counts, nil
}
