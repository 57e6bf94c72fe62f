package elements

import (
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

const (
	NullSummaryColumnName  = "Column Name"
	NullSummaryNullsColumn = "No. Nulls"
)

type ColumnNulls struct {
	Name    string
	Count   int64
	Percent float64
}

func NullSummarySchema() *arrow.Schema {
	return arrow.NewSchema(
		[]arrow.Field{
			{Name: NullSummaryColumnName, Type: arrow.BinaryTypes.String},
			{Name: NullSummaryNullsColumn, Type: arrow.PrimitiveTypes.Int64},
		},
		nil,
	)
}

// BuildNullSummaryRecord returns one row per entry in the order given.
func BuildNullSummaryRecord(mem *memory.GoAllocator, counts []ColumnNulls) arrow.Record {
	rb := array.NewRecordBuilder(mem, NullSummarySchema())
	defer rb.Release()

	nameBldr := rb.Field(0).(*array.StringBuilder)
	countBldr := rb.Field(1).(*array.Int64Builder)
	for _, c := range counts {
		nameBldr.Append(c.Name)
		countBldr.Append(c.Count)
	}

	return rb.NewRecord()
}
