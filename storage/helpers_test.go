package storage

import (
	"log/slog"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

func testLogger() *slog.Logger {
	return slog.New(
		slog.NewJSONHandler(
			os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug},
		),
	)
}

// Feature 1=[100,-,50,-], Feature 2=[-,-,-,-], Response=[0,1,2,3]
func scenarioRecord(mem *memory.GoAllocator) arrow.Record {
	rb := array.NewRecordBuilder(mem, arrow.NewSchema(
		[]arrow.Field{
			{Name: "Feature 1", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
			{Name: "Feature 2", Type: arrow.BinaryTypes.String, Nullable: true},
			{Name: "Response", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		}, nil))
	defer rb.Release()

	rb.Field(0).(*array.Int64Builder).AppendValues([]int64{100, 0, 50, 0}, []bool{true, false, true, false})
	rb.Field(1).(*array.StringBuilder).AppendNulls(4)
	rb.Field(2).(*array.Int64Builder).AppendValues([]int64{0, 1, 2, 3}, nil)

	return rb.NewRecord()
}

const scenarioCSV = "Feature 1,Feature 2,Response\n100,,0\n,,1\n50,,2\n,,3\n"
