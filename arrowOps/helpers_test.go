package arrowops

import (
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// every third value of column b is null
func mockData(mem *memory.GoAllocator, numRows int) arrow.Record {
	rb := array.NewRecordBuilder(mem, arrow.NewSchema(
		[]arrow.Field{
			{Name: "a", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
			{Name: "b", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
			{Name: "c", Type: arrow.BinaryTypes.String, Nullable: true},
		}, nil))
	defer rb.Release()

	for i := 0; i < numRows; i++ {
		rb.Field(0).(*array.Int64Builder).Append(int64(i))
		if i%3 == 2 {
			rb.Field(1).(*array.Float64Builder).AppendNull()
		} else {
			rb.Field(1).(*array.Float64Builder).Append(float64(i) / 2)
		}
		rb.Field(2).(*array.StringBuilder).Append(fmt.Sprintf("s%d", i))
	}
	return rb.NewRecord()
}
