package dataops

import (
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// Feature 1=[100,-,50,-], Feature 2=[-,-,-,-], Response=[0,1,2,3]
func scenarioRecord(mem *memory.GoAllocator) arrow.Record {
	rb := array.NewRecordBuilder(mem, arrow.NewSchema(
		[]arrow.Field{
			{Name: "Feature 1", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
			{Name: "Feature 2", Type: arrow.BinaryTypes.String, Nullable: true},
			{Name: "Response", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		}, nil))
	defer rb.Release()

	rb.Field(0).(*array.Float64Builder).AppendValues([]float64{100, 0, 50, 0}, []bool{true, false, true, false})
	rb.Field(1).(*array.StringBuilder).AppendNulls(4)
	rb.Field(2).(*array.Int64Builder).AppendValues([]int64{0, 1, 2, 3}, nil)

	return rb.NewRecord()
}

func sequenceRecord(mem *memory.GoAllocator, numRows int) arrow.Record {
	rb := array.NewRecordBuilder(mem, arrow.NewSchema(
		[]arrow.Field{
			{Name: "id", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
			{Name: "value", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		}, nil))
	defer rb.Release()

	for i := 0; i < numRows; i++ {
		rb.Field(0).(*array.Int64Builder).Append(int64(i))
		if i%4 == 3 {
			rb.Field(1).(*array.Float64Builder).AppendNull()
		} else {
			rb.Field(1).(*array.Float64Builder).Append(float64(i) * 1.5)
		}
	}

	return rb.NewRecord()
}

func emptyRecord(mem *memory.GoAllocator) arrow.Record {
	rb := array.NewRecordBuilder(mem, arrow.NewSchema(
		[]arrow.Field{{Name: "a", Type: arrow.PrimitiveTypes.Int64, Nullable: true}}, nil))
	defer rb.Release()
	return rb.NewRecord()
}

type fixedSource struct {
	values []float64
	idx    int
}

func (obj *fixedSource) Float64() float64 {
	val := obj.values[obj.idx%len(obj.values)]
	obj.idx++
	return val
}
