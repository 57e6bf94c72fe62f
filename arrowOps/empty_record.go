package arrowops

import (
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

func EmptyRecord(mem *memory.GoAllocator, schema *arrow.Schema) arrow.Record {
	recordBuilder := array.NewRecordBuilder(mem, schema)
	defer recordBuilder.Release()
	return recordBuilder.NewRecord()
}
