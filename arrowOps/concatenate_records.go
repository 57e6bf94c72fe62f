package arrowops

import (
	"fmt"

	"github.com/alekLukanen/errs"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

/*
* Concatenates the records, in order, into a single net new record.
* All records must share the same schema. The input records are not
* released.
 */
func ConcatenateRecords(mem *memory.GoAllocator, records ...arrow.Record) (arrow.Record, error) {
	if len(records) == 0 {
		return nil, errs.Wrap(errs.NewStackError(fmt.Errorf("expected at least one record but received 0")), ErrNoDataSupplied)
	}
	schema := records[0].Schema()
	for idx, record := range records {
		if !schema.Equal(record.Schema()) {
			return nil, errs.Wrap(errs.NewStackError(fmt.Errorf("record %d differs from record 0", idx)), ErrSchemasNotEqual)
		}
	}

	// group the columns of the same index together so that
	// each group can be concatenated into one array
	numRows := int64(0)
	fields := make([][]arrow.Array, schema.NumFields())
	for i := range fields {
		fields[i] = make([]arrow.Array, len(records))
	}
	for recordIdx, record := range records {
		numRows += record.NumRows()
		for i := 0; i < schema.NumFields(); i++ {
			fields[i][recordIdx] = record.Column(i)
		}
	}

	columns := make([]arrow.Array, schema.NumFields())
	defer func() {
		for _, col := range columns {
			if col != nil {
				col.Release()
			}
		}
	}()
	for i := range fields {
		col, err := array.Concatenate(fields[i], mem)
		if err != nil {
			return nil, errs.Wrap(err, fmt.Errorf("failed to concatenate column %s", schema.Field(i).Name))
		}
		columns[i] = col
	}

	return array.NewRecord(schema, columns, numRows), nil
}
