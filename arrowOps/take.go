package arrowops

import (
	"context"
	"fmt"

	"github.com/alekLukanen/errs"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/compute"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

/*
* Returns a net new record holding the rows at the given indices, in
* the order of the indices. Validity is carried over so null cells stay
* null in the taken record.
 */
func TakeRecord(ctx context.Context, mem *memory.GoAllocator, record arrow.Record, indices *array.Uint32) (arrow.Record, error) {
	for i := 0; i < indices.Len(); i++ {
		if int64(indices.Value(i)) >= record.NumRows() {
			return nil, errs.Wrap(errs.NewStackError(fmt.Errorf("index %d with %d rows", indices.Value(i), record.NumRows())), ErrIndexOutOfBounds)
		}
	}

	ctx = compute.WithAllocator(ctx, mem)
	takenColumns := make([]arrow.Array, record.NumCols())
	defer func() {
		for _, col := range takenColumns {
			if col != nil {
				col.Release()
			}
		}
	}()

	for i, col := range record.Columns() {
		taken, err := TakeArray(ctx, col, indices)
		if err != nil {
			return nil, errs.Wrap(err, fmt.Errorf("failed to take column %s", record.ColumnName(i)))
		}
		takenColumns[i] = taken
	}

	return array.NewRecord(record.Schema(), takenColumns, int64(indices.Len())), nil
}

func TakeArray(ctx context.Context, arr arrow.Array, indices *array.Uint32) (arrow.Array, error) {
	if arr.DataType().ID() == arrow.NULL {
		return array.NewNull(indices.Len()), nil
	}
	taken, err := compute.TakeArray(ctx, arr, indices)
	if err != nil {
		return nil, errs.Wrap(errs.NewStackError(fmt.Errorf("take on %s: %s", arr.DataType(), err)), ErrUnsupportedDataType)
	}
	return taken, nil
}

/*
* Returns the positions in the mask whose value equals selected. Null
* mask entries are never selected.
 */
func MaskIndices(mem *memory.GoAllocator, mask *array.Boolean, selected bool) *array.Uint32 {
	b := array.NewUint32Builder(mem)
	defer b.Release()
	for i := 0; i < mask.Len(); i++ {
		if mask.IsValid(i) && mask.Value(i) == selected {
			b.Append(uint32(i))
		}
	}
	return b.NewUint32Array()
}
