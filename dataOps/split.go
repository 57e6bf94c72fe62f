package dataops

import (
	"context"
	"fmt"

	"github.com/alekLukanen/dsutils/arrowOps"
	"github.com/alekLukanen/errs"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

const (
	MinSeed int64 = 0
	MaxSeed int64 = 1<<32 - 1
)

/*
* Draws one value per row from the source and marks the row true
* when the value is strictly less than the ratio.
 */
func BuildSplitMask(mem *memory.GoAllocator, numRows int, ratio float64, source IRandomSource) *array.Boolean {
	bldr := array.NewBooleanBuilder(mem)
	defer bldr.Release()

	bldr.Reserve(numRows)
	for i := 0; i < numRows; i++ {
		bldr.UnsafeAppend(source.Float64() < ratio)
	}

	return bldr.NewBooleanArray()
}

/*
* Partitions the rows of the record into train and test records using
* an independent draw per row. The relative order of rows is kept on
* both sides. Both returned records are owned by the caller.
 */
func Split(
	ctx context.Context,
	mem *memory.GoAllocator,
	record arrow.Record,
	ratio float64,
	source IRandomSource,
) (arrow.Record, arrow.Record, error) {
	if record == nil || record.NumRows() == 0 {
		return nil, nil, newInvalidInputError("split", MsgEmptySplit)
	}
	if !(ratio > 0 && ratio < 1) {
		return nil, nil, newInvalidInputError("split", MsgRatioOutOfRange)
	}

	mask := BuildSplitMask(mem, int(record.NumRows()), ratio, source)
	defer mask.Release()

	trainIndices := arrowops.MaskIndices(mem, mask, true)
	defer trainIndices.Release()
	testIndices := arrowops.MaskIndices(mem, mask, false)
	defer testIndices.Release()

	train, err := arrowops.TakeRecord(ctx, mem, record, trainIndices)
	if err != nil {
		return nil, nil, errs.Wrap(err, fmt.Errorf("taking train rows"))
	}
	test, err := arrowops.TakeRecord(ctx, mem, record, testIndices)
	if err != nil {
		train.Release()
		return nil, nil, errs.Wrap(err, fmt.Errorf("taking test rows"))
	}

	return train, test, nil
}

func SplitWithSeed(
	ctx context.Context,
	mem *memory.GoAllocator,
	record arrow.Record,
	ratio float64,
	seed int64,
) (arrow.Record, arrow.Record, error) {
	if seed < MinSeed || seed > MaxSeed {
		return nil, nil, newInvalidInputError("split", MsgSeedOutOfRange)
	}
	return Split(ctx, mem, record, ratio, NewSeededSource(uint32(seed)))
}
