package dataops

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSplitMask(t *testing.T) {
	mem := memory.NewGoAllocator()

	mask := BuildSplitMask(mem, 10, 0.5, NewSeededSource(42))
	defer mask.Release()

	expected := []bool{true, false, false, false, true, true, true, false, false, false}
	actual := make([]bool, mask.Len())
	for i := 0; i < mask.Len(); i++ {
		actual[i] = mask.Value(i)
	}
	assert.Equal(t, expected, actual)
	assert.Equal(t, 0, mask.NullN())
}

func TestBuildSplitMaskIsStrictlyLessThan(t *testing.T) {
	mem := memory.NewGoAllocator()

	mask := BuildSplitMask(mem, 3, 0.5, &fixedSource{values: []float64{0.5, 0.4999, 0.0}})
	defer mask.Release()

	assert.False(t, mask.Value(0))
	assert.True(t, mask.Value(1))
	assert.True(t, mask.Value(2))
}

func TestSplitScenario(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewGoAllocator()

	record := scenarioRecord(mem)
	defer record.Release()

	train, test, err := SplitWithSeed(ctx, mem, record, 0.75, 42)
	require.NoError(t, err)
	defer train.Release()
	defer test.Release()

	assert.Equal(t, int64(3), train.NumRows())
	assert.Equal(t, int64(1), test.NumRows())
	assert.Equal(t, []int64{0, 2, 3}, train.Column(2).(*array.Int64).Int64Values())
	assert.Equal(t, []int64{1}, test.Column(2).(*array.Int64).Int64Values())

	// missing cells travel with their rows
	assert.Equal(t, 1, train.Column(0).NullN())
	assert.Equal(t, 1, test.Column(0).NullN())
	assert.Equal(t, 3, train.Column(1).NullN())
	assert.True(t, train.Schema().Equal(record.Schema()))
	assert.True(t, test.Schema().Equal(record.Schema()))
}

func TestSplitPreservesRows(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewGoAllocator()

	testCases := []struct {
		numRows int
		ratio   float64
		seed    int64
	}{
		{numRows: 1, ratio: 0.5, seed: 42},
		{numRows: 10, ratio: 0.5, seed: 42},
		{numRows: 100, ratio: 0.7, seed: 0},
		{numRows: 257, ratio: 0.01, seed: 7},
		{numRows: 257, ratio: 0.99, seed: 4294967295},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("case_%d", idx), func(t *testing.T) {
			record := sequenceRecord(mem, tc.numRows)
			defer record.Release()

			train, test, err := SplitWithSeed(ctx, mem, record, tc.ratio, tc.seed)
			require.NoError(t, err)
			defer train.Release()
			defer test.Release()

			assert.Equal(t, record.NumRows(), train.NumRows()+test.NumRows())

			trainIds := train.Column(0).(*array.Int64).Int64Values()
			testIds := test.Column(0).(*array.Int64).Int64Values()
			assertIncreasing(t, trainIds)
			assertIncreasing(t, testIds)

			seen := make(map[int64]bool, tc.numRows)
			for _, id := range append(append([]int64{}, trainIds...), testIds...) {
				if seen[id] {
					t.Fatalf("row %d appears in both outputs", id)
				}
				seen[id] = true
			}
			assert.Len(t, seen, tc.numRows)

			// same inputs give the same partition
			train2, test2, err := SplitWithSeed(ctx, mem, record, tc.ratio, tc.seed)
			require.NoError(t, err)
			defer train2.Release()
			defer test2.Release()
			assert.True(t, array.RecordEqual(train, train2))
			assert.True(t, array.RecordEqual(test, test2))
		})
	}
}

func TestSplitMatchesMask(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewGoAllocator()

	record := sequenceRecord(mem, 10)
	defer record.Release()

	train, test, err := Split(ctx, mem, record, 0.5, NewSeededSource(42))
	require.NoError(t, err)
	defer train.Release()
	defer test.Release()

	assert.Equal(t, []int64{0, 4, 5, 6}, train.Column(0).(*array.Int64).Int64Values())
	assert.Equal(t, []int64{1, 2, 3, 7, 8, 9}, test.Column(0).(*array.Int64).Int64Values())
	assert.Equal(t, 0, train.Column(1).NullN())
	assert.Equal(t, 2, test.Column(1).NullN())
}

func TestSplitInvalidInput(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewGoAllocator()

	record := scenarioRecord(mem)
	defer record.Release()
	empty := emptyRecord(mem)
	defer empty.Release()

	testCases := []struct {
		caseName string
		record   arrow.Record
		ratio    float64
		seed     int64
		expMsg   string
	}{
		{caseName: "ratio-negative", record: record, ratio: -0.5, seed: 42, expMsg: MsgRatioOutOfRange},
		{caseName: "ratio-zero", record: record, ratio: 0, seed: 42, expMsg: MsgRatioOutOfRange},
		{caseName: "ratio-one", record: record, ratio: 1.0, seed: 42, expMsg: MsgRatioOutOfRange},
		{caseName: "ratio-above-one", record: record, ratio: 1.0001, seed: 42, expMsg: MsgRatioOutOfRange},
		{caseName: "empty", record: empty, ratio: 0.7, seed: 42, expMsg: MsgEmptySplit},
		{caseName: "empty-and-bad-ratio", record: empty, ratio: 2, seed: 42, expMsg: MsgEmptySplit},
		{caseName: "seed-negative", record: record, ratio: 0.7, seed: -1, expMsg: MsgSeedOutOfRange},
		{caseName: "seed-too-large", record: record, ratio: 0.7, seed: 1 << 32, expMsg: MsgSeedOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.caseName, func(t *testing.T) {
			train, test, err := SplitWithSeed(ctx, mem, tc.record, tc.ratio, tc.seed)
			assert.Nil(t, train)
			assert.Nil(t, test)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var invalidErr *InvalidInputError
			require.True(t, errors.As(err, &invalidErr))
			assert.Equal(t, tc.expMsg, invalidErr.Error())
			assert.Equal(t, "split", invalidErr.Operation)
		})
	}
}

func BenchmarkSplitWithSeed(b *testing.B) {
	ctx := context.Background()
	mem := memory.NewGoAllocator()

	record := sequenceRecord(mem, 100_000)
	defer record.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		train, test, err := SplitWithSeed(ctx, mem, record, 0.7, 42)
		if err != nil {
			b.Fatal(err)
		}
		train.Release()
		test.Release()
	}
}

func assertIncreasing(t *testing.T, values []int64) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			t.Fatalf("values not increasing at %d: %v", i, values)
		}
	}
}
