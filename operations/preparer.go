package operations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alekLukanen/dsutils/dataOps"
	"github.com/alekLukanen/dsutils/elements"
	"github.com/alekLukanen/dsutils/storage"
	"github.com/alekLukanen/errs"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/google/uuid"
)

type IPreparer interface {
	TrainTestSplit(ctx context.Context, source string, options elements.SplitOptions) (SplitResult, error)
	NullCounter(ctx context.Context, source string) (arrow.Record, error)
}

// SplitResult holds the records when they were not saved, otherwise
// the locations they were written to.
type SplitResult struct {
	RunId     string
	Train     arrow.Record
	Test      arrow.Record
	TrainRows int64
	TestRows  int64
	Locations storage.SplitLocations
}

func (obj SplitResult) Saved() bool {
	return obj.Train == nil && obj.Test == nil
}

func (obj SplitResult) Release() {
	if obj.Train != nil {
		obj.Train.Release()
	}
	if obj.Test != nil {
		obj.Test.Release()
	}
}

type Preparer struct {
	logger *slog.Logger
	mem    *memory.GoAllocator

	loader storage.ILoader
	writer storage.ISplitWriter

	closers []func() error
}

/*
* The writer may be nil, in which case splits can only be returned
* to the caller.
 */
func NewPreparer(
	logger *slog.Logger,
	mem *memory.GoAllocator,
	loader storage.ILoader,
	writer storage.ISplitWriter,
) *Preparer {
	return &Preparer{
		logger: logger,
		mem:    mem,
		loader: loader,
		writer: writer,
	}
}

func (obj *Preparer) TrainTestSplit(ctx context.Context, source string, options elements.SplitOptions) (SplitResult, error) {
	runId := uuid.NewString()
	logger := obj.logger.With(slog.String("runId", runId), slog.String("source", source))

	if options.SaveTo && obj.writer == nil {
		return SplitResult{}, errs.Wrap(errs.NewStackError(fmt.Errorf("saving requested without a split writer")), ErrNoDestination)
	}

	record, err := obj.load(ctx, logger, source)
	if err != nil {
		return SplitResult{}, err
	}
	defer record.Release()

	train, test, err := dataops.SplitWithSeed(ctx, obj.mem, record, options.Ratio, options.Seed)
	if err != nil {
		return SplitResult{}, err
	}

	logger.Info(fmt.Sprintf("Training set contains %d rows", train.NumRows()), slog.Int64("trainRows", train.NumRows()))
	logger.Info(fmt.Sprintf("Testing set contains %d rows", test.NumRows()), slog.Int64("testRows", test.NumRows()))

	result := SplitResult{
		RunId:     runId,
		TrainRows: train.NumRows(),
		TestRows:  test.NumRows(),
	}
	if !options.SaveTo {
		result.Train = train
		result.Test = test
		return result, nil
	}

	defer train.Release()
	defer test.Release()
	locations, err := obj.writer.WriteSplit(ctx, train, test)
	if err != nil {
		logger.Error("failed to write split", slog.Any("error", err))
		return SplitResult{}, err
	}
	result.Locations = locations
	return result, nil
}

/*
* Returns the null summary record of the source and logs every column
* that has missing values.
 */
func (obj *Preparer) NullCounter(ctx context.Context, source string) (arrow.Record, error) {
	runId := uuid.NewString()
	logger := obj.logger.With(slog.String("runId", runId), slog.String("source", source))

	record, err := obj.load(ctx, logger, source)
	if err != nil {
		return nil, err
	}
	defer record.Release()

	summary, counts, err := dataops.CountNulls(obj.mem, record)
	if err != nil {
		return nil, err
	}

	for _, c := range counts {
		if c.Count == 0 {
			continue
		}
		logger.Info(
			fmt.Sprintf("%s: %d (%0.2f%%) missing values", c.Name, c.Count, c.Percent),
			slog.String("column", c.Name),
			slog.Int64("nulls", c.Count),
			slog.Float64("percent", c.Percent),
		)
	}

	return summary, nil
}

// Close releases connections opened by BuildPreparer.
func (obj *Preparer) Close() error {
	var err error
	for _, closeFunc := range obj.closers {
		if closeErr := closeFunc(); closeErr != nil && err == nil {
			err = errs.NewStackError(closeErr)
		}
	}
	obj.closers = nil
	return err
}

func (obj *Preparer) load(ctx context.Context, logger *slog.Logger, source string) (arrow.Record, error) {
	record, err := obj.loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	logger.Info(fmt.Sprintf("Successfully loaded data from %s", source), slog.Int64("numRows", record.NumRows()))
	return record, nil
}
