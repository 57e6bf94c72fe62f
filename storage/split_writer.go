package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"time"

	"github.com/alekLukanen/dsutils/arrowOps"
	"github.com/alekLukanen/errs"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

const (
	DefaultDestinationLocation = "."
	DefaultTrainName           = "training"
	DefaultTestName            = "testing"
	DefaultLockDuration        = 5 * time.Minute
)

// Destination describes where and how the two split outputs are persisted.
type Destination struct {
	// local directory or s3://bucket/prefix
	Location  string
	Format    arrowops.Format
	TrainName string
	TestName  string
}

func NewDestination() Destination {
	return Destination{
		Location:  DefaultDestinationLocation,
		Format:    arrowops.FormatCSV,
		TrainName: DefaultTrainName,
		TestName:  DefaultTestName,
	}
}

func (obj Destination) withDefaults() Destination {
	def := NewDestination()
	if obj.Location == "" {
		obj.Location = def.Location
	}
	if obj.Format == "" {
		obj.Format = def.Format
	}
	if obj.TrainName == "" {
		obj.TrainName = def.TrainName
	}
	if obj.TestName == "" {
		obj.TestName = def.TestName
	}
	return obj
}

func (obj Destination) IsValid() error {
	dest := obj.withDefaults()
	if _, err := arrowops.ParseFormat(string(dest.Format)); err != nil {
		return errs.Wrap(errs.NewStackError(fmt.Errorf("format %q", dest.Format)), ErrDestinationInvalid, err)
	}
	if dest.TrainName == dest.TestName {
		return errs.Wrap(errs.NewStackError(fmt.Errorf("train and test names are both %q", dest.TrainName)), ErrDestinationInvalid)
	}
	if IsObjectURI(dest.Location) {
		if _, err := ParseObjectURI(dest.Location); err != nil {
			return errs.Wrap(errs.NewStackError(fmt.Errorf("location %s", dest.Location)), ErrDestinationInvalid, err)
		}
	}
	return nil
}

func (obj Destination) TrainFile() string {
	dest := obj.withDefaults()
	return dest.TrainName + dest.Format.Extension()
}

func (obj Destination) TestFile() string {
	dest := obj.withDefaults()
	return dest.TestName + dest.Format.Extension()
}

type SplitLocations struct {
	Train string
	Test  string
}

type ISplitWriter interface {
	WriteSplit(ctx context.Context, train, test arrow.Record) (SplitLocations, error)
}

type SplitWriterOptions struct {
	Destination Destination
	// how long the destination lock is held at most
	LockDuration time.Duration
}

type SplitWriter struct {
	logger        *slog.Logger
	mem           *memory.GoAllocator
	objectStorage IObjectStorage
	lockStorage   ILockStorage

	destination  Destination
	lockDuration time.Duration
}

/*
* Creates a writer for the destination in the options. The object
* storage is only needed for s3:// locations and the lock storage is
* optional; without it writes are not coordinated.
 */
func NewSplitWriter(
	ctx context.Context,
	logger *slog.Logger,
	mem *memory.GoAllocator,
	objectStorage IObjectStorage,
	lockStorage ILockStorage,
	options SplitWriterOptions,
) *SplitWriter {
	lockDuration := options.LockDuration
	if lockDuration <= 0 {
		lockDuration = DefaultLockDuration
	}
	return &SplitWriter{
		logger:        logger,
		mem:           mem,
		objectStorage: objectStorage,
		lockStorage:   lockStorage,
		destination:   options.Destination.withDefaults(),
		lockDuration:  lockDuration,
	}
}

func (obj *SplitWriter) Destination() Destination {
	return obj.destination
}

/*
* Encodes both records in the destination format and writes them next
* to each other. Both records must have the same schema.
 */
func (obj *SplitWriter) WriteSplit(ctx context.Context, train, test arrow.Record) (SplitLocations, error) {
	if err := obj.destination.IsValid(); err != nil {
		return SplitLocations{}, err
	}
	if !arrowops.RecordSchemasEqual(train, test) {
		return SplitLocations{}, errs.Wrap(
			errs.NewStackError(fmt.Errorf("\n train.schema: %s\n test.schema: %s", train.Schema(), test.Schema())),
			ErrSplitSchemaMismatch,
		)
	}

	if obj.lockStorage != nil {
		lock, err := obj.lockStorage.ClaimDestination(ctx, obj.destination.Location, obj.lockDuration)
		if err != nil {
			return SplitLocations{}, errs.Wrap(
				errs.NewStackError(fmt.Errorf("destination %s", obj.destination.Location)),
				ErrDestinationLocked,
				err,
			)
		}
		defer func() {
			if _, err := obj.lockStorage.ReleaseLock(ctx, lock); err != nil {
				obj.logger.Warn("failed to release destination lock", slog.String("lock", lock.Name()), slog.Any("error", err))
			}
		}()
	}

	trainData, err := arrowops.EncodeRecord(ctx, obj.mem, train, obj.destination.Format)
	if err != nil {
		return SplitLocations{}, errs.Wrap(err, fmt.Errorf("train records"))
	}
	testData, err := arrowops.EncodeRecord(ctx, obj.mem, test, obj.destination.Format)
	if err != nil {
		return SplitLocations{}, errs.Wrap(err, fmt.Errorf("test records"))
	}

	var locations SplitLocations
	if IsObjectURI(obj.destination.Location) {
		locations, err = obj.upload(ctx, trainData, testData)
	} else {
		locations, err = obj.writeFiles(trainData, testData)
	}
	if err != nil {
		return SplitLocations{}, err
	}

	obj.logger.Info(
		"wrote split",
		slog.String("train", locations.Train),
		slog.Int64("trainRows", train.NumRows()),
		slog.String("test", locations.Test),
		slog.Int64("testRows", test.NumRows()),
	)
	return locations, nil
}

func (obj *SplitWriter) writeFiles(trainData, testData []byte) (SplitLocations, error) {
	if err := os.MkdirAll(obj.destination.Location, 0o755); err != nil {
		return SplitLocations{}, errs.NewStackError(err)
	}

	locations := SplitLocations{
		Train: filepath.Join(obj.destination.Location, obj.destination.TrainFile()),
		Test:  filepath.Join(obj.destination.Location, obj.destination.TestFile()),
	}
	if err := os.WriteFile(locations.Train, trainData, 0o644); err != nil {
		return SplitLocations{}, errs.NewStackError(err)
	}
	if err := os.WriteFile(locations.Test, testData, 0o644); err != nil {
		if rmErr := os.Remove(locations.Train); rmErr != nil {
			obj.logger.Error("failed to remove train file", slog.String("file", locations.Train), slog.Any("error", rmErr))
		}
		return SplitLocations{}, errs.NewStackError(err)
	}
	return locations, nil
}

func (obj *SplitWriter) upload(ctx context.Context, trainData, testData []byte) (SplitLocations, error) {
	if obj.objectStorage == nil {
		return SplitLocations{}, errs.Wrap(errs.NewStackError(fmt.Errorf("destination: %s", obj.destination.Location)), ErrNoObjectStorage)
	}
	prefix, err := ParseObjectURI(obj.destination.Location)
	if err != nil {
		return SplitLocations{}, err
	}

	trainLoc := ObjectLocation{Bucket: prefix.Bucket, Key: path.Join(prefix.Key, obj.destination.TrainFile())}
	testLoc := ObjectLocation{Bucket: prefix.Bucket, Key: path.Join(prefix.Key, obj.destination.TestFile())}

	existing, err := obj.objectStorage.ListObjects(ctx, prefix.Bucket, prefix.Key)
	if err != nil {
		return SplitLocations{}, err
	}
	for _, loc := range []ObjectLocation{trainLoc, testLoc} {
		if slices.Contains(existing, loc.Key) {
			obj.logger.Warn("replacing existing object", slog.String("object", loc.String()))
		}
	}

	if err := obj.objectStorage.Upload(ctx, trainLoc.Bucket, trainLoc.Key, trainData); err != nil {
		return SplitLocations{}, err
	}
	if err := obj.objectStorage.Upload(ctx, testLoc.Bucket, testLoc.Key, testData); err != nil {
		// do not leave a train object without its test object
		if delErr := obj.objectStorage.Delete(ctx, trainLoc.Bucket, trainLoc.Key); delErr != nil {
			obj.logger.Error("failed to remove train object", slog.String("object", trainLoc.String()), slog.Any("error", delErr))
		}
		return SplitLocations{}, err
	}

	return SplitLocations{Train: trainLoc.String(), Test: testLoc.String()}, nil
}
