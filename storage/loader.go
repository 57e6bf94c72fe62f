package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/alekLukanen/dsutils/arrowOps"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

type ILoader interface {
	Load(ctx context.Context, source string) (arrow.Record, error)
}

type LoaderOptions struct {
	// delimiter for files other than .tsv, defaults to ','
	Comma rune
	// cell values read as missing, defaults to arrowops.DefaultNullValues
	NullValues []string
}

type Loader struct {
	logger        *slog.Logger
	mem           *memory.GoAllocator
	objectStorage IObjectStorage
	options       LoaderOptions
}

/*
* Creates a loader for local paths and s3:// objects. The object
* storage may be nil in which case s3 sources fail to load.
 */
func NewLoader(
	ctx context.Context,
	logger *slog.Logger,
	mem *memory.GoAllocator,
	objectStorage IObjectStorage,
	options LoaderOptions,
) *Loader {
	return &Loader{
		logger:        logger,
		mem:           mem,
		objectStorage: objectStorage,
		options:       options,
	}
}

/*
* Reads the source into a single record. Every failure is returned as
* a *LoadError naming the source. The caller owns the record.
 */
func (obj *Loader) Load(ctx context.Context, source string) (arrow.Record, error) {
	obj.logger.Debug("loading data", slog.String("source", source))

	data, err := obj.read(ctx, source)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	record, err := obj.decode(ctx, source, data)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	obj.logger.Info(
		"loaded data",
		slog.String("source", source),
		slog.Int64("numRows", record.NumRows()),
		slog.Int64("numCols", record.NumCols()),
	)
	return record, nil
}

func (obj *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if !IsObjectURI(source) {
		return os.ReadFile(source)
	}

	if obj.objectStorage == nil {
		return nil, fmt.Errorf("%w| source: %s", ErrNoObjectStorage, source)
	}
	location, err := ParseObjectURI(source)
	if err != nil {
		return nil, err
	}
	if location.Key == "" {
		return nil, fmt.Errorf("%w| missing object key: %s", ErrInvalidObjectURI, source)
	}
	return obj.objectStorage.Download(ctx, location.Bucket, location.Key)
}

func (obj *Loader) decode(ctx context.Context, source string, data []byte) (arrow.Record, error) {
	switch strings.ToLower(path.Ext(source)) {
	case ".parquet":
		return arrowops.ReadParquetRecord(ctx, obj.mem, data)
	case ".tsv":
		return arrowops.ReadCSV(obj.mem, data, arrowops.CSVOptions{Comma: '\t', NullValues: obj.options.NullValues})
	default:
		return arrowops.ReadCSV(obj.mem, data, arrowops.CSVOptions{Comma: obj.options.Comma, NullValues: obj.options.NullValues})
	}
}
