package operations

import (
	"context"
	"log/slog"

	"github.com/alekLukanen/dsutils/arrowOps"
	"github.com/alekLukanen/dsutils/config"
	"github.com/alekLukanen/dsutils/storage"
	"github.com/alekLukanen/errs"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

/*
* Wires a preparer from configuration. Object storage is created when
* enabled and key storage when an address is set; both are optional.
 */
func BuildPreparer(ctx context.Context, logger *slog.Logger, cfg *config.Config) (*Preparer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var objectStorage storage.IObjectStorage
	if cfg.ObjectStorage.Enabled {
		options := storage.ObjectStorageOptions{
			Endpoint:     cfg.ObjectStorage.Endpoint,
			Region:       cfg.ObjectStorage.Region,
			UsePathStyle: cfg.ObjectStorage.UsePathStyle,
		}
		if cfg.ObjectStorage.AuthKey != "" {
			options = *storage.NewObjectStorageOptionsFromStaticCredentials(
				cfg.ObjectStorage.Endpoint,
				cfg.ObjectStorage.Region,
				cfg.ObjectStorage.AuthKey,
				cfg.ObjectStorage.AuthSecret,
				cfg.ObjectStorage.UsePathStyle,
			)
		}
		s3Storage, err := storage.NewObjectStorage(ctx, logger, options)
		if err != nil {
			return nil, errs.Wrap(err)
		}
		objectStorage = s3Storage
	}

	var lockStorage storage.ILockStorage
	var closers []func() error
	if cfg.KeyStorage.Address != "" {
		keyStorage, err := storage.NewKeyStorage(ctx, logger, storage.KeyStorageOptions{
			Address:   cfg.KeyStorage.Address,
			Password:  cfg.KeyStorage.Password,
			KeyPrefix: cfg.KeyStorage.KeyPrefix,
		})
		if err != nil {
			return nil, errs.Wrap(err)
		}
		if err := keyStorage.Ping(ctx); err != nil {
			keyStorage.Close()
			return nil, err
		}
		lockStorage = keyStorage
		closers = append(closers, keyStorage.Close)
	}

	delimiter, err := cfg.Delimiter()
	if err != nil {
		return nil, err
	}
	lockDuration, err := cfg.LockDuration()
	if err != nil {
		return nil, err
	}
	format, err := arrowops.ParseFormat(cfg.Split.Format)
	if err != nil {
		return nil, err
	}

	mem := memory.NewGoAllocator()
	loader := storage.NewLoader(ctx, logger, mem, objectStorage, storage.LoaderOptions{
		Comma:      delimiter,
		NullValues: cfg.Loader.NullValues,
	})
	writer := storage.NewSplitWriter(ctx, logger, mem, objectStorage, lockStorage, storage.SplitWriterOptions{
		Destination: storage.Destination{
			Location:  cfg.Split.OutputDir,
			Format:    format,
			TrainName: cfg.Split.TrainName,
			TestName:  cfg.Split.TestName,
		},
		LockDuration: lockDuration,
	})

	preparer := NewPreparer(logger, mem, loader, writer)
	preparer.closers = closers
	return preparer, nil
}
