package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alekLukanen/errs"
	"github.com/go-redsync/redsync/v4"
	redsyncredis "github.com/go-redsync/redsync/v4/redis"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredislib "github.com/redis/go-redis/v9"
)

type ILock interface {
	TryLockContext(context.Context) error
	UnlockContext(context.Context) (bool, error)
	Name() string
}

type ILockStorage interface {
	ClaimDestination(context.Context, string, time.Duration) (ILock, error)
	ReleaseLock(context.Context, ILock) (bool, error)
}

type KeyStorageOptions struct {
	Address   string
	Password  string
	KeyPrefix string
}

type KeyStorage struct {
	logger *slog.Logger
	client *goredislib.Client
	pool   redsyncredis.Pool
	sync   *redsync.Redsync

	KeyPrefix string
}

func NewKeyStorage(
	ctx context.Context,
	logger *slog.Logger,
	options KeyStorageOptions,
) (*KeyStorage, error) {
	client := goredislib.NewClient(&goredislib.Options{
		Addr:     options.Address,
		Password: options.Password,
		DB:       0,
	})

	redisPool := goredis.NewPool(client)
	mutexSync := redsync.New(redisPool)

	keyStorage := KeyStorage{
		logger:    logger,
		client:    client,
		pool:      redisPool,
		sync:      mutexSync,
		KeyPrefix: options.KeyPrefix,
	}
	return &keyStorage, nil
}

func (obj *KeyStorage) Key(key string) string {
	return fmt.Sprintf("%s-%s", obj.KeyPrefix, key)
}

func (obj *KeyStorage) DerCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	derivedCtx, cancelFunc := context.WithTimeout(ctx, time.Second*15)
	return derivedCtx, cancelFunc
}

func (obj *KeyStorage) Ping(ctx context.Context) error {
	ctx, cancelFunc := obj.DerCtx(ctx)
	defer cancelFunc()
	if err := obj.client.Ping(ctx).Err(); err != nil {
		return errs.NewStackError(err)
	}
	return nil
}

func (obj *KeyStorage) Close() error {
	return obj.client.Close()
}

func (obj *KeyStorage) AcquireLock(ctx context.Context, key string, duration time.Duration) (ILock, error) {
	mutex := obj.sync.NewMutex(obj.Key(key), redsync.WithExpiry(duration), redsync.WithTries(1))
	if err := mutex.TryLockContext(ctx); err != nil {
		return nil, err
	}
	return mutex, nil
}

func (obj *KeyStorage) ReleaseLock(ctx context.Context, lock ILock) (bool, error) {
	ok, err := lock.UnlockContext(ctx)
	return ok, err
}

// ClaimDestination locks the destination location so only one split
// is written to it at a time.
func (obj *KeyStorage) ClaimDestination(ctx context.Context, location string, duration time.Duration) (ILock, error) {
	name := destinationLockName(location)
	obj.logger.Debug("claiming destination", slog.String("key", obj.Key(name)), slog.Duration("duration", duration))
	return obj.AcquireLock(ctx, name, duration)
}

// AcquireLock prefixes the name, so it is passed without the key prefix.
func destinationLockName(location string) string {
	return fmt.Sprintf("split-state/dest-lock/%s", location)
}
