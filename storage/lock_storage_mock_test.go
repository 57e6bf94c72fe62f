package storage

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockLock struct {
	mock.Mock
}

func (obj *MockLock) TryLockContext(ctx context.Context) error {
	ret := obj.Called(ctx)
	return ret.Error(0)
}

func (obj *MockLock) UnlockContext(ctx context.Context) (bool, error) {
	ret := obj.Called(ctx)
	return ret.Bool(0), ret.Error(1)
}

func (obj *MockLock) Name() string {
	ret := obj.Called()
	return ret.String(0)
}

type MockLockStorage struct {
	mock.Mock
}

func (obj *MockLockStorage) ClaimDestination(ctx context.Context, location string, duration time.Duration) (ILock, error) {
	ret := obj.Called(ctx, location, duration)
	lock, _ := ret.Get(0).(ILock)
	return lock, ret.Error(1)
}

func (obj *MockLockStorage) ReleaseLock(ctx context.Context, lock ILock) (bool, error) {
	ret := obj.Called(ctx, lock)
	return ret.Bool(0), ret.Error(1)
}
