package operations

import (
	"context"

	"github.com/alekLukanen/dsutils/storage"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/stretchr/testify/mock"
)

type MockLoader struct {
	mock.Mock
}

func (obj *MockLoader) Load(ctx context.Context, source string) (arrow.Record, error) {
	ret := obj.Called(ctx, source)
	record, _ := ret.Get(0).(arrow.Record)
	if record != nil {
		record.Retain()
	}
	return record, ret.Error(1)
}

type MockSplitWriter struct {
	mock.Mock
}

func (obj *MockSplitWriter) WriteSplit(ctx context.Context, train, test arrow.Record) (storage.SplitLocations, error) {
	ret := obj.Called(ctx, train, test)
	return ret.Get(0).(storage.SplitLocations), ret.Error(1)
}
