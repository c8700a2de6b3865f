package contract

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/huangsam/slotpulse/schema"
)

// MockRecordSource is a mock implementation of RecordSource for testing.
type MockRecordSource struct {
	mock.Mock
}

var _ RecordSource = &MockRecordSource{}

// Load mocks the Load method.
func (m *MockRecordSource) Load(ctx context.Context, q RecordQuery) (*schema.Dataset, error) {
	args := m.Called(ctx, q)
	if ds := args.Get(0); ds != nil {
		return ds.(*schema.Dataset), args.Error(1)
	}
	return nil, args.Error(1)
}

// Stores mocks the Stores method.
func (m *MockRecordSource) Stores(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if ids := args.Get(0); ids != nil {
		return ids.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// DatasetVersion mocks the DatasetVersion method.
func (m *MockRecordSource) DatasetVersion(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Close mocks the Close method.
func (m *MockRecordSource) Close() error {
	args := m.Called()
	return args.Error(0)
}
