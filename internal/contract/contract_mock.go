package contract

import (
	"context"

	"github.com/huangsam/keepwatch/schema"
	"github.com/stretchr/testify/mock"
)

// MockProductSource is a mock implementation of ProductSource for testing.
type MockProductSource struct {
	mock.Mock
}

var _ ProductSource = &MockProductSource{} // Compile-time check

// GetProduct implements the ProductSource interface.
func (m *MockProductSource) GetProduct(ctx context.Context, asin string) (*schema.Product, error) {
	args := m.Called(ctx, asin)
	product, _ := args.Get(0).(*schema.Product)
	return product, args.Error(1)
}

// MockASINResolver is a mock implementation of ASINResolver for testing.
type MockASINResolver struct {
	mock.Mock
}

var _ ASINResolver = &MockASINResolver{} // Compile-time check

// ResolveList implements the ASINResolver interface.
func (m *MockASINResolver) ResolveList(name string) ([]string, error) {
	args := m.Called(name)
	asins, _ := args.Get(0).([]string)
	return asins, args.Error(1)
}
