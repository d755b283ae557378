package redis

import (
	"context"
	"time"
)

type disabledClient struct{}

// NewDisabledClient returns a Client whose reads always miss and whose
// writes are dropped.
func NewDisabledClient() Client {
	return disabledClient{}
}

func (disabledClient) IsEnabled() bool                                          { return false }
func (disabledClient) Ping(context.Context) error                               { return nil }
func (disabledClient) Close() error                                             { return nil }
func (disabledClient) Get(context.Context, string) ([]byte, error)              { return nil, nil }
func (disabledClient) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (disabledClient) Delete(context.Context, ...string) error                  { return nil }
func (disabledClient) DeleteByPattern(context.Context, string) error            { return nil }

func (disabledClient) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, nil
}

func (disabledClient) GetStats(context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"backend": "disabled"}, nil
}
