package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"
)

func ConvertList[A any, B any](listA []A, convert func(A) B) []B {
	listB := make([]B, len(listA))
	for i, a := range listA {
		listB[i] = convert(a)
	}

	return listB
}

type nopLogger struct{}

func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Debugf(string, ...interface{}) {}

type RestyOptions struct {
	RetryCount int
	Timeout    time.Duration
}

var DefaultRestyOptions = RestyOptions{
	RetryCount: 3,
	Timeout:    10 * time.Second,
}

// NewRestyClient returns a resty client using goccy/go-json. Retries follow
// the go-retryablehttp default policy and are disabled with RetryCount 0.
func NewRestyClient(opts ...RestyOptions) *resty.Client {
	o := DefaultRestyOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	c := resty.
		New().
		SetRetryCount(o.RetryCount).
		SetLogger(nopLogger{}).
		SetTimeout(o.Timeout)
	if o.RetryCount > 0 {
		c.AddRetryCondition(func(r *resty.Response, err error) bool {
			if r == nil || r.Request == nil {
				return err != nil
			}
			retry, _ := retryablehttp.DefaultRetryPolicy(r.Request.Context(), r.RawResponse, err)
			return retry
		})
	}
	c.JSONMarshal = json.Marshal
	c.JSONUnmarshal = json.Unmarshal
	return c
}

func GetHistogramVec(name string, labels ...string) (*prometheus.HistogramVec, error) {
	metrics := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: name,
		Buckets: []float64{
			0.0005,
			0.001, // 1ms
			0.002,
			0.005,
			0.01, // 10ms
			0.02,
			0.05,
			0.1, // 100 ms
			0.2,
			0.5,
			1.0, // 1s
			2.0,
			5.0,
			10.0, // 10s
		},
	}, labels)
	if err := prometheus.Register(metrics); err != nil {
		var registeredErr prometheus.AlreadyRegisteredError
		if ok := errors.As(err, &registeredErr); ok {
			metrics, ok := registeredErr.ExistingCollector.(*prometheus.HistogramVec)
			if ok {
				return metrics, nil
			}
		}
		return nil, fmt.Errorf("register: %w %T", err, err)
	}

	return metrics, nil
}
