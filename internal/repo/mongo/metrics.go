package mongo

import (
	"time"

	"github.com/prestigebuild/siteapi/internal/observability"
)

// observe times a logical store operation when metrics are wired; repos work
// without a registry in tests.
func observe(prom *observability.Prom, op string, fn func() error) error {
	if prom == nil {
		return fn()
	}

	return prom.ObserveDB(op, fn)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
