package utils

import (
	"os"
	"sync"

	"github.com/DataDog/datadog-go/statsd"

	Logger "github.com/mediamux/mediamux/utils/log"
)

// Metric names emitted by the API server.
const (
	MetricActivityAppendFailure = "activity.append_failure"
	MetricProviderError         = "provider.error"
)

var (
	statsdClient *statsd.Client
	statsdOnce   sync.Once
)

// GetStatsdClient returns the shared dogstatsd client, or nil when the agent
// address isn't configured or unreachable. Callers must tolerate nil, metric
// emission is always best effort.
func GetStatsdClient() *statsd.Client {
	statsdOnce.Do(func() {
		addr := os.Getenv("STATSD_ADDR")
		if addr == "" {
			addr = "127.0.0.1:8125"
		}
		client, err := statsd.New(addr)
		if err != nil {
			Logger.Log.Warn("statsd client unavailable: ", err)
			return
		}
		statsdClient = client
	})
	return statsdClient
}

// EmitCounter bumps a counter by 1 with the given tags, silently doing
// nothing if statsd isn't available.
func EmitCounter(name string, tags []string) {
	client := GetStatsdClient()
	if client == nil {
		return
	}
	if err := client.Incr(name, tags, 1); err != nil {
		Logger.Log.Warn("fail to emit counter ", name, ": ", err)
	}
}
