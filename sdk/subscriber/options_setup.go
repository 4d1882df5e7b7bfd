package subscriber

import (
	"github.com/leandrodaf/notewatch/internal/logger"
	"github.com/leandrodaf/notewatch/sdk/contracts"
)

// applyDefaultOptions fills in unset subscriber options. A zero history
// capacity means the default; negative values are left for the matcher to reject.
func applyDefaultOptions(opts ...contracts.SubscriberOption) contracts.SubscriberOptions {
	options := contracts.SubscriberOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.HistoryCapacity == 0 {
		options.HistoryCapacity = contracts.DefaultHistoryCapacity
	}
	if options.EventBuffer <= 0 {
		options.EventBuffer = contracts.DefaultEventBuffer
	}
	if options.AsyncCallbacks && options.TriggerQueue <= 0 {
		options.TriggerQueue = contracts.DefaultEventBuffer
	}
	return options
}
