package logs

import (
	"io"
	"log/slog"
	"os"
	"time"

	azlog "github.com/Azure/azure-sdk-for-go/sdk/azcore/log"
	"github.com/lmittmann/tint"
)

// ConsoleLogger installs a tint handler on stderr as the default slog logger.
// Debug enables debug level and source locations.
func ConsoleLogger(debug bool) *slog.Logger {
	return consoleLogger(os.Stderr, debug)
}

func consoleLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(tint.NewHandler(w, &tint.Options{
		AddSource:  debug,
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}))
	slog.SetDefault(logger)
	return logger
}

// RouteAzureSDK forwards azcore pipeline log events (requests, responses,
// retries) to the given logger at debug level. Passing nil detaches the
// listener.
func RouteAzureSDK(logger *slog.Logger) {
	if logger == nil {
		azlog.SetListener(nil)
		return
	}
	azlog.SetEvents(azlog.EventRequest, azlog.EventResponse, azlog.EventRetryPolicy, azlog.EventResponseError)
	azlog.SetListener(func(event azlog.Event, msg string) {
		logger.Debug(msg, "azsdk", string(event))
	})
}
