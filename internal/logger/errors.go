package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAppNameIsEmpty means log.appname is missing; it tags every event with "app".
	ErrAppNameIsEmpty = errors.New("log.appname must be set")

	// ErrServiceNameIsEmpty means log.servicename is missing; it labels the log metrics.
	ErrServiceNameIsEmpty = errors.New("log.servicename must be set")

	// ErrDataDogAPIKeyIsEmpty means log.datadog is enabled without an api key.
	ErrDataDogAPIKeyIsEmpty = errors.New("log.datadog.apikey must be set when datadog is enabled")
)

// ErrorHandler reports events that a writer rejected. It writes straight to
// stderr since the logger itself is the thing that failed.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "sso logger: dropped event: %v\n", err)
}
