package logger

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
	"github.com/pkg/errors"
)

const (
	defaultDataDogTimeout = 5 * time.Second
	defaultDataDogSource  = "rocketpop-sso"
	submitLogOperation    = "v2.LogsApi.SubmitLog"
)

// DataDogWriter ships every event it receives to the datadog logs intake.
type DataDogWriter struct {
	api      *datadogV2.LogsApi
	ctx      context.Context //nolint:containedctx
	service  string
	source   string
	hostname string
	timeout  time.Duration
}

// NewDataDogWriter builds the intake client from cfg. service is used when
// cfg.ServiceName is empty.
func NewDataDogWriter(cfg DataDog, service string) (*DataDogWriter, error) {
	if cfg.APIKey == "" {
		return nil, ErrDataDogAPIKeyIsEmpty
	}

	ctx := context.WithValue(
		context.Background(),
		datadog.ContextAPIKeys,
		map[string]datadog.APIKey{"apiKeyAuth": {Key: cfg.APIKey}},
	)

	if cfg.Site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{"site": cfg.Site})
	}

	conf := datadog.NewConfiguration()
	if cfg.URL != "" {
		conf.OperationServers[submitLogOperation] = datadog.ServerConfigurations{{URL: cfg.URL}}
	}

	w := &DataDogWriter{
		api:     datadogV2.NewLogsApi(datadog.NewAPIClient(conf)),
		ctx:     ctx,
		service: cfg.ServiceName,
		source:  cfg.Source,
		timeout: cfg.Timeout,
	}

	if w.service == "" {
		w.service = service
	}

	if w.source == "" {
		w.source = defaultDataDogSource
	}

	if w.timeout <= 0 {
		w.timeout = defaultDataDogTimeout
	}

	w.hostname, _ = os.Hostname()

	return w, nil
}

// Write submits p as a single log item. The zerolog JSON event is sent as
// the message, datadog parses its attributes on intake.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	item := datadogV2.NewHTTPLogItem(string(bytes.TrimSpace(p)))
	item.SetService(w.service)
	item.SetDdsource(w.source)

	if w.hostname != "" {
		item.SetHostname(w.hostname)
	}

	if _, _, err := w.api.SubmitLog(ctx, []datadogV2.HTTPLogItem{*item}); err != nil {
		return 0, errors.Wrap(err, "datadog submit log")
	}

	return len(p), nil
}
