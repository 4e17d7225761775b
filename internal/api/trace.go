package api

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// traceRequest logs the request as a curl command at debug level. Nothing
// is formatted unless the event is enabled.
func (c *HTTPClient) traceRequest(method, url string, header http.Header, body string) {
	e := c.log.Debug()
	if !e.Enabled() {
		return
	}
	e.Str("method", method).Str("url", url).Msg("REQ: " + curlCommand(method, url, header, body))
}

func (c *HTTPClient) traceResponse(resp *resty.Response) {
	e := c.log.Debug()
	if !e.Enabled() {
		return
	}
	e.Int("status_code", resp.StatusCode()).
		Dur("elapsed", resp.Time()).
		Interface("headers", resp.Header()).
		Int("body_bytes", len(resp.Body())).
		Msg("RESP")
}

func curlCommand(method, url string, header http.Header, body string) string {
	parts := []string{"curl -i", fmt.Sprintf("-X '%s'", method), fmt.Sprintf("'%s'", url)}

	all := http.Header{"User-Agent": {UserAgent}}
	for k, vs := range header {
		all[k] = vs
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("-H '%s: %s'", k, strings.Join(all[k], ",")))
	}

	if body != "" {
		parts = append(parts, "--data", "'"+body+"'")
	}
	return strings.Join(parts, " ")
}

// restyLogger routes resty's internal messages into the client logger.
type restyLogger struct{ l zerolog.Logger }

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug().Msgf(format, v...) }
