package forward

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/devilcove/piafwd"
	"golang.org/x/text/encoding/htmlindex"
)

const defaultCharset = "utf-8"

// RequestPort posts the credentials form encoded to the assignment
// endpoint and returns the parsed response document.
func RequestPort(ctx context.Context, credentials Credentials, endpoint string, timeout time.Duration) (map[string]any, error) {
	form := url.Values{}
	for key, value := range credentials {
		form.Set(key, value)
	}
	slog.Debug("posting to endpoint", "endpoint", endpoint, "keys", credentials.Keys())
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, piafwd.Fail(piafwd.APIRequestFailed, err, "failed to build request for endpoint %s", endpoint)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	client := &http.Client{Timeout: timeout}
	response, err := client.Do(request)
	if err != nil {
		return nil, piafwd.Fail(piafwd.APIRequestFailed, err, "error posting to endpoint %s", endpoint)
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, piafwd.Fail(piafwd.APIRequestFailed, err, "failed to read response from endpoint %s", endpoint)
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, piafwd.Fail(piafwd.APIRequestFailed, nil, "endpoint %s returned %s: %s",
			endpoint, response.Status, strings.TrimSpace(string(body)))
	}
	text := unescapeResponse(decodeBody(body, response.Header.Get("Content-Type")))
	slog.Debug("api response", "status", response.Status, "text", text)
	return parseResponse(text)
}

// decodeBody converts the response bytes to text using the charset the
// server declared, defaulting to utf-8 when none is given. Unrecognized
// charsets fall back to the raw bytes rather than failing the run.
func decodeBody(body []byte, contentType string) string {
	charset := ""
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil {
			charset = params["charset"]
		}
	}
	if charset == "" {
		charset = defaultCharset
	}
	encoding, err := htmlindex.Get(charset)
	if err != nil {
		slog.Warn("unrecognized response charset, using raw bytes", "charset", charset)
		return string(body)
	}
	decoded, err := encoding.NewDecoder().Bytes(body)
	if err != nil {
		slog.Warn("failed to decode response body, using raw bytes", "charset", charset, "error", err)
		return string(body)
	}
	slog.Debug("decoded api response", "charset", charset)
	return string(decoded)
}

// unescapeResponse strips the single layer of percent encoding the api
// wraps its json in. Plus signs are literal and text with broken
// escapes is passed through untouched.
func unescapeResponse(text string) string {
	unescaped, err := url.PathUnescape(text)
	if err != nil {
		return text
	}
	return unescaped
}

// parseResponse decodes the response document. Numbers stay as
// json.Number so a forwarded port is echoed exactly as the api sent it.
func parseResponse(text string) (map[string]any, error) {
	var document map[string]any
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()
	if err := decoder.Decode(&document); err != nil {
		return nil, piafwd.Fail(piafwd.ResponseMalformed, err,
			"the API response is malformed\nresponse text: %s", text)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, piafwd.Fail(piafwd.ResponseMalformed, nil,
			"trailing data after the API response\nresponse text: %s", text)
	}
	// json null leaves the map nil without an error
	if document == nil {
		return nil, piafwd.Fail(piafwd.ResponseMalformed, nil,
			"the API response is not a json object\nresponse text: %s", text)
	}
	return document, nil
}
