package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"db-seed/internal/engine"
	"db-seed/internal/schema"
)

const DefaultHost = "api.mockaroo.com"

// maxOutput bounds the diagnostic body kept in a TransportError.
const maxOutput = 512

// Remote fetches rows from a hosted row generator:
// GET https://<Host>/api/<source>?count=<Count>&key=<APIKey>.
type Remote struct {
	Host   string
	Scheme string // https unless set
	APIKey string
	Count  int
	Client *http.Client
}

// URL builds the request URL for one generator schema id.
func (r *Remote) URL(sourceID string) string {
	scheme := r.Scheme
	if scheme == "" {
		scheme = "https"
	}
	host := r.Host
	if host == "" {
		host = DefaultHost
	}
	q := url.Values{}
	q.Set("count", strconv.Itoa(r.Count))
	q.Set("key", r.APIKey)
	u := url.URL{
		Scheme:   scheme,
		Host:     host,
		Path:     "/api/" + sourceID,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func (r *Remote) Acquire(ctx context.Context, t *schema.Table) (*engine.RawTable, error) {
	if t.Source == "" {
		return nil, &engine.SkipError{Table: t.Name, Err: fmt.Errorf("no generator schema id: %w", engine.ErrNotFound)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL(t.Source), nil)
	if err != nil {
		return nil, &engine.TransportError{Table: t.Name, Err: err}
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &engine.TransportError{Table: t.Name, Err: redact(err, r.APIKey)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &engine.TransportError{Table: t.Name, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &engine.TransportError{Table: t.Name, Status: resp.StatusCode, Output: truncate(strings.TrimSpace(string(body)), maxOutput)}
	}

	raw, err := engine.Parse(string(body))
	if err != nil {
		var ve *engine.ValidationError
		if errors.As(err, &ve) {
			ve.Table = t.Name
		}
		return nil, err
	}
	return raw, nil
}

// redact keeps the API key out of error messages that echo the URL.
func redact(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "***"))
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
