package source_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"db-seed/internal/engine"
	"db-seed/internal/schema"
	"db-seed/internal/source"
)

func TestFile_Acquire(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "Part.csv"), []byte("PartID,Name\n1,Bolt\n2,\"Nut, hex\"\n"), 0o644)

	f := &source.File{Dir: dir}
	raw, err := f.Acquire(context.Background(), &schema.Table{Name: "Part"})
	if err != nil {
		t.Fatal(err)
	}
	if len(raw.Rows) != 2 || raw.Rows[1][1] != "Nut, hex" {
		t.Errorf("unexpected rows %v", raw.Rows)
	}
}

func TestFile_MissingInputIsSkip(t *testing.T) {
	f := &source.File{Dir: t.TempDir()}
	_, err := f.Acquire(context.Background(), &schema.Table{Name: "Vehicle"})
	if !engine.IsSkip(err) {
		t.Fatalf("expected skip, got %v", err)
	}
	if !errors.Is(err, engine.ErrNotFound) {
		t.Errorf("skip should wrap ErrNotFound: %v", err)
	}
}

func TestFile_MalformedInputIsFatal(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "Part.csv"), []byte("PartID,Name\n1\n"), 0o644)

	f := &source.File{Dir: dir}
	_, err := f.Acquire(context.Background(), &schema.Table{Name: "Part"})
	var ve *engine.ValidationError
	if !errors.As(err, &ve) || ve.Table != "Part" {
		t.Fatalf("expected ValidationError for Part, got %v", err)
	}
	if engine.IsSkip(err) {
		t.Error("malformed input must not be a skip")
	}
}

func TestFile_Discover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Vehicle.csv", "Warranty.csv", "Battery.csv", "notes.txt"} {
		os.WriteFile(filepath.Join(dir, name), []byte("A\n1\n"), 0o644)
	}
	os.Mkdir(filepath.Join(dir, "Folder.csv"), 0o755)

	f := &source.File{Dir: dir}
	extra, err := f.Discover([]string{"Vehicle", "Customer"})
	if err != nil {
		t.Fatal(err)
	}
	if len(extra) != 2 || extra[0] != "Battery" || extra[1] != "Warranty" {
		t.Errorf("Discover = %v, want [Battery Warranty]", extra)
	}
}

func TestRemote_URL(t *testing.T) {
	r := &source.Remote{APIKey: "k3y", Count: 25}
	got := r.URL("eb692b70")
	want := "https://api.mockaroo.com/api/eb692b70?count=25&key=k3y"
	if got != want {
		t.Errorf("URL = %s, want %s", got, want)
	}
}

func newRemote(t *testing.T, h http.HandlerFunc) *source.Remote {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &source.Remote{
		Scheme: "http",
		Host:   strings.TrimPrefix(srv.URL, "http://"),
		APIKey: "secret",
		Count:  3,
		Client: srv.Client(),
	}
}

func TestRemote_Acquire(t *testing.T) {
	r := newRemote(t, func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/api/b9190230" || req.URL.Query().Get("count") != "3" || req.URL.Query().Get("key") != "secret" {
			http.Error(w, "bad request "+req.URL.String(), http.StatusBadRequest)
			return
		}
		w.Write([]byte("CustomerID,Name\n1,Ann Lee\n2,Bo Kim\n3,Cy Park\n"))
	})

	raw, err := r.Acquire(context.Background(), &schema.Table{Name: "Customer", Source: "b9190230"})
	if err != nil {
		t.Fatal(err)
	}
	if len(raw.Rows) != 3 || raw.Headers[1] != "Name" {
		t.Errorf("unexpected table %+v", raw)
	}
}

func TestRemote_ErrorStatusIsTransportError(t *testing.T) {
	r := newRemote(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "invalid api key", http.StatusForbidden)
	})

	_, err := r.Acquire(context.Background(), &schema.Table{Name: "Customer", Source: "b9190230"})
	var te *engine.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.Status != http.StatusForbidden || !strings.Contains(te.Output, "invalid api key") {
		t.Errorf("unexpected transport error %+v", te)
	}
	if engine.IsSkip(err) {
		t.Error("transport errors must not be skips")
	}
}

func TestRemote_LongErrorBodyKeepsWholeCharacters(t *testing.T) {
	// 'a' then two-byte runes: byte 512 falls inside a rune
	body := "a" + strings.Repeat("é", 600)
	r := newRemote(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, body, http.StatusBadGateway)
	})

	_, err := r.Acquire(context.Background(), &schema.Table{Name: "Customer", Source: "b9190230"})
	var te *engine.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !utf8.ValidString(te.Output) {
		t.Errorf("output split a character: %q", te.Output[len(te.Output)-8:])
	}
	if !strings.HasSuffix(te.Output, "...") || len(te.Output) > 512+len("...") {
		t.Errorf("output not truncated: %d bytes", len(te.Output))
	}
}

func TestRemote_NoSourceIDIsSkip(t *testing.T) {
	r := &source.Remote{APIKey: "x", Count: 1}
	_, err := r.Acquire(context.Background(), &schema.Table{Name: "Warranty"})
	if !engine.IsSkip(err) {
		t.Fatalf("expected skip, got %v", err)
	}
}
