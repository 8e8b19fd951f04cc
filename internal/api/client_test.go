package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchCharactersAcceptsNumbersAndStrings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/characters" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"Grave","health":90},{"name":" Jaina ","health":"85"},{"name":"Rook","health":" 100 "}]`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL+"/").WithHTTPClient(srv.Client()).FetchCharacters(context.Background())
	if err != nil {
		t.Fatalf("FetchCharacters() = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	want := []struct {
		name   string
		health int
	}{{"Grave", 90}, {"Jaina", 85}, {"Rook", 100}}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Health != w.health {
			t.Fatalf("entry %d = %+v, want %s/%d", i, got[i], w.name, w.health)
		}
	}
}

func TestFetchCharactersReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).FetchCharacters(context.Background()); err == nil {
		t.Fatal("expected error for 503")
	}
}

func TestFetchCharactersRejectsFractionalOrSuffixedHealth(t *testing.T) {
	for _, body := range []string{
		`[{"name":"Grave","health":9.5}]`,
		`[{"name":"Grave","health":"9.5"}]`,
		`[{"name":"Grave","health":"90hp"}]`,
		`[{"name":"Grave","health":null}]`,
		`[{"name":"Grave"}]`,
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		got, err := NewClient(srv.URL).FetchCharacters(context.Background())
		srv.Close()
		if err == nil {
			t.Fatalf("%s: FetchCharacters() = %+v, want error", body, got)
		}
	}
}

func TestParseHealth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{`12`, 12},
		{`"7"`, 7},
		{`" 85 "`, 85},
		{`-3`, -3},
	}
	for _, tt := range tests {
		got, err := parseHealth([]byte(tt.in))
		if err != nil || got != tt.want {
			t.Fatalf("parseHealth(%s) = %d, %v, want %d", tt.in, got, err, tt.want)
		}
	}
}
