package roster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestFromAPI(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Ash","health":50},{"name":"Bo","health":"60"}]`))
	}))
	defer good.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer down.Close()
	invalid := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Ash","health":0}]`))
	}))
	defer invalid.Close()

	tests := []struct {
		name  string
		base  string
		first string
		count int
	}{
		{"no base", "", "Grave", 6},
		{"remote", good.URL, "Ash", 2},
		{"remote down", down.URL, "Grave", 6},
		{"remote invalid", invalid.URL, "Grave", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromAPI(context.Background(), tt.base, zerolog.Nop())
			if c.Len() != tt.count || c.List()[0].Name != tt.first {
				t.Fatalf("catalog = %d entries starting %q, want %d starting %q", c.Len(), c.List()[0].Name, tt.count, tt.first)
			}
		})
	}
}
