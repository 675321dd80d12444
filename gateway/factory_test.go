package gateway

import (
	"path/filepath"
	"testing"
	"time"
)

func TestNewGatewayKinds(t *testing.T) {
	cases := []struct {
		name    string
		kind    string
		baseURL string
		path    string
		wantErr bool
	}{
		{"http", "http", "http://localhost:3000", "", false},
		{"http without url", "http", "", "", true},
		{"memory", "memory", "", "", false},
		{"mem alias", "mem", "", "", false},
		{"file", "file", "", filepath.Join(t.TempDir(), "c.json"), false},
		{"file without path", "file", "", "", true},
		{"unknown", "bolt", "", "", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			gw, err := New(tc.kind, tc.baseURL, tc.path, time.Second)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for kind %q", tc.kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gw == nil {
				t.Fatal("expected a gateway")
			}
		})
	}
}
