package gateway

import (
	"fmt"
	"time"
)

// New constructs a Catalog by kind: "http", "memory" or "file".
// For http, baseURL is the API root; for file, path is the snapshot location.
func New(kind, baseURL, path string, timeout time.Duration) (Catalog, error) {
	switch kind {
	case "http":
		if baseURL == "" {
			return nil, fmt.Errorf("api url required for http gateway")
		}
		return NewHTTPClient(baseURL, timeout), nil
	case "memory", "mem":
		return NewMemory(), nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("file path required for file gateway")
		}
		return NewFile(path)
	default:
		return nil, fmt.Errorf("unknown gateway kind: %s", kind)
	}
}
