package domain

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable hash of the given parameters.
// encoding/json writes map keys in sorted order, so the argument order never
// influences the result.
func Fingerprint(params map[string]any) string {
	data, err := json.Marshal(params)
	if err != nil {
		data = fmt.Appendf(nil, "%v", params)
	}

	h := xxhash.New()
	_, _ = h.Write(data)
	return fmt.Sprintf("%016x", h.Sum64())
}
