package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depgraph/internal/core/domain"
)

func TestFingerprint(t *testing.T) {
	a := domain.Fingerprint(map[string]any{"jql": "x", "max_results": 10, "flag": true})
	b := domain.Fingerprint(map[string]any{"flag": true, "max_results": 10, "jql": "x"})

	assert.Equal(t, a, b)
	assert.Len(t, a, 16)

	c := domain.Fingerprint(map[string]any{"jql": "x", "max_results": 10, "flag": false})
	assert.NotEqual(t, a, c)
}
