package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "v"+Version, String())

	GitCommit, BuildTime = "abc123", "2026-01-01T00:00:00Z"
	t.Cleanup(func() { GitCommit, BuildTime = "unknown", "unknown" })
	assert.Equal(t, "v"+Version+" (abc123, built 2026-01-01T00:00:00Z)", String())
}
