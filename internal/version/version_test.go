package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() {
		Version, Commit = origVersion, origCommit
	}()

	Version = "1.2.3"
	Commit = "abc1234"
	require.Equal(t, "1.2.3 (abc1234)", String())
}

func TestDefaultValues(t *testing.T) {
	require.NotEmpty(t, Version)
	require.NotEmpty(t, Commit)
}
