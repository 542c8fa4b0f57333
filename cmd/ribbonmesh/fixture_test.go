package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/ribbon/internal/chainfile"
)

func parseFixture(t *testing.T) *chainfile.File {
	t.Helper()
	f, err := chainfile.ParseFile(fixture)
	require.NoError(t, err)
	return f
}
