package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupCmd_Flags(t *testing.T) {
	cmd := newSetupCmd(&options{})

	for _, name := range []string{"generate-key", "reset"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "false", flag.DefValue)
	}
	assert.Contains(t, cmd.Long, "--reset")
}

func TestSetupCmd_BadConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"setup", "--reset", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, cmd.Execute())
}
