package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "superdense version")
}

func TestTableCommand(t *testing.T) {
	out := execute(t, "table", "--format", "yaml")
	assert.Contains(t, out, `bits: "00"`)
	assert.Contains(t, out, "result: Ψ⁻")
}

func TestSimulateCommand(t *testing.T) {
	out := execute(t, "simulate", "--bits", "10", "--instant")
	assert.Contains(t, out, "[1/4] Entanglement")
	assert.Contains(t, out, "Original bits: 10  Received bits: 10")
}
