package basicchain_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/brandonsean08/basic-blockchain/cmd/basicchain"
)

func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	_, err = root.ExecuteC()
	return buf.String(), err
}

func TestRootCmd(t *testing.T) {
	// Show help
	output, err := executeCommand(basicchain.RootCmd)
	assert.NoError(t, err)
	assert.Contains(t, output, "basicchain admits signed transfers into an in-process hash-linked ledger")

	// Test invalid logLevel
	_, err = executeCommand(basicchain.RootCmd, "version", "--logLevel", "invalid")
	assert.Error(t, err)
	assert.ErrorContains(t, err, "invalid log level: invalid. Valid log levels are: debug|error|info|warn")

	// Restore the shared flag state for the tests that follow.
	_, err = executeCommand(basicchain.RootCmd, "version", "--logLevel", "info")
	assert.NoError(t, err)
}
