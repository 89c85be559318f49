package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecuteReportsErrorOnce(t *testing.T) {
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"translate", "only-a-slug"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.Error(t, Execute())
	require.Empty(t, errOut.String(), "cobra must leave error reporting to Execute")
	require.Empty(t, out.String())
}
