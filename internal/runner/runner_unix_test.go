//go:build unix

package runner

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecKilledBySignal(t *testing.T) {
	e := NewExec(WithStdout(&bytes.Buffer{}), WithStderr(&bytes.Buffer{}), WithTrace(nil))

	err := e.Run(context.Background(), helperCommand("kill"))

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 128+9, exitErr.Code)
	assert.Equal(t, 137, ExitCode(err))
}
