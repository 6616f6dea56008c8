package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutput_JSONEncodeFailureReported(t *testing.T) {
	var stdout, stderr bytes.Buffer
	out := NewOutputTo(true, &stdout, &stderr)

	out.JSON(map[string]any{"bad": make(chan int)})

	assert.Contains(t, stderr.String(), "encode json output")
}

func TestOutput_PrintRespectsMode(t *testing.T) {
	headers := []string{"GID", "NAME"}
	rows := [][]string{{"1", "Acme"}}
	data := []map[string]string{{"gid": "1", "name": "Acme"}}

	t.Run("table mode", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		out := NewOutputTo(false, &stdout, &stderr)

		out.Print(headers, rows, data)

		assert.Contains(t, stdout.String(), "GID")
		assert.Contains(t, stdout.String(), "Acme")
		assert.NotContains(t, stdout.String(), "{")
	})

	t.Run("json mode", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		out := NewOutputTo(true, &stdout, &stderr)

		out.Print(headers, rows, data)

		require.Contains(t, stdout.String(), `"gid": "1"`)
		assert.NotContains(t, stdout.String(), "GID\t")
	})
}
