package pkg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestCombinedWriter(t *testing.T) {
	var b1, b2 bytes.Buffer
	cw := NewCombinedWriter(&b1, &b2)

	n, err := cw.Write([]byte("log line"))
	require.NoError(t, err)
	assert.Equal(t, 2*len("log line"), n)
	assert.Equal(t, "log line", b1.String())
	assert.Equal(t, "log line", b2.String())
}

func TestCombinedWriter_OneFails(t *testing.T) {
	var b bytes.Buffer
	cw := NewCombinedWriter(&b, failingWriter{})

	n, err := cw.Write([]byte("log line"))
	require.Error(t, err)
	assert.Equal(t, len("log line"), n)
	assert.Equal(t, "log line", b.String())
}
