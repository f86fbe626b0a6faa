package log

import (
	"testing"

	"github.com/livingaura/aura/log"

	"github.com/stretchr/testify/require"
)

func TestWrapper(t *testing.T) {
	buffer := log.NewBufferWriter(log.Ldebug, 10)
	w := NewWrapper(log.New("HTTP").WithOutput(buffer))

	data := []byte(`{"time":"2024-03-01T12:00:00Z","level":"ERROR","prefix":"echo","message":"first\nsecond"}`)
	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	_, err = w.Write([]byte(`{"level":"WARN","message":"careful"}`))
	require.NoError(t, err)

	_, err = w.Write([]byte("plain text\n"))
	require.NoError(t, err)

	events := buffer.Events()
	require.Equal(t, 4, len(events))

	require.Equal(t, log.Lerror, events[0].Level)
	require.Equal(t, "first", events[0].Message)
	require.Equal(t, log.Lerror, events[1].Level)
	require.Equal(t, "second", events[1].Message)
	require.Equal(t, log.Lwarn, events[2].Level)
	require.Equal(t, "careful", events[2].Message)
	require.Equal(t, log.Ldebug, events[3].Level)
	require.Equal(t, "plain text", events[3].Message)
}
