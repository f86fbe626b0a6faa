package log

import (
	"bufio"
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoglevelNames(t *testing.T) {
	assert.Equal(t, "DEBUG", Ldebug.String())
	assert.Equal(t, "ERROR", Lerror.String())
	assert.Equal(t, "WARN", Lwarn.String())
	assert.Equal(t, "INFO", Linfo.String())
	assert.Equal(t, `SILENT`, Lsilent.String())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, Ldebug, level)

	level, err = ParseLevel("WARN")
	require.NoError(t, err)
	require.Equal(t, Lwarn, level)

	level, err = ParseLevel("silent")
	require.NoError(t, err)
	require.Equal(t, Lsilent, level)

	level, err = ParseLevel("verbose")
	require.Error(t, err)
	require.Equal(t, Linfo, level)
}

func TestLogColorToNotTTY(t *testing.T) {
	var buffer bytes.Buffer
	writer := bufio.NewWriter(&buffer)

	w := NewConsoleWriter(writer, Linfo, true).(*syncWriter)
	formatter := w.writer.(*formatWriter).formatter.(*consoleFormatter)

	assert.NotEqual(t, true, formatter.color, "Color should not be used on a buffer logger")
}

func TestLogContext(t *testing.T) {
	var buffer bytes.Buffer
	writer := bufio.NewWriter(&buffer)

	logger := New("component").WithOutput(NewConsoleWriter(writer, Ldebug, false))

	logger.Debug().Log("debug")
	logger.Info().Log("info")
	logger.Warn().Log("warn")
	logger.Error().Log("error")
	writer.Flush()

	lenWithCtx := buffer.Len()
	buffer.Reset()

	logger = logger.WithComponent("")

	logger.Debug().Log("debug")
	logger.Info().Log("info")
	logger.Warn().Log("warn")
	logger.Error().Log("error")
	writer.Flush()

	lenWithoutCtx := buffer.Len()
	buffer.Reset()

	assert.Greater(t, lenWithCtx, lenWithoutCtx, "Log line length without context is not shorter than with context")
}

func TestLogClone(t *testing.T) {
	var buffer bytes.Buffer
	writer := bufio.NewWriter(&buffer)

	logger := New("test").WithOutput(NewConsoleWriter(writer, Linfo, false))

	logger.Info().Log("info")
	writer.Flush()

	assert.Contains(t, buffer.String(), `component="test"`)

	buffer.Reset()

	logger2 := logger.WithComponent("tset")

	logger2.Info().Log("info")
	writer.Flush()

	assert.Contains(t, buffer.String(), `component="tset"`)
}

func TestLogFieldsAreNotShared(t *testing.T) {
	bufwriter := NewBufferWriter(Ldebug, 10)
	logger := New("test").WithOutput(bufwriter)

	base := logger.WithField("a", 1)
	base.WithField("b", 2).Info().Log("first")
	base.Info().Log("second")

	events := bufwriter.Events()
	require.Equal(t, 2, len(events))

	require.Equal(t, Fields{"a": 1, "b": 2}, events[0].Data)
	require.Equal(t, Fields{"a": 1}, events[1].Data)
}

func TestLogFormat(t *testing.T) {
	bufwriter := NewBufferWriter(Ldebug, 10)
	logger := New("test").WithOutput(bufwriter)

	logger.Info().Log("caller %s connected", "192.0.2.1")
	logger.Info().Log("100%")
	logger.WithError(fmt.Errorf("broken")).Error().Log("")
	logger.WithError(nil).Log("nothing")

	events := bufwriter.Events()
	require.Equal(t, 4, len(events))

	require.Equal(t, "caller 192.0.2.1 connected", events[0].Message)
	require.Equal(t, "100%", events[1].Message)
	require.Equal(t, "", events[2].Message)
	require.Equal(t, Lerror, events[2].Level)
	require.EqualError(t, events[2].Data["error"].(error), "broken")
	require.Equal(t, Ldebug, events[3].Level)
	require.NotContains(t, events[3].Data, "error")
	require.Contains(t, events[3].Caller, "log_test.go:")
}

func TestLogWithoutOutput(t *testing.T) {
	logger := New("test")

	require.NotPanics(t, func() {
		logger.Info().Log("nowhere")
		logger.Close()
	})
}

func TestLogSkipFunctions(t *testing.T) {
	bufwriter := NewBufferWriter(Ldebug, 10)
	logger := New("test").WithOutput(bufwriter)

	logger.WithFields(Fields{
		"func":  func() {},
		"value": 42,
	}).Info().Log("")

	events := bufwriter.Events()
	require.Equal(t, 1, len(events))
	require.Equal(t, Fields{"value": 42}, events[0].Data)
}

func TestLogWrite(t *testing.T) {
	bufwriter := NewBufferWriter(Ldebug, 10)
	logger := New("test").WithOutput(bufwriter)

	line := []byte("  from the standard logger\n")

	n, err := logger.Warn().Write(line)
	require.NoError(t, err)
	require.Equal(t, len(line), n)

	events := bufwriter.Events()
	require.Equal(t, 1, len(events))
	require.Equal(t, "from the standard logger", events[0].Message)
	require.Equal(t, Lwarn, events[0].Level)
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level   Level
		written []bool // debug, info, warn, error
	}{
		{Lsilent, []bool{false, false, false, false}},
		{Lerror, []bool{false, false, false, true}},
		{Lwarn, []bool{false, false, true, true}},
		{Linfo, []bool{false, true, true, true}},
		{Ldebug, []bool{true, true, true, true}},
	}

	for _, test := range tests {
		t.Run(test.level.String(), func(t *testing.T) {
			var buffer bytes.Buffer
			writer := bufio.NewWriter(&buffer)

			logger := New("test").WithOutput(NewConsoleWriter(writer, test.level, false))

			loggers := []Logger{logger.Debug(), logger.Info(), logger.Warn(), logger.Error()}

			for i, l := range loggers {
				l.Log("message")
				writer.Flush()

				if test.written[i] {
					assert.NotEqual(t, 0, buffer.Len(), "Buffer should not be empty")
				} else {
					assert.Equal(t, 0, buffer.Len(), "Buffer should be empty")
				}

				buffer.Reset()
			}
		})
	}
}
