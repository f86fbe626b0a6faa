// Package log forwards the log output of the echo router to a logger.
package log

import (
	"io"
	"strings"

	"github.com/livingaura/aura/encoding/json"
	"github.com/livingaura/aura/log"
)

type logwrapper struct {
	logger log.Logger
}

type logentry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NewWrapper returns a writer for the echo logger. Each JSON entry written
// by echo is logged with its level, one event per line of the message. Other
// input is logged as it is.
func NewWrapper(logger log.Logger) io.Writer {
	return &logwrapper{
		logger: logger,
	}
}

func (b *logwrapper) Write(p []byte) (int, error) {
	entry := logentry{}
	if err := json.Unmarshal(p, &entry); err != nil || len(entry.Message) == 0 {
		return b.logger.Write(p)
	}

	var logger log.Logger

	switch strings.ToUpper(entry.Level) {
	case "ERROR":
		logger = b.logger.Error()
	case "WARN":
		logger = b.logger.Warn()
	case "INFO":
		logger = b.logger.Info()
	default:
		logger = b.logger.Debug()
	}

	for _, line := range strings.Split(entry.Message, "\n") {
		logger.Log(line)
	}

	return len(p), nil
}
