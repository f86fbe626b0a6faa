package api

import (
	"fmt"
	"strings"

	"github.com/livingaura/aura/encoding/json"
	"github.com/livingaura/aura/log"
)

// LogEvent is a single event of the application log.
type LogEvent struct {
	Timestamp int64  `json:"ts" format:"int64"`
	Level     string `json:"level"`
	Component string `json:"component"`
	Message   string `json:"message"`
	Caller    string `json:"caller"`

	Data map[string]string `json:"data"`
}

// Unmarshal converts a log.Event to a LogEvent. All values of the
// event data are converted to strings.
func (e *LogEvent) Unmarshal(le *log.Event) {
	e.Timestamp = le.Time.Unix()
	e.Level = le.Level.String()
	e.Component = strings.ToLower(le.Component)
	e.Message = le.Message
	e.Caller = le.Caller

	e.Data = make(map[string]string)

	for k, v := range le.Data {
		var value string

		switch val := v.(type) {
		case string:
			value = val
		case error:
			value = val.Error()
		case fmt.Stringer:
			value = val.String()
		default:
			if jsonvalue, err := json.Marshal(v); err == nil {
				value = string(jsonvalue)
			} else {
				value = err.Error()
			}
		}

		e.Data[k] = value
	}
}
