package jsonl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
)

const (
	recordKey = "record"
	actionKey = "action"

	// ActionExit marks a diagnostic after which the filter stops.
	ActionExit = "exit"

	// ActionIgnore marks a diagnostic after which the filter carries on.
	ActionIgnore = "ignore"

	// NoRecord can be passed as a record index for diagnostics that are not
	// about a particular record.
	NoRecord = -1
)

// Diagnostics reports problems found while filtering, one line per problem, in
// the form
//
//	jsonl: [<record>] <message>; <action>.
type Diagnostics struct {
	logger *logrus.Logger
}

// NewDiagnostics returns a Diagnostics writing to w.  If colorizer is not nil,
// messages are colored according to their severity.
func NewDiagnostics(w io.Writer, colorizer *Colorizer) *Diagnostics {
	logger := logrus.New()
	logger.Out = w
	logger.Level = logrus.WarnLevel
	logger.Formatter = &DiagnosticFormatter{Colorizer: colorizer}
	return &Diagnostics{logger: logger}
}

// Fatal reports an error after which processing stops.
func (d *Diagnostics) Fatal(record int, msg string) {
	d.entry(record, ActionExit).Error(msg)
}

// InvalidEscape reports an unknown escape code which was dropped from the
// output.
func (d *Diagnostics) InvalidEscape(record int, code byte) {
	d.entry(record, ActionIgnore).Warn(fmt.Sprintf("invalid escape character '\\%c'", code))
}

func (d *Diagnostics) entry(record int, action string) *logrus.Entry {
	return d.logger.WithFields(logrus.Fields{
		recordKey: record,
		actionKey: action,
	})
}

// DiagnosticFormatter is a logrus.Formatter which renders entries in the
// format of the jsonl tool.  It understands the "record" (int) and "action"
// (string) fields; other fields are ignored.
type DiagnosticFormatter struct {
	Colorizer *Colorizer
}

var _ logrus.Formatter = (*DiagnosticFormatter)(nil)

// Format implements logrus.Formatter.
func (f *DiagnosticFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	msg := make([]byte, 0, 64)
	msg = append(msg, "jsonl: "...)
	if record, ok := entry.Data[recordKey].(int); ok && record >= 0 {
		msg = append(msg, '[')
		msg = strconv.AppendInt(msg, int64(record), 10)
		msg = append(msg, "] "...)
	}
	msg = append(msg, entry.Message...)
	if action, ok := entry.Data[actionKey].(string); ok && action != "" {
		msg = append(msg, "; "...)
		msg = append(msg, action...)
		msg = append(msg, '.')
	}
	line := f.Colorizer.AppendMessage(make([]byte, 0, len(msg)+16), entry.Level, msg)
	return append(line, '\n'), nil
}
