package jsonl

import "github.com/sirupsen/logrus"

// A Colorizer wraps diagnostic messages in terminal color codes according to
// their level.  A nil *Colorizer prints messages unchanged.
type Colorizer struct {
	WarningColorCode []byte
	ErrorColorCode   []byte
	ResetCode        []byte
}

// Some color ANSI codes
var (
	Reset     = []byte("\033[0m")
	Yellow    = []byte("\033[33m")
	BrightRed = []byte("\033[31;1m")
)

// DefaultColorizer shows warnings in yellow and errors in bright red.
var DefaultColorizer = Colorizer{
	WarningColorCode: Yellow,
	ErrorColorCode:   BrightRed,
	ResetCode:        Reset,
}

func (c *Colorizer) colorCode(level logrus.Level) []byte {
	if level <= logrus.ErrorLevel {
		return c.ErrorColorCode
	}
	if level == logrus.WarnLevel {
		return c.WarningColorCode
	}
	return nil
}

// AppendMessage appends msg to dst, surrounded by the color codes for level.
func (c *Colorizer) AppendMessage(dst []byte, level logrus.Level, msg []byte) []byte {
	if c == nil {
		return append(dst, msg...)
	}
	code := c.colorCode(level)
	if code == nil {
		return append(dst, msg...)
	}
	dst = append(dst, code...)
	dst = append(dst, msg...)
	return append(dst, c.ResetCode...)
}
