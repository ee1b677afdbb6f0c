// Package logger provides the named, colored leveled loggers used by every subsystem.
package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beka-birhanu/penguin-maze/config"
	"github.com/sirupsen/logrus"
)

var ErrNilWriter = errors.New("logger output writer is nil")

// Logger writes lines of the form "[NAME] [LEVEL] message" to its output.
type Logger struct {
	name string
	log  *logrus.Logger
}

// New creates a logger tagged with name. color is an ANSI escape used for the tag;
// pass an empty string for plain output.
func New(name, color string, out io.Writer) (*Logger, error) {
	if out == nil {
		return nil, ErrNilWriter
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&formatter{name: strings.ToUpper(name), color: color})

	return &Logger{name: name, log: l}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.log.Info(msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.log.Warn(msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.log.Error(msg)
}

// WithFields logs msg at info level with structured key/value pairs appended.
func (l *Logger) WithFields(fields map[string]interface{}, msg string) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

type formatter struct {
	name  string
	color string
}

// Format implements logrus.Formatter.
func (f *formatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if f.color != "" {
		fmt.Fprintf(&b, "%s[%s]%s ", f.color, f.name, config.ColorReset)
		fmt.Fprintf(&b, "%s[%s]%s ", levelColor(e.Level), levelName(e.Level), config.LogColorReset)
	} else {
		fmt.Fprintf(&b, "[%s] [%s] ", f.name, levelName(e.Level))
	}
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelName(l logrus.Level) string {
	switch l {
	case logrus.WarnLevel:
		return "WARNING"
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return "ERROR"
	default:
		return strings.ToUpper(l.String())
	}
}

func levelColor(l logrus.Level) string {
	switch l {
	case logrus.WarnLevel:
		return config.LogWarningColor
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return config.LogErrorColor
	default:
		return config.LogInfoColor
	}
}
