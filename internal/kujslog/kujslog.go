// Package kujslog is a small tagged/leveled wrapper around logrus.
// Lowering, resolution, type checking and emission each log through their
// own tagged *Logger at Debug level (inference and the typecheck rerun
// driver share the "typecheck" tag; symbol collection does not log), so a
// `--loglevel debug` run traces the pipeline stage by stage.
package kujslog

import (
	"time"

	"github.com/sirupsen/logrus"
)

var base = logrus.New()

// enabledTags, when non-nil, restricts logging to the listed tags —
// driven by --config's logtags (cmd/kujs/config.go). A nil map means
// every tag logs, the default.
var enabledTags map[string]bool

func init() {
	base.SetLevel(logrus.InfoLevel)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// SetLevel sets the process-wide minimum log level, driven by
// cmd/kujs's --loglevel flag.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	base.SetLevel(lvl)
	return nil
}

// SetTags restricts logging to the given tags. An empty list clears the
// restriction and re-enables every tag.
func SetTags(tags []string) {
	if len(tags) == 0 {
		enabledTags = nil
		return
	}
	enabledTags = make(map[string]bool, len(tags))
	for _, t := range tags {
		enabledTags[t] = true
	}
}

// Logger logs under a fixed tag, identifying which pass emitted a line.
type Logger struct {
	tag string
}

// New returns a Logger tagged with tag (e.g. "lower", "resolve", "infer").
func New(tag string) *Logger {
	return &Logger{tag: tag}
}

func (l *Logger) entry() *logrus.Entry {
	return base.WithField("tag", l.tag)
}

func (l *Logger) enabled() bool {
	return enabledTags == nil || enabledTags[l.tag]
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.enabled() {
		l.entry().Debugf(format, args...)
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.enabled() {
		l.entry().Infof(format, args...)
	}
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.enabled() {
		l.entry().Errorf(format, args...)
	}
}

// Timed logs name's start at Debug, runs fn, then logs how long it took —
// the same shape the teacher's own log.Timed call sites use to trace
// lexing/parsing stage durations.
func (l *Logger) Timed(name string, fn func()) {
	start := time.Now()
	l.Debug("%s: starting", name)
	fn()
	l.Debug("%s: finished in %s", name, time.Since(start))
}
