// Package consolelog configures the process-wide logrus logger used for
// every build/watch/push-server log line, restoring the colored,
// timestamped console output the original tool printed by hand (spec.md
// §1.1 of the expanded spec) through logrus's own text formatter instead of
// a bespoke ANSI writer.
package consolelog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger tagged with a tool=luabundle field, written by
// logrus's text formatter with an HH:MM:SS timestamp and field=value pairs,
// colored when stderr is a terminal.
func New() *logrus.Entry {
	log := logrus.New()
	log.Out = os.Stderr
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "15:04:05",
		FullTimestamp:   true,
	})
	return log.WithField("tool", "luabundle")
}

// ForModule returns a derived entry tagged with the module key a log line
// concerns, matching the "module" field named in spec.md §1.1.
func ForModule(log *logrus.Entry, module string) *logrus.Entry {
	return log.WithField("module", module)
}

// ForPhase returns a derived entry tagged with the build phase a log line
// concerns.
func ForPhase(log *logrus.Entry, phase string) *logrus.Entry {
	return log.WithField("phase", phase)
}
