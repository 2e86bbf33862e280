// Package esllog defines the logging sink boundary the rest of this
// module is built against. spec.md §9 calls the logging sink "the only
// process-wide dependency" and scopes its configuration out as an
// external concern (spec.md §1); Logger is that external interface.
package esllog

import "github.com/sirupsen/logrus"

// Logger is the minimal sink pkg/session, pkg/client, and pkg/listener
// log through. *logrus.Logger and logrus.FieldLogger both satisfy it
// directly — no adapter type needed, matching the way grafana-k6's
// cmd package takes a logrus.FieldLogger constructor parameter.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// nopLogger discards everything. It is the default when a caller
// passes a nil Logger.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Nop returns a Logger that discards all output.
func Nop() Logger { return nopLogger{} }

// Default wraps logrus's package-level standard logger, convenient for
// CLI binaries (cmd/eslcli, cmd/eslserver) that want readable output
// without constructing their own logrus.Logger.
func Default() Logger { return logrus.StandardLogger() }

// orNop returns l, or Nop() if l is nil — the guard every constructor
// in this module applies to its Logger parameter.
func orNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// OrNop is the exported form of orNop for use by other packages in
// this module (pkg/session, pkg/client, pkg/listener, pkg/journal,
// pkg/monitor) that accept a Logger constructor argument.
func OrNop(l Logger) Logger { return orNop(l) }
