// Package xlog wires the engine's debug-only diagnostics (validation
// failures, cascading-erase tracing) to github.com/op/go-logging, the way
// gitlab.x.lan/yunshan/droplet-libs/logger does it: a package-level logger
// named for the owning package, wrapped with a prefix for the call site
// that needs one. Nothing in flowspace's insert/query hot path logs;
// this exists for the validator and for callers who want visibility into
// cascading erasure.
package xlog

import "github.com/op/go-logging"

var log = logging.MustGetLogger("flowspace")

// PrefixLogger wraps the package logger with a fixed prefix, mirroring
// logger.PrefixLogger so call sites that identify a specific Layer or
// dimension can tag every line without formatting it themselves.
type PrefixLogger struct {
	prefix string
}

// WithPrefix returns a logger that tags every message with prefix, e.g.
// the name of the dimension or the Layer instance being diagnosed.
func WithPrefix(prefix string) *PrefixLogger {
	return &PrefixLogger{prefix: prefix}
}

func (l *PrefixLogger) Warningf(format string, args ...interface{}) {
	if log.IsEnabledFor(logging.WARNING) {
		log.Warningf(l.prefix+" "+format, args...)
	}
}

func (l *PrefixLogger) Debugf(format string, args ...interface{}) {
	if log.IsEnabledFor(logging.DEBUG) {
		log.Debugf(l.prefix+" "+format, args...)
	}
}

func (l *PrefixLogger) Errorf(format string, args ...interface{}) {
	if log.IsEnabledFor(logging.ERROR) {
		log.Errorf(l.prefix+" "+format, args...)
	}
}
