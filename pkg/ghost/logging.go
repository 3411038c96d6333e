package ghost

import "github.com/rs/zerolog"

// zlog is an optional structured logger. If unset, the package stays silent.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used for Context lifecycle and
// generation events. Call it before creating Contexts; per-Context loggers
// are derived at Load.
func SetLogger(l zerolog.Logger) { zlog = &l }

// baseLogger returns the installed logger or a disabled one.
func baseLogger() zerolog.Logger {
	if zlog != nil {
		return *zlog
	}
	return zerolog.Nop()
}
