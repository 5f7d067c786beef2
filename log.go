package mdexpand

import "github.com/juju/loggo"

// logger is the package-wide structured logger. Callers configure
// verbosity via loggo's usual mechanisms (loggo.ConfigureLoggers, or
// logger.SetLogLevel directly) rather than through mdexpand itself.
var logger = loggo.GetLogger("mdexpand")
