// Package logging builds the zap loggers used by the termmeta command and
// server.
//
// Logging is silent unless a level is configured, either through the
// configuration file or the TERMMETA_LOG_LEVEL environment variable:
//
//	logger, err := logging.New("debug")
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//
// Output is human-readable console format on stderr so it never mixes with
// command output on stdout.
package logging
