// Package logging builds the slog loggers used across gridcut. The console
// handler renders single-line human output, the json handler emits
// structured records, and the "auto" format picks between them based on
// whether stdout is a terminal. Log lines are mirrored to a file under the
// configured log directory.
package logging
