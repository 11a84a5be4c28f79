// Package logging sets up structured logging for the brainai CLI.
//
// Without --debug only warnings reach stderr. With --debug, JSON logs at
// debug level go to a size-rotated file under ~/.brainai/logs/, which
// `brainai logs` can tail and filter.
package logging
