// Package logging assembles structured slog loggers used across trialgen.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing so pipeline components emit log lines with the same shape.
// Components tag their lines via WithComponent; the console handler promotes
// the component into the message prefix.
//
// Prefer these constructors over hand-rolled slog setup.
package logging
