// Package application wires the loaded configuration, logger and listing
// service together and dispatches a parsed invocation to them, keeping the
// main package focused on process concerns.
package application
