// Package cli defines the Cobra command tree for the darwin CLI. Commands
// only handle flag parsing and output; planning and writing live in the
// scaffold, writer and generator packages.
package cli
