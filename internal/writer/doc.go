// Package writer puts planned files on disk through an afero filesystem and
// reports each one with a Rails-style status line ("create", "identical",
// "force", "remove", "missing"). In pretend mode nothing is written, but
// pretended files count as existing for the rest of the run so a dry run
// reports the same statuses a real run would.
package writer
