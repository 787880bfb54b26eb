// Package config loads the per-project generator settings: where controller
// and view stubs are written, the file extension, and the JavaScript
// identifiers the stubs reference. Values come from built-in defaults, the
// optional .darwin.yaml file at the project root, and DARWIN_* environment
// variables, in increasing order of precedence. The file is validated
// against an embedded JSON schema before it is used.
package config
