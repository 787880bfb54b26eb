// Package scaffold plans the files behind a Darwin.js controller/view pair.
// It classifies a name as an action or a resource, expands resources into
// the fixed action set, and renders namespace, controller and view stubs
// from embedded templates. It never touches the filesystem itself: existence
// checks go through a Checker and the resulting FilePlans are written by the
// caller.
package scaffold
