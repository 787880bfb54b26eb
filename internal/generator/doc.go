// Package generator drives one scaffold run: it classifies the name, then
// for each ActionPath writes the missing namespace stubs followed by the
// controller and view stubs. The first failed write aborts the run; files
// written before it stay on disk.
package generator
