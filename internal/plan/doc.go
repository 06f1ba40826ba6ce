// Package plan computes and executes the ordered, idempotent steps
// that move a machine to the desired installed layout: directories to
// create, built binaries to copy, and companion files to write. Every
// step can be re-run safely; install and update share the same plan
// shape because copies always overwrite.
package plan
