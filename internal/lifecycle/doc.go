// Package lifecycle orchestrates the install, update and uninstall
// workflows. Each operation is a strictly ordered pipeline over the
// probe, prereq, builder, plan, integrate and envcfg packages, run
// under the installation root's advisory lock. Failures in
// optional-feature steps are downgraded to warnings here; required
// steps propagate and abort.
package lifecycle
