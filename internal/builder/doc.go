// Package builder invokes the external build provider to produce the
// binary artifacts the install plan copies into place. The provider is
// an opaque collaborator: one invocation per target, success means the
// artifact exists at the provider's conventional output path.
package builder
