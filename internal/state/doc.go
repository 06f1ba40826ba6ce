// Package state persists the installation state record: which targets
// are installed, at which version, and which OS integrations were
// applied. The record is read at the start of every lifecycle operation,
// rewritten atomically at the end of a successful one, and deleted on
// uninstall. A Store also provides the advisory lock that serializes
// concurrent aetosup invocations against one installation root.
package state
