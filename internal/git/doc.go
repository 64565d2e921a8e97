// Package git provides the version-control backend used by the engine.
//
// It exposes the capabilities the engine needs behind small interfaces:
//   - Opening a path as a repository (Opener)
//   - Resolving HEAD, refs and commits, and walking history
//   - Diffing two trees, or a tree against the working tree and index
//   - Reading blobs and working-tree files
//   - Reporting combined index/worktree status
//   - Repointing HEAD and force-updating the working tree
//
// The default implementation is built on go-git. This package should be the
// only place that talks to go-git directly.
package git
