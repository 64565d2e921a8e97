// Package engine inspects the history and working state of a git repository.
//
// It is the core of gitscope, responsible for:
//   - Walking commit history (RevisionWalker)
//   - Computing changed-file sets and line-level diffs (DiffEngine)
//   - Reconstructing before and after file contents (ContentResolver)
//   - Merging index and worktree status into one view (StatusReconciler)
//   - Listing branches and guarding checkouts (BranchManager)
//
// Every operation opens the repository from a path, computes its result and
// returns. No handle or derived state is kept between calls.
package engine
