// Package errors provides sentinel errors and custom error types for gitscope.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotARepository indicates that a path does not open as a git repository
	ErrNotARepository = errors.New("not a git repository")

	// ErrRevisionResolution indicates that a ref or revision could not be resolved
	ErrRevisionResolution = errors.New("revision could not be resolved")

	// ErrCommitNotFound indicates that a commit id does not name a commit object
	ErrCommitNotFound = errors.New("commit not found")

	// ErrInvalidRevisionID indicates that a commit id is malformed
	ErrInvalidRevisionID = errors.New("invalid revision id")

	// ErrFileNotInComparison indicates that a path has no delta in a comparison
	ErrFileNotInComparison = errors.New("file not in comparison")

	// ErrFileNotFound indicates that a path is absent on both sides of a comparison
	ErrFileNotFound = errors.New("file not found")

	// ErrNonUTF8Content indicates that a non-binary blob is not valid UTF-8 text
	ErrNonUTF8Content = errors.New("content is not valid UTF-8")

	// ErrUncommittedChanges indicates that the checkout guard found work that would be lost
	ErrUncommittedChanges = errors.New("uncommitted changes")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrCheckoutInconsistent indicates that HEAD moved but the working tree was not updated
	ErrCheckoutInconsistent = errors.New("checkout left repository inconsistent")
)

// RepositoryError represents a failure to open a path as a repository
type RepositoryError struct {
	Path string
	Err  error
}

func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to open repository at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to open repository at %s", e.Path)
}

// Is returns true if the target error is ErrNotARepository
func (e *RepositoryError) Is(target error) bool {
	return target == ErrNotARepository
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new RepositoryError
func NewRepositoryError(path string, err error) *RepositoryError {
	return &RepositoryError{Path: path, Err: err}
}

// RevisionError represents a bad or unresolvable revision. Kind is one of
// ErrRevisionResolution, ErrCommitNotFound or ErrInvalidRevisionID.
type RevisionError struct {
	Revision string
	Kind     error
	Err      error
}

func (e *RevisionError) Error() string {
	var msg string
	switch e.Kind {
	case ErrCommitNotFound:
		msg = fmt.Sprintf("commit %s not found", e.Revision)
	case ErrInvalidRevisionID:
		msg = fmt.Sprintf("invalid commit id %q", e.Revision)
	default:
		msg = fmt.Sprintf("failed to resolve revision %s", e.Revision)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is returns true if the target error is the kind of this revision error
func (e *RevisionError) Is(target error) bool {
	return target == e.Kind
}

func (e *RevisionError) Unwrap() error {
	return e.Err
}

// NewRevisionResolutionError creates a RevisionError for an unresolvable ref
func NewRevisionResolutionError(revision string, err error) *RevisionError {
	return &RevisionError{Revision: revision, Kind: ErrRevisionResolution, Err: err}
}

// NewCommitNotFoundError creates a RevisionError for a missing commit object
func NewCommitNotFoundError(revision string, err error) *RevisionError {
	return &RevisionError{Revision: revision, Kind: ErrCommitNotFound, Err: err}
}

// NewInvalidRevisionIDError creates a RevisionError for a malformed commit id
func NewInvalidRevisionIDError(revision string) *RevisionError {
	return &RevisionError{Revision: revision, Kind: ErrInvalidRevisionID}
}

// FileError represents a path-level failure within a comparison. Kind is one
// of ErrFileNotInComparison, ErrFileNotFound or ErrNonUTF8Content.
type FileError struct {
	Path string
	Kind error
	Err  error
}

func (e *FileError) Error() string {
	var msg string
	switch e.Kind {
	case ErrFileNotInComparison:
		msg = fmt.Sprintf("file %s has no changes in this comparison", e.Path)
	case ErrNonUTF8Content:
		msg = fmt.Sprintf("file %s is not valid UTF-8 text", e.Path)
	default:
		msg = fmt.Sprintf("file %s not found on either side of the comparison", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is returns true if the target error is the kind of this file error
func (e *FileError) Is(target error) bool {
	return target == e.Kind
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileNotInComparisonError creates a FileError for a path without a delta
func NewFileNotInComparisonError(path string) *FileError {
	return &FileError{Path: path, Kind: ErrFileNotInComparison}
}

// NewFileNotFoundError creates a FileError for a path absent on both sides
func NewFileNotFoundError(path string) *FileError {
	return &FileError{Path: path, Kind: ErrFileNotFound}
}

// NewNonUTF8ContentError creates a FileError for undecodable text
func NewNonUTF8ContentError(path string) *FileError {
	return &FileError{Path: path, Kind: ErrNonUTF8Content}
}

// UncommittedChangesError represents a checkout blocked by the guard
type UncommittedChangesError struct {
	BranchName string
	Paths      []string
}

func (e *UncommittedChangesError) Error() string {
	msg := fmt.Sprintf("cannot checkout %s: you have uncommitted changes", e.BranchName)
	if len(e.Paths) > 0 {
		msg += " in " + strings.Join(e.Paths, ", ")
	}
	return msg + ". Commit or stash them first"
}

// Is returns true if the target error is ErrUncommittedChanges
func (e *UncommittedChangesError) Is(target error) bool {
	return target == ErrUncommittedChanges
}

// NewUncommittedChangesError creates a new UncommittedChangesError
func NewUncommittedChangesError(branchName string, paths []string) *UncommittedChangesError {
	return &UncommittedChangesError{BranchName: branchName, Paths: paths}
}

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// CheckoutError represents a working tree update that failed after HEAD was
// already pointed at the new branch. The repository is left as-is.
type CheckoutError struct {
	BranchName string
	Err        error
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("HEAD now points at %s but the working tree could not be updated: %v", e.BranchName, e.Err)
}

// Is returns true if the target error is ErrCheckoutInconsistent
func (e *CheckoutError) Is(target error) bool {
	return target == ErrCheckoutInconsistent
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}

// NewCheckoutError creates a new CheckoutError
func NewCheckoutError(branchName string, err error) *CheckoutError {
	return &CheckoutError{BranchName: branchName, Err: err}
}

// Kind returns a stable name for the error kind of err, or "Internal" for
// backend and IO failures that carry no kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotARepository):
		return "NotARepository"
	case errors.Is(err, ErrInvalidRevisionID):
		return "InvalidRevisionId"
	case errors.Is(err, ErrCommitNotFound):
		return "CommitNotFound"
	case errors.Is(err, ErrRevisionResolution):
		return "RevisionResolutionFailed"
	case errors.Is(err, ErrFileNotInComparison):
		return "FileNotInComparison"
	case errors.Is(err, ErrFileNotFound):
		return "FileNotFound"
	case errors.Is(err, ErrNonUTF8Content):
		return "NonUtf8Content"
	case errors.Is(err, ErrUncommittedChanges):
		return "UncommittedChangesConflict"
	case errors.Is(err, ErrBranchNotFound):
		return "BranchNotFound"
	case errors.Is(err, ErrCheckoutInconsistent):
		return "CheckoutInconsistent"
	default:
		return "Internal"
	}
}
