// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/dirtags/dirtags/internal/host/manifest"
	"github.com/dirtags/dirtags/internal/host/osfs"
	"github.com/dirtags/dirtags/internal/issue"
	"github.com/dirtags/dirtags/internal/listing"
	"github.com/dirtags/dirtags/pkg/types"
)

type (
	// ServiceError pairs a user-facing ActionableError with the issue catalog
	// entry explaining it. Always create via newServiceError.
	ServiceError struct {
		// Err is the underlying error (must not be nil).
		Err *issue.ActionableError
		// IssueID is the optional issue catalog ID for rendering help text.
		IssueID issue.Id
	}

	// manifestError marks a failure to load or validate a manifest file.
	manifestError struct {
		path string
		err  error
	}
)

func (e *manifestError) Error() string { return e.err.Error() }

func (e *manifestError) Unwrap() error { return e.err }

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err *issue.ActionableError, issueID issue.Id) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyListError maps a listing failure to an actionable error and the
// matching issue catalog entry. root is the directory being listed.
func classifyListError(err error, root string) *ServiceError {
	ctx := issue.NewErrorContext().WithOperation("list directory").WithResource(root).Wrap(err)

	var (
		mdErr *listing.MetadataError
		mfErr *manifestError
	)
	switch {
	case errors.As(err, &mfErr):
		return newServiceError(issue.NewErrorContext().
			WithOperation("load manifest").
			WithResource(mfErr.path).
			WithSuggestion("Check the manifest against the #Manifest schema").
			Wrap(mfErr.err).
			Build(), issue.ManifestInvalidId)
	case errors.As(err, &mdErr):
		return newServiceError(issue.NewErrorContext().
			WithOperation("read metadata").
			WithResource(mdErr.Name).
			WithSuggestion("Check that the file is readable by the current user").
			WithSuggestion("Use --xattr to read a different attribute").
			Wrap(mdErr.Err).
			Build(), issue.MetadataReadFailedId)
	case errors.Is(err, context.Canceled):
		return newServiceError(ctx.Build(), 0)
	case errors.Is(err, osfs.ErrNotDirectory):
		return newServiceError(ctx.WithSuggestion("Pass a directory, not a file").Build(), issue.RootNotDirectoryId)
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, manifest.ErrPathNotFound):
		return newServiceError(ctx.WithSuggestion("Check the path for typos").Build(), issue.RootNotFoundId)
	case errors.Is(err, fs.ErrPermission):
		return newServiceError(ctx.WithSuggestion("Check the directory permissions").Build(), issue.PermissionDeniedId)
	default:
		return newServiceError(ctx.Build(), 0)
	}
}

// renderServiceError writes the formatted error and, when known, the issue
// catalog entry explaining it. stylePath selects the glamour style.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, verbose bool, stylePath string) {
	if svcErr == nil {
		return
	}

	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+svcErr.Err.Format(verbose))

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(stylePath)
		if renderErr != nil {
			fmt.Fprintln(stderr, WarningStyle.Render("Warning: ")+"failed to render issue help: "+renderErr.Error())
			return
		}
		fmt.Fprint(stderr, rendered)
	}
}

// fail renders svcErr and converts it into an ExitError.
func (a *App) fail(svcErr *ServiceError, verbose bool, stylePath string) error {
	renderServiceError(a.stderr, svcErr, verbose, stylePath)
	return &ExitError{Code: types.ExitFailure, Err: svcErr}
}

// formatErrorForDisplay uses ActionableError.Format when available.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
