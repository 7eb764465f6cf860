package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	// ErrMissingDependencyPath indicates a required sibling directory or file is absent
	ErrMissingDependencyPath = errors.New("missing dependency path")

	// ErrExternalToolFailure indicates an invoked subprocess failed
	ErrExternalToolFailure = errors.New("external tool failure")

	// ErrMalformedManifest indicates the package manifest is unreadable or incomplete
	ErrMalformedManifest = errors.New("malformed package manifest")

	// ErrOutputDrift indicates generated output differs from the files on disk
	ErrOutputDrift = errors.New("generated output is out of date")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")
)

// DependencyError reports a required path that does not exist
type DependencyError struct {
	Name string
	Path string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found at %s", e.Name, e.Path)
}

// Is makes DependencyError match ErrMissingDependencyPath
func (e *DependencyError) Is(target error) bool {
	return target == ErrMissingDependencyPath
}

// NewDependencyError creates a new DependencyError
func NewDependencyError(name, path string) *DependencyError {
	return &DependencyError{
		Name: name,
		Path: path,
	}
}

// ToolError represents a failed external process
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stdout   []byte
	Err      error
}

func (e *ToolError) Error() string {
	cmd := strings.TrimSpace(e.Tool + " " + strings.Join(e.Args, " "))
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s exited with status %d: %v", cmd, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", cmd, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Is makes ToolError match ErrExternalToolFailure
func (e *ToolError) Is(target error) bool {
	return target == ErrExternalToolFailure
}

// HasOutput reports whether the process wrote anything to stdout before failing
func (e *ToolError) HasOutput() bool {
	return len(strings.TrimSpace(string(e.Stdout))) > 0
}

// NewToolError creates a new ToolError
func NewToolError(tool string, args []string, exitCode int, stdout []byte, err error) *ToolError {
	return &ToolError{
		Tool:     tool,
		Args:     args,
		ExitCode: exitCode,
		Stdout:   stdout,
		Err:      err,
	}
}

// ManifestError represents a package manifest that cannot be used
type ManifestError struct {
	Path  string
	Field string
	Err   error
}

func (e *ManifestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("manifest %s: field %q: %v", e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// Is makes ManifestError match ErrMalformedManifest
func (e *ManifestError) Is(target error) bool {
	return target == ErrMalformedManifest
}

// NewManifestError creates a new ManifestError
func NewManifestError(path, field string, err error) *ManifestError {
	return &ManifestError{
		Path:  path,
		Field: field,
		Err:   err,
	}
}

// DriftError lists generated files whose content differs from disk
type DriftError struct {
	Paths []string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("%v: %s", ErrOutputDrift, strings.Join(e.Paths, ", "))
}

func (e *DriftError) Unwrap() error {
	return ErrOutputDrift
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
