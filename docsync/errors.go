package docsync

import (
	"errors"
	"fmt"
)

// wrapPath prefixes an error from a parser with the file it came from.
func wrapPath(path string, err error) error {
	return fmt.Errorf("%s: %w", path, err)
}

// ErrGitToplevel is returned when the content root cannot be derived
// from git and no content_root is configured.
var ErrGitToplevel = errors.New("could not determine the git toplevel, set content_root in .snipsync.yaml")

// PathNotFoundError is returned when the doc path does not exist or is
// not readable.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("the doc path %q does not exist or is not readable", e.Path)
}

// NoMarkdownFilesError is returned when a doc directory contains no
// markdown files.
type NoMarkdownFilesError struct {
	Path string
}

func (e *NoMarkdownFilesError) Error() string {
	return fmt.Sprintf("the doc path %q contains no markdown files", e.Path)
}

// NotAMarkdownFileError is returned when the doc path is a file without
// a markdown extension.
type NotAMarkdownFileError struct {
	Path string
}

func (e *NotAMarkdownFileError) Error() string {
	return fmt.Sprintf("the doc path %q is not a markdown file", e.Path)
}

// ContentFileNotFoundError is returned when a directive references a
// content file that does not exist under the content root.
type ContentFileNotFoundError struct {
	Path string
}

func (e *ContentFileNotFoundError) Error() string {
	return fmt.Sprintf("the content file %q was not found", e.Path)
}

// TagNotFoundError is returned when a directive references a tag the
// content file does not define.
type TagNotFoundError struct {
	Path string
	Tag  string
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("the snippet %q in the content file %q was not found", e.Tag, e.Path)
}
