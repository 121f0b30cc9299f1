package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evamaxfield/extract-imported-libraries/internal/extract/lang"
)

// UnsupportedLanguageError reports a file whose extension maps to no grammar
// adapter. Directory scans skip such files silently; single-file extraction
// surfaces this to the caller.
type UnsupportedLanguageError struct {
	Path string
	Ext  string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported file extension %q for %s (supported: %s)",
		e.Ext, e.Path, strings.Join(lang.Extensions(), ", "))
}

// ParseError reports that the parsing engine rejected a source file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// visitError reports a failed tree visit. Adapter/grammar mismatches keep
// their own error kind so per-file failure text distinguishes them from
// ordinary parse failures.
func visitError(path string, err error) error {
	var malformed *lang.MalformedNodeError
	if errors.As(err, &malformed) {
		return fmt.Errorf("%s: %w", path, err)
	}
	return &ParseError{Path: path, Err: err}
}
