package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evamaxfield/extract-imported-libraries/internal/extract/lang"
)

// Test Plan for error reporting:
// - Adapter/grammar mismatches keep their own error kind and never report as
//   parse failures
// - Other visit failures report as ParseError
// - Both carry the file path in their message

func TestVisitError_MalformedNodeStaysDistinct(t *testing.T) {
	t.Parallel()

	malformed := &lang.MalformedNodeError{
		Language: lang.Python,
		NodeKind: "import_from_statement",
		Field:    "module_name",
	}
	err := visitError("app.py", malformed)

	var gotMalformed *lang.MalformedNodeError
	require.ErrorAs(t, err, &gotMalformed)
	assert.Equal(t, malformed, gotMalformed)

	var parseErr *ParseError
	assert.False(t, errors.As(err, &parseErr))
	assert.Contains(t, err.Error(), "app.py")
}

func TestVisitError_OtherFailuresAreParseErrors(t *testing.T) {
	t.Parallel()

	err := visitError("app.py", errors.New("unexpected end of input"))

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "app.py", parseErr.Path)
	assert.Contains(t, err.Error(), "app.py")
}
