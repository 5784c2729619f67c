package errs

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError_MessageAndUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("bad month")
	err := fmt.Errorf("normalize: %w", &ParseError{Row: 3, Column: "DateFrom", Value: "2024/13/40", Err: inner})

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Row)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, `normalize: parse row 3 column DateFrom value "2024/13/40": bad month`, err.Error())
}

func TestParseError_NotRowScoped(t *testing.T) {
	t.Parallel()

	err := &ParseError{Column: "port", Err: errors.New("not a number")}
	assert.Equal(t, "parse column port: not a number", err.Error())
}

func TestSchemaError_Message(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  *SchemaError
		want string
	}{
		{"missing_only", &SchemaError{Missing: []string{"Unit", "UTCTo"}}, "schema: missing columns Unit, UTCTo"},
		{"reason_only", &SchemaError{Reason: `duplicate column "Unit"`}, `schema: duplicate column "Unit"`},
		{"both", &SchemaError{Missing: []string{"Unit"}, Reason: "input.csv"}, "schema: input.csv: missing columns Unit"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, c.want, c.err.Error())
		})
	}
}

func TestIOError_WrapsPathError(t *testing.T) {
	t.Parallel()

	_, openErr := os.Open("/definitely/not/here.csv")
	err := &IOError{Op: "open", Path: "/definitely/not/here.csv", Err: openErr}
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "io open /definitely/not/here.csv")
}

func TestSecretNotFoundError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `secret "db" not found`, (&SecretNotFoundError{Name: "db"}).Error())

	inner := errors.New("403 Forbidden")
	err := &SecretNotFoundError{Name: "db", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, `secret "db" not found: 403 Forbidden`, err.Error())
}
