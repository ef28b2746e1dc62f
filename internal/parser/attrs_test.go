package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arqons/modelschema/internal/diag"
)

func TestParseMarkers(t *testing.T) {
	diags := &diag.List{}
	m, prose := parseMarkers("User", "User is an account.\n+schema\n+schema:renameAll=camelCase\n+schema:tag=kind\n", diags)
	require.True(t, m.optIn)
	require.Equal(t, "camelCase", m.attrs.RenameAll)
	require.Equal(t, "kind", m.attrs.Tag)
	require.False(t, m.attrs.Skip)
	require.Equal(t, "User is an account.", prose)
	require.False(t, diags.HasWarnings())
}

func TestParseMarkersUnknownKeyWarns(t *testing.T) {
	diags := &diag.List{}
	m, _ := parseMarkers("User", "+schema:frobnicate=yes\n", diags)
	require.True(t, m.optIn)
	require.True(t, diags.HasWarnings())
}

func TestParseMarkersAbsent(t *testing.T) {
	diags := &diag.List{}
	m, prose := parseMarkers("User", "Just a doc comment.\n", diags)
	require.False(t, m.optIn)
	require.Equal(t, "Just a doc comment.", prose)
}

func TestParseFieldTag(t *testing.T) {
	diags := &diag.List{}

	attrs := parseFieldTag("User", "Name", "`json:\"user_name\" schema:\"minLength=2\"`", diags)
	require.Equal(t, "user_name", attrs.Rename)
	require.NotNil(t, attrs.MinLength)
	require.Equal(t, 2, *attrs.MinLength)
	require.False(t, diags.HasWarnings())

	attrs = parseFieldTag("User", "Name", "`json:\"a\" schema:\"rename=b\"`", diags)
	// The schema rename wins over the json fallback.
	require.Equal(t, "b", attrs.Rename)

	attrs = parseFieldTag("User", "Name", "`json:\"-\"`", diags)
	require.True(t, attrs.Skip)

	attrs = parseFieldTag("User", "Name", "`schema:\"skip\"`", diags)
	require.True(t, attrs.Skip)

	attrs = parseFieldTag("User", "Name", "`schema:\"as=string,literal=user\"`", diags)
	require.Equal(t, "string", attrs.ExplicitType)
	require.NotNil(t, attrs.Literal)
	require.Equal(t, "user", *attrs.Literal)
}

func TestParseFieldTagMalformedWarns(t *testing.T) {
	tests := []string{
		"`schema:\"minLength=abc\"`",
		"`schema:\"minLength=-1\"`",
		"`schema:\"rename=\"`",
		"`schema:\"as=\"`",
		"`schema:\"wibble=1\"`",
	}
	for _, tag := range tests {
		diags := &diag.List{}
		parseFieldTag("User", "Name", tag, diags)
		require.True(t, diags.HasWarnings(), tag)
	}
}
