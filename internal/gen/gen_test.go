package gen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arqons/modelschema/pkg/compiler"
)

func compileAll(t *testing.T) []*compiler.Compiled {
	t.Helper()
	reg := compiler.NewRegistry()

	role, err := compiler.Compile(compiler.RawDecl{
		Kind: compiler.RawEnum,
		Name: "Role",
		Variants: []compiler.RawVariant{
			{Name: "admin"},
			{Name: "viewer"},
		},
	}, compiler.WithRegistry(reg))
	require.NoError(t, err)

	user, err := compiler.Compile(compiler.RawDecl{
		Kind: compiler.RawRecord,
		Name: "UserJson",
		Fields: []compiler.RawField{
			{Name: "id", Type: "string"},
			{Name: "role", Type: "Role"},
		},
	}, compiler.WithRegistry(reg))
	require.NoError(t, err)

	return []*compiler.Compiled{role, user}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, "models", "example.com/models", compileAll(t))
	require.NoError(t, err)
	out := buf.String()

	require.Contains(t, out, "Code generated by modelschema. DO NOT EDIT.")
	require.Contains(t, out, "Source module: example.com/models")
	require.Contains(t, out, "package models")
	require.Contains(t, out, `TypeNames = []string{"Role", "User"}`)
	require.Contains(t, out, "SchemaJSON = map[string]string{")
	require.Contains(t, out, "TypeScriptDefs = map[string]string{")
	require.Contains(t, out, `\"enum\":[\"admin\",\"viewer\"]`)
	require.Contains(t, out, "export type User")
}

func TestRenderFailsOnUnresolvedStrictSchema(t *testing.T) {
	reg := compiler.NewRegistry()
	c, err := compiler.Compile(compiler.RawDecl{
		Kind:   compiler.RawRecord,
		Name:   "Account",
		Fields: []compiler.RawField{{Name: "role", Type: "Role"}},
	}, compiler.WithRegistry(reg), compiler.WithStrictRefs())
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Render(&buf, "models", "", []*compiler.Compiled{c})
	require.Error(t, err)
}
