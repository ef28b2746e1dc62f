package modelfile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arqons/modelschema/pkg/compiler"
)

const sampleDoc = `
models:
  - name: UserJson
    docs: A user account.
    renameAll: camelCase
    fields:
      - name: id
        type: ObjectId
      - name: user_name
        type: string
        minLength: 1
      - name: age
        type: Option<u32>
      - name: kind
        type: string
        literal: user
  - name: Role
    kind: enum
    variants:
      - name: admin
      - name: viewer
  - name: Event
    kind: enum
    tag: eventType
    variants:
      - name: created
        fields:
          - name: id
            type: string
      - name: deleted
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	require.Len(t, f.Models, 3)

	decls := f.Decls()
	require.Len(t, decls, 3)

	user := decls[0]
	require.Equal(t, compiler.RawRecord, user.Kind)
	require.Equal(t, "UserJson", user.Name)
	require.Equal(t, "camelCase", user.Attrs.RenameAll)
	require.Len(t, user.Fields, 4)
	require.NotNil(t, user.Fields[1].Attrs.MinLength)
	require.Equal(t, 1, *user.Fields[1].Attrs.MinLength)
	require.NotNil(t, user.Fields[3].Attrs.Literal)
	require.Equal(t, "user", *user.Fields[3].Attrs.Literal)

	role := decls[1]
	require.Equal(t, compiler.RawEnum, role.Kind)
	require.Len(t, role.Variants, 2)
	require.Empty(t, role.Variants[0].Fields)

	event := decls[2]
	require.Equal(t, "eventType", event.Attrs.Tag)
	require.Len(t, event.Variants[0].Fields, 1)
}

func TestParsedDeclsCompile(t *testing.T) {
	f, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	reg := compiler.NewRegistry()
	for _, raw := range f.Decls() {
		_, err := compiler.Compile(raw, compiler.WithRegistry(reg))
		require.NoError(t, err, raw.Name)
	}
	require.Empty(t, reg.CheckReferences())
}

func TestFieldWithOnlyOverrideCompiles(t *testing.T) {
	// `as:` alone is a valid field declaration; the override supplies the
	// shape when no type is given.
	f, err := Parse([]byte(`
models:
  - name: Holder
    fields:
      - name: value
        as: string
`))
	require.NoError(t, err)

	c, err := compiler.Compile(f.Decls()[0])
	require.NoError(t, err)

	schema, err := c.JSONSchema()
	require.NoError(t, err)
	value, ok := schema.Lookup("value")
	require.True(t, ok)
	require.Equal(t, "string", value.Type)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`
models:
  - name: User
    renameall: camelCase
`))
	require.Error(t, err)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing model name",
			doc:  "models:\n  - docs: nothing\n",
		},
		{
			name: "record with variants",
			doc:  "models:\n  - name: A\n    variants:\n      - name: x\n",
		},
		{
			name: "enum with fields",
			doc:  "models:\n  - name: A\n    kind: enum\n    fields:\n      - name: x\n        type: string\n",
		},
		{
			name: "enum without variants",
			doc:  "models:\n  - name: A\n    kind: enum\n",
		},
		{
			name: "unknown kind",
			doc:  "models:\n  - name: A\n    kind: struct\n",
		},
		{
			name: "field without type",
			doc:  "models:\n  - name: A\n    fields:\n      - name: x\n",
		},
		{
			name: "unsupported version",
			doc:  "version: 2\nmodels: []\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestSkipEntries(t *testing.T) {
	f, err := Parse([]byte(`
models:
  - name: Kept
    fields:
      - name: a
        type: string
  - name: Dropped
    skip: true
    fields:
      - name: a
        type: string
`))
	require.NoError(t, err)
	decls := f.Decls()
	require.Len(t, decls, 1)
	require.Equal(t, "Kept", decls[0].Name)
}
