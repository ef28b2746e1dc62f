package resolve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseTypeDesc(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    TypeDesc
		wantErr bool
	}{
		{
			name: "bare name",
			in:   "string",
			want: TypeDesc{Name: "string"},
		},
		{
			name: "nested wrappers",
			in:   "Option<Vec<string>>",
			want: TypeDesc{Name: "Option", Args: []TypeDesc{
				{Name: "Vec", Args: []TypeDesc{{Name: "string"}}},
			}},
		},
		{
			name: "two generic arguments",
			in:   "HashMap<Role, Permission>",
			want: TypeDesc{Name: "HashMap", Args: []TypeDesc{{Name: "Role"}, {Name: "Permission"}}},
		},
		{
			name: "tuple",
			in:   "(string, u32)",
			want: TypeDesc{Tuple: []TypeDesc{{Name: "string"}, {Name: "u32"}}},
		},
		{
			name: "tuple of wrapped",
			in:   "(Vec<u8>, Option<string>)",
			want: TypeDesc{Tuple: []TypeDesc{
				{Name: "Vec", Args: []TypeDesc{{Name: "u8"}}},
				{Name: "Option", Args: []TypeDesc{{Name: "string"}}},
			}},
		},
		{
			name: "whitespace tolerated",
			in:   "  HashMap< Role , Permission > ",
			want: TypeDesc{Name: "HashMap", Args: []TypeDesc{{Name: "Role"}, {Name: "Permission"}}},
		},
		{name: "missing close angle", in: "Vec<string", wantErr: true},
		{name: "missing close paren", in: "(string, u32", wantErr: true},
		{name: "trailing input", in: "string extra", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTypeDesc(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTypeDescString(t *testing.T) {
	for _, in := range []string{"string", "Option<Vec<string>>", "HashMap<Role, Permission>", "(string, u32)"} {
		d, err := ParseTypeDesc(in)
		require.NoError(t, err)
		reparsed, err := ParseTypeDesc(d.String())
		require.NoError(t, err)
		if diff := cmp.Diff(d, reparsed); diff != "" {
			t.Errorf("round trip of %q (-first +second):\n%s", in, diff)
		}
	}
}
