// Package schema_test tests YAML decoding into ordered records.
// Related: internal/schema/decode.go, internal/schema/record.go
// Tags: schema, yaml, parsing, ordering, merge-keys, aliases
package schema

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_PreservesKeyOrder(t *testing.T) {
	t.Parallel()

	v, err := ParseDocument("zeta: 1\nalpha: 2\nmiddle: 3\n")
	require.NoError(t, err)

	rec, ok := v.(*Record)
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "middle"}, rec.Keys())
}

func TestParseDocument_Values(t *testing.T) {
	t.Parallel()

	text := `researcher:
  role: Senior Researcher
  max_iter: 15
  temperature: 0.7
  verbose: true
  llm: ~
  tools:
    - search
    - scrape
`
	v, err := ParseDocument(text)
	require.NoError(t, err)

	root := v.(*Record)
	researcher, ok := root.Get("researcher")
	require.True(t, ok)
	rec := researcher.(*Record)

	role, _ := rec.Get("role")
	assert.Equal(t, "Senior Researcher", role)
	maxIter, _ := rec.Get("max_iter")
	assert.Equal(t, 15, maxIter)
	temp, _ := rec.Get("temperature")
	assert.Equal(t, 0.7, temp)
	verbose, _ := rec.Get("verbose")
	assert.Equal(t, true, verbose)
	llm, present := rec.Get("llm")
	assert.True(t, present)
	assert.Nil(t, llm)
	tools, _ := rec.Get("tools")
	assert.Equal(t, []any{"search", "scrape"}, tools)
}

func TestParseDocument_TopLevelShapes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		want any
	}{
		"empty":    {text: "", want: nil},
		"comments": {text: "# nothing here\n", want: nil},
		"scalar":   {text: "just text\n", want: "just text"},
		"sequence": {text: "- a\n- b\n", want: []any{"a", "b"}},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			v, err := ParseDocument(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestParseDocument_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text    string
		wantErr string
	}{
		"unclosed flow mapping": {text: "a: {b: 1\n", wantErr: "yaml"},
		"tab indentation":       {text: "a:\n\tb: 1\n", wantErr: "yaml"},
		"duplicate key":         {text: "a: 1\nb: 2\na: 3\n", wantErr: `mapping key "a" already defined at line 1`},
		"multiple documents":    {text: "a: 1\n---\nb: 2\n", wantErr: "expected a single document"},
		"sequence key":          {text: "? [a, b]\n: 1\n", wantErr: "unsupported mapping key"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseDocument(tt.text)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// aliasChain builds a document whose last level expands to 10^levels scalars.
func aliasChain(levels int) string {
	var b strings.Builder
	b.WriteString("l0: &l0 [" + strings.TrimSuffix(strings.Repeat("x, ", 10), ", ") + "]\n")
	for i := 1; i < levels; i++ {
		refs := strings.TrimSuffix(strings.Repeat(fmt.Sprintf("*l%d, ", i-1), 10), ", ")
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, refs)
	}
	return b.String()
}

func TestParseDocument_Aliases(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text    string
		wantErr string
	}{
		"anchor containing itself": {
			text:    "t: &x\n  description: d\n  self: *x\n",
			wantErr: `anchor "x" value contains itself`,
		},
		"anchor containing itself through a sequence": {
			text:    "t: &x\n  - a\n  - *x\n",
			wantErr: `anchor "x" value contains itself`,
		},
		"anchor merged into itself": {
			text:    "t: &x\n  role: r\n  <<: *x\n",
			wantErr: `anchor "x" value contains itself`,
		},
		"exponential alias chain": {
			text:    aliasChain(9),
			wantErr: "excessive aliasing",
		},
		"short alias chain": {
			text: aliasChain(3),
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			v, err := ParseDocument(tt.text)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, &Record{}, v)
		})
	}
}

func TestParseDocument_AliasSharesAnchorValue(t *testing.T) {
	t.Parallel()

	v, err := ParseDocument("base: &b\n  role: R\ncopy: *b\n")
	require.NoError(t, err)

	rec := v.(*Record)
	base, _ := rec.Get("base")
	copied, _ := rec.Get("copy")
	assert.Same(t, base.(*Record), copied.(*Record))
	role, _ := copied.(*Record).Get("role")
	assert.Equal(t, "R", role)
}

func TestParseDocument_MergeKeys(t *testing.T) {
	t.Parallel()

	text := `defaults: &defaults
  verbose: true
  max_iter: 5
researcher:
  <<: *defaults
  role: R
  max_iter: 10
`
	v, err := ParseDocument(text)
	require.NoError(t, err)

	researcher, _ := v.(*Record).Get("researcher")
	rec := researcher.(*Record)
	assert.Equal(t, []string{"role", "max_iter", "verbose"}, rec.Keys())
	maxIter, _ := rec.Get("max_iter")
	assert.Equal(t, 10, maxIter, "explicit keys win over merged ones")
}

func TestRecord_NilSafe(t *testing.T) {
	t.Parallel()

	var r *Record
	assert.False(t, r.Has("x"))
	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.Keys())
	r.Each(func(string, any) bool {
		t.Fatal("nil record has no entries")
		return true
	})
}

func TestRecord_SetKeepsPosition(t *testing.T) {
	t.Parallel()

	r := RecordOf("a", 1, "b", 2)
	r.Set("a", 3)
	assert.Equal(t, []string{"a", "b"}, r.Keys())
	v, _ := r.Get("a")
	assert.Equal(t, 3, v)
}
