package keys

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestYAMLFlattener(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en.yml"), `
en:
  errors:
    blank: "can't be blank"
    taken: "has already been taken"
  messages:
    hello: "Hello"
`)
	writeFile(t, filepath.Join(dir, "models", "de.yml"), `
de:
  activerecord:
    models:
      user: "Benutzer"
  errors:
    blank: "muss ausgefüllt werden"
`)
	writeFile(t, filepath.Join(dir, "README.md"), "not a translation file")

	keys, err := (&YAMLFlattener{}).Flatten(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"errors.blank", "errors.taken", "messages.hello", "activerecord.models.user"}, keys)
}

func TestYAMLFlattenerMaxDepth(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "b", "en.yaml"), "en:\n  deep: x\n")

	keys, err := (&YAMLFlattener{MaxDepth: 1}).Flatten(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, keys)

	keys, err = (&YAMLFlattener{MaxDepth: 2}).Flatten(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"deep"}, keys)
}

func TestYAMLFlattenerMissingDir(t *testing.T) {
	_, err := (&YAMLFlattener{}).Flatten(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestYAMLFlattenerMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en.yml"), "en:\n  a: [unclosed\n")

	_, err := (&YAMLFlattener{}).Flatten(context.Background(), dir)
	assert.Error(t, err)
}

func TestFlattenDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "arrays are leaves",
			doc:  "en:\n  date:\n    day_names: [Sunday, Monday]\n    format: '%Y'\n",
			want: []string{"date.day_names", "date.format"},
		},
		{
			name: "merge keys",
			doc: `
en:
  defaults: &defaults
    save: Save
    cancel: Cancel
  buttons:
    <<: *defaults
    delete: Delete
`,
			want: []string{"defaults.save", "defaults.cancel", "buttons.save", "buttons.cancel", "buttons.delete"},
		},
		{
			name: "aliased mapping",
			doc:  "en:\n  a: &shared\n    x: 1\n  b: *shared\n",
			want: []string{"a.x", "b.x"},
		},
		{name: "scalar root value", doc: "en: hello\n", want: []string{}},
		{name: "empty document", doc: "", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FlattenDocument([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYAMLFlattenerLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.yml"), "en:\n  from_b: x\n  shared: x\n")
	writeFile(t, filepath.Join(dir, "a.yaml"), "en:\n  from_a: x\n  shared: x\n")

	keys, err := (&YAMLFlattener{}).Flatten(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"from_a", "shared", "from_b"}, keys)
}
