package keys

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bastiangx/ri18n/internal/utils"
	"gopkg.in/yaml.v3"
)

// DefaultMaxDepth is how many directory levels below the locale directory
// are searched for translation files.
const DefaultMaxDepth = 3

// YAMLFlattener reads translation files in process. Every *.yml and *.yaml
// file from the locale directory down to MaxDepth levels is parsed; the first
// top-level key of a file names the locale and is dropped from the keys.
type YAMLFlattener struct {
	MaxDepth int
}

// Flatten implements Flattener.
func (f *YAMLFlattener) Flatten(ctx context.Context, dir string) ([]string, error) {
	if !utils.DirExists(dir) {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	maxDepth := f.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	filter := utils.NewSeenFilter()
	keys := []string{}
	for depth := 0; depth <= maxDepth; depth++ {
		files, err := translationFiles(dir, depth)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			fileKeys, err := FlattenFile(file)
			if err != nil {
				return nil, err
			}
			for _, k := range fileKeys {
				if filter.ShouldInclude(k) {
					keys = append(keys, k)
				}
			}
		}
	}
	return keys, nil
}

func translationFiles(dir string, depth int) ([]string, error) {
	base := dir + string(filepath.Separator) + strings.Repeat("*"+string(filepath.Separator), depth)
	var files []string
	for _, ext := range []string{"*.yml", "*.yaml"} {
		matches, err := filepath.Glob(base + ext)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// FlattenFile returns the dotted leaf keys of one translation file.
func FlattenFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return FlattenDocument(data)
}

// FlattenDocument flattens the value of the first top-level key of a YAML
// document into dotted leaf paths.
func FlattenDocument(data []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return []string{}, nil
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode || len(root.Content) < 2 {
		return []string{}, nil
	}
	locale := resolve(root.Content[1])
	if locale.Kind != yaml.MappingNode {
		return []string{}, nil
	}

	filter := utils.NewSeenFilter()
	keys := []string{}
	flattenMapping(locale, "", func(key string) {
		if filter.ShouldInclude(key) {
			keys = append(keys, key)
		}
	})
	return keys, nil
}

func flattenMapping(node *yaml.Node, prefix string, emit func(string)) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], resolve(node.Content[i+1])

		// merge keys inline the referenced mapping
		if keyNode.ShortTag() == "!!merge" {
			mergeInto(valueNode, prefix, emit)
			continue
		}

		fullKey := keyNode.Value
		if prefix != "" {
			fullKey = prefix + "." + keyNode.Value
		}
		if valueNode.Kind == yaml.MappingNode {
			flattenMapping(valueNode, fullKey, emit)
			continue
		}
		emit(fullKey)
	}
}

func mergeInto(node *yaml.Node, prefix string, emit func(string)) {
	switch node.Kind {
	case yaml.MappingNode:
		flattenMapping(node, prefix, emit)
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item = resolve(item); item.Kind == yaml.MappingNode {
				flattenMapping(item, prefix, emit)
			}
		}
	}
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
