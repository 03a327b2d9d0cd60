package evaluator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadContext decodes a YAML mapping of variable names to integers into a
// new context:
//
//	x: 3
//	y: -6
//
// An empty document yields an empty context. Values that are not integer
// scalars are rejected, null included, so a key left without a value never
// binds a silent zero.
func LoadContext(r io.Reader) (*EvalContext, error) {
	var raw map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("bindings: parse: %w", err)
	}

	c := NewContext()
	for name, node := range raw {
		if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" {
			return nil, fmt.Errorf("bindings: %s: not an integer", name)
		}
		var v int64
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("bindings: %s: %w", name, err)
		}
		c.Bind(name, v)
	}
	return c, nil
}

// LoadContextFile reads bindings from a YAML file on disk.
func LoadContextFile(path string) (*EvalContext, error) {
	if path == "" {
		return nil, fmt.Errorf("bindings: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("bindings: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	c, err := LoadContext(file)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, abs)
	}
	return c, nil
}

// WriteContext encodes the bindings held by c itself (not its parents) as a
// YAML mapping with keys in sorted order.
func WriteContext(w io.Writer, c *EvalContext) error {
	if c == nil {
		return fmt.Errorf("bindings: nil context")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.bindings); err != nil {
		return fmt.Errorf("bindings: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("bindings: encoder close: %w", err)
	}
	return nil
}
