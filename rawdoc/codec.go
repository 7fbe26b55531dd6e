package rawdoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"
)

const (
	// maxAliasDepth bounds alias expansion so that self-referential anchors
	// cannot recurse forever.
	maxAliasDepth = 256

	// Alias expansion may build at most aliasExpansionRatio nodes per node
	// in the source, and never fewer than minAliasBudget in total.
	aliasExpansionRatio = 100
	minAliasBudget      = 10000
)

var (
	// ErrEmptyDocument is returned by Decode when the input holds no
	// YAML/JSON document at all.
	ErrEmptyDocument = errors.New("rawdoc: empty document")

	// ErrExcessiveAliasing is returned when expanding anchors and aliases
	// would build a tree far larger than its source.
	ErrExcessiveAliasing = errors.New("rawdoc: document contains excessive aliasing")
)

// Decode parses YAML or JSON data into a raw tree. Mapping key order follows
// the source. Anchors, aliases and merge keys ("<<") are expanded. Mapping
// keys are always strings: an unquoted YAML key such as 200 becomes "200".
func Decode(data []byte) (any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("rawdoc: %w", err)
	}
	if node.Kind == 0 {
		return nil, ErrEmptyDocument
	}
	return FromNode(&node)
}

// FromNode converts a yaml.Node into a raw tree. Aliases are expanded within
// a node budget proportional to the size of node; a document exceeding it
// fails with ErrExcessiveAliasing.
func FromNode(node *yaml.Node) (any, error) {
	c := &converter{budget: max(minAliasBudget, aliasExpansionRatio*countNodes(node))}
	return c.fromNode(node, 0)
}

// converter tracks how many nodes one conversion has built.
type converter struct {
	budget int
	built  int
}

// countNodes counts the nodes written in the source, without following
// aliases.
func countNodes(node *yaml.Node) int {
	if node == nil {
		return 0
	}
	n := 1
	for _, child := range node.Content {
		n += countNodes(child)
	}
	return n
}

func (c *converter) fromNode(node *yaml.Node, depth int) (any, error) {
	if node == nil {
		return nil, nil
	}
	if depth > maxAliasDepth {
		return nil, fmt.Errorf("rawdoc: nesting exceeds %d levels at line %d", maxAliasDepth, node.Line)
	}
	c.built++
	if c.built > c.budget {
		return nil, fmt.Errorf("%w (line %d)", ErrExcessiveAliasing, node.Line)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return c.fromNode(node.Content[0], depth+1)

	case yaml.AliasNode:
		return c.fromNode(node.Alias, depth+1)

	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := c.fromNode(child, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.MappingNode:
		return c.mappingFromNode(node, depth)

	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("rawdoc: line %d: %w", node.Line, err)
		}
		// Dates stay textual so they survive re-encoding untouched.
		if _, isTime := v.(time.Time); isTime {
			return node.Value, nil
		}
		return v, nil
	}
	return nil, fmt.Errorf("rawdoc: unexpected node kind %v at line %d", node.Kind, node.Line)
}

func (c *converter) mappingFromNode(node *yaml.Node, depth int) (*Map, error) {
	out := NewMap()

	// Explicit keys win over merged ones regardless of position.
	explicit := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if !isMergeKey(node.Content[i]) {
			explicit[keyString(node.Content[i])] = true
		}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if isMergeKey(keyNode) {
			if err := c.mergeInto(out, explicit, valNode, depth); err != nil {
				return nil, err
			}
			continue
		}
		v, err := c.fromNode(valNode, depth+1)
		if err != nil {
			return nil, err
		}
		out.Set(keyString(keyNode), v)
	}
	return out, nil
}

func (c *converter) mergeInto(out *Map, explicit map[string]bool, src *yaml.Node, depth int) error {
	for src.Kind == yaml.AliasNode && src.Alias != nil {
		src = src.Alias
	}
	var sources []*yaml.Node
	switch src.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{src}
	case yaml.SequenceNode:
		sources = src.Content
	default:
		return fmt.Errorf("rawdoc: line %d: merge value must be a mapping or a sequence of mappings", src.Line)
	}
	for _, s := range sources {
		v, err := c.fromNode(s, depth+1)
		if err != nil {
			return err
		}
		m, ok := v.(*Map)
		if !ok {
			return fmt.Errorf("rawdoc: line %d: merge value must be a mapping", s.Line)
		}
		for k, item := range m.FromOldest() {
			if explicit[k] {
				continue
			}
			if _, present := out.Get(k); present {
				continue
			}
			out.Set(k, item)
		}
	}
	return nil
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!merge" && n.Value == "<<"
}

func keyString(n *yaml.Node) string {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n.Value
}

// ToNode converts a raw tree into a yaml.Node, keeping the order of ordered
// mappings. Plain map[string]any values are emitted in sorted key order.
func ToNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return scalarNode("!!null", "null"), nil
	case *Map:
		if val == nil {
			return scalarNode("!!null", "null"), nil
		}
		// Guard against integer overflow: Len()*2 could overflow for very large maps
		mapLen := val.Len()
		if mapLen > math.MaxInt/2 {
			return nil, fmt.Errorf("rawdoc: map size %d exceeds safe conversion limit", mapLen)
		}
		node := &yaml.Node{Kind: yaml.MappingNode, Content: make([]*yaml.Node, 0, mapLen*2)}
		for k, item := range val.FromOldest() {
			child, err := ToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", k), child)
		}
		return node, nil
	case map[string]any:
		m, _ := Normalize(val).(*Map)
		return ToNode(m)
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(val))}
		for _, item := range val {
			child, err := ToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val)), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(val)), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(val, 10)), nil
	case uint64:
		return scalarNode("!!int", strconv.FormatUint(val, 10)), nil
	case float64:
		return scalarNode("!!float", formatFloat(val)), nil
	case string:
		return scalarNode("!!str", val), nil
	default:
		normalized := Normalize(v)
		switch normalized.(type) {
		case *Map, []any:
			return ToNode(normalized)
		}
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, fmt.Errorf("rawdoc: cannot convert %T to yaml.Node: %w", v, err)
		}
		return node, nil
	}
}

// formatFloat renders f so that it reads back as a float, never as an int.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// scalarNode creates a yaml.Node for a scalar value.
func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// EncodeYAML renders a raw tree as YAML, preserving mapping order.
func EncodeYAML(v any) ([]byte, error) {
	node, err := ToNode(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("rawdoc: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("rawdoc: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJSON renders a raw tree as compact JSON, preserving mapping order.
// Ordered mappings marshal themselves in insertion order.
func EncodeJSON(v any) ([]byte, error) {
	data, err := json.Marshal(Normalize(v))
	if err != nil {
		return nil, fmt.Errorf("rawdoc: %w", err)
	}
	return data, nil
}

// EncodeJSONIndent renders a raw tree as indented JSON, preserving mapping
// order.
func EncodeJSONIndent(v any, prefix, indent string) ([]byte, error) {
	data, err := EncodeJSON(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, fmt.Errorf("rawdoc: %w", err)
	}
	return buf.Bytes(), nil
}
