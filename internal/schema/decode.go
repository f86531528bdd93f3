package schema

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMultipleDocuments is returned when a stream holds more than one YAML document.
var ErrMultipleDocuments = errors.New("expected a single document in the stream, but found more")

// ParseDocument decodes YAML text into plain values: mappings become *Record (key
// order preserved), sequences become []any, and scalars keep the type yaml.v3
// resolves for them (string, int, float64, bool, nil). An empty document decodes
// to nil with no error. Aliases share the value of their anchor; an anchor that
// contains itself or aliasing that inflates the document is an error.
func ParseDocument(text string) (any, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))

	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrMultipleDocuments
	}

	c := newConverter()
	v, _, err := c.node(&root)
	return v, err
}

// Alias expansion limits, matching the ratio yaml.v3 applies when unmarshalling.
const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
	aliasRatioRange     = float64(aliasRatioRangeHigh - aliasRatioRangeLow)
	maxExpandedNodes    = 10000000
)

// ErrExcessiveAliasing is returned when aliases expand a document far beyond its
// written size.
var ErrExcessiveAliasing = errors.New("document contains excessive aliasing")

// expansion counts the nodes and aliases a value stands for once every alias in it
// is expanded.
type expansion struct {
	nodes   int
	aliases int
}

func (e *expansion) add(o expansion) {
	e.nodes += o.nodes
	e.aliases += o.aliases
}

type converted struct {
	value any
	size  expansion
}

// converter turns a yaml.v3 node tree into plain values. Anchored nodes are
// converted once and shared by every alias that points at them.
type converter struct {
	active  map[*yaml.Node]bool
	anchors map[*yaml.Node]converted
	total   expansion
}

func newConverter() *converter {
	return &converter{
		active:  make(map[*yaml.Node]bool),
		anchors: make(map[*yaml.Node]converted),
	}
}

func allowedAliasRatio(nodes int) float64 {
	switch {
	case nodes <= aliasRatioRangeLow:
		return 0.99
	case nodes >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(nodes-aliasRatioRangeLow)/aliasRatioRange)
	}
}

// expand accounts for one alias standing for size and fails once the document has
// grown past the allowed alias ratio.
func (c *converter) expand(size expansion) error {
	c.total.add(size)
	c.total.aliases++
	if c.total.nodes > maxExpandedNodes {
		return ErrExcessiveAliasing
	}
	if c.total.aliases > 100 && c.total.nodes > 1000 &&
		float64(c.total.aliases)/float64(c.total.nodes) > allowedAliasRatio(c.total.nodes) {
		return ErrExcessiveAliasing
	}
	return nil
}

// node converts n and reports how large it is with aliases expanded.
func (c *converter) node(n *yaml.Node) (any, expansion, error) {
	if n == nil {
		return nil, expansion{}, nil
	}
	if n.Kind == yaml.AliasNode {
		return c.alias(n)
	}
	if n.Anchor == "" {
		return c.convert(n)
	}

	if done, ok := c.anchors[n]; ok {
		return done.value, done.size, nil
	}
	c.active[n] = true
	v, size, err := c.convert(n)
	delete(c.active, n)
	if err != nil {
		return nil, expansion{}, err
	}
	c.anchors[n] = converted{value: v, size: size}
	return v, size, nil
}

func (c *converter) alias(n *yaml.Node) (any, expansion, error) {
	target := n.Alias
	if target == nil {
		return nil, expansion{}, fmt.Errorf("line %d: unknown anchor %q referenced", n.Line, n.Value)
	}
	if c.active[target] {
		return nil, expansion{}, fmt.Errorf("line %d: anchor %q value contains itself", n.Line, target.Anchor)
	}
	v, size, err := c.node(target)
	if err != nil {
		return nil, expansion{}, err
	}
	if err := c.expand(size); err != nil {
		return nil, expansion{}, err
	}
	size.aliases++
	return v, size, nil
}

func (c *converter) convert(n *yaml.Node) (any, expansion, error) {
	size := expansion{nodes: 1}
	c.total.nodes++
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, size, nil
		}
		return c.node(n.Content[0])
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, itemSize, err := c.node(item)
			if err != nil {
				return nil, expansion{}, err
			}
			size.add(itemSize)
			out = append(out, v)
		}
		return out, size, nil
	case yaml.MappingNode:
		rec, recSize, err := c.mapping(n)
		if err != nil {
			return nil, expansion{}, err
		}
		size.add(recSize)
		return rec, size, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, expansion{}, err
		}
		return v, size, nil
	default:
		return nil, size, nil
	}
}

// mapping builds a Record from a mapping node. Duplicate explicit keys are
// rejected; "<<" merge keys contribute fields that are not set explicitly.
func (c *converter) mapping(n *yaml.Node) (*Record, expansion, error) {
	rec := NewRecord()
	var size expansion
	explicit := make(map[string]int)
	var merges []*Record

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return nil, expansion{}, fmt.Errorf("line %d: unsupported mapping key (only scalar keys are allowed)", keyNode.Line)
		}

		if keyNode.ShortTag() == "!!merge" {
			merged, mergedSize, err := c.mergeSources(valueNode)
			if err != nil {
				return nil, expansion{}, err
			}
			size.add(mergedSize)
			merges = append(merges, merged...)
			continue
		}

		key := keyNode.Value
		if line, dup := explicit[key]; dup {
			return nil, expansion{}, fmt.Errorf("line %d: mapping key %q already defined at line %d", keyNode.Line, key, line)
		}
		explicit[key] = keyNode.Line

		value, valueSize, err := c.node(valueNode)
		if err != nil {
			return nil, expansion{}, err
		}
		size.nodes++
		c.total.nodes++
		size.add(valueSize)
		rec.Set(key, value)
	}

	for _, m := range merges {
		m.Each(func(k string, v any) bool {
			if !rec.Has(k) {
				rec.Set(k, v)
			}
			return true
		})
	}
	return rec, size, nil
}

func (c *converter) mergeSources(n *yaml.Node) ([]*Record, expansion, error) {
	v, size, err := c.node(n)
	if err != nil {
		return nil, expansion{}, err
	}
	switch src := v.(type) {
	case *Record:
		return []*Record{src}, size, nil
	case []any:
		out := make([]*Record, 0, len(src))
		for _, item := range src {
			rec, ok := item.(*Record)
			if !ok {
				return nil, expansion{}, fmt.Errorf("line %d: map merge requires map or sequence of maps as the value", n.Line)
			}
			out = append(out, rec)
		}
		return out, size, nil
	default:
		return nil, expansion{}, fmt.Errorf("line %d: map merge requires map or sequence of maps as the value", n.Line)
	}
}
