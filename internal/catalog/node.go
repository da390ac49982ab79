package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// resolve follows document wrappers and aliases down to the value node
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func isMapping(n *yaml.Node) bool {
	n = resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

func isNull(n *yaml.Node) bool {
	n = resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// mappingPairs returns key/value pairs in source order, merge keys expanded
func mappingPairs(n *yaml.Node) [][2]*yaml.Node {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	var pairs [][2]*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.Tag == "!!merge" {
			pairs = append(pairs, mergePairs(value)...)
			continue
		}
		pairs = append(pairs, [2]*yaml.Node{key, value})
	}
	return dedupePairs(pairs)
}

func mergePairs(value *yaml.Node) [][2]*yaml.Node {
	value = resolve(value)
	if value == nil {
		return nil
	}
	if value.Kind == yaml.SequenceNode {
		var pairs [][2]*yaml.Node
		for _, m := range value.Content {
			pairs = append(pairs, mappingPairs(m)...)
		}
		return pairs
	}
	return mappingPairs(value)
}

// dedupePairs keeps the position of the first occurrence and the value of the last
func dedupePairs(pairs [][2]*yaml.Node) [][2]*yaml.Node {
	index := make(map[string]int, len(pairs))
	out := pairs[:0:0]
	for _, p := range pairs {
		k := keyString(p[0])
		if i, ok := index[k]; ok {
			out[i][1] = p[1]
			continue
		}
		index[k] = len(out)
		out = append(out, p)
	}
	return out
}

func keyString(n *yaml.Node) string {
	n = resolve(n)
	if n == nil {
		return ""
	}
	if n.Kind == yaml.ScalarNode {
		return n.Value
	}
	return fmt.Sprintf("%v", n.Value)
}

// lookup returns the value stored under key, or nil
func lookup(n *yaml.Node, key string) *yaml.Node {
	for _, p := range mappingPairs(n) {
		if keyString(p[0]) == key {
			return resolve(p[1])
		}
	}
	return nil
}

func has(n *yaml.Node, key string) bool {
	for _, p := range mappingPairs(n) {
		if keyString(p[0]) == key {
			return true
		}
	}
	return false
}

// scalarText returns the raw text of a string scalar
func scalarText(n *yaml.Node) (string, bool) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", false
	}
	return n.Value, true
}

// number is an integer or float scalar. Arithmetic keeps the kind, so
// 2.0 + 1 prints as "3.0" and 2 + 1 as "3".
type number struct {
	i     int64
	f     float64
	float bool
}

func intNumber(i int64) number { return number{i: i} }

// numberValue decodes an !!int or !!float scalar
func numberValue(n *yaml.Node) (number, bool) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return number{}, false
	}

	switch n.Tag {
	case "!!int":
		var i int64
		if n.Decode(&i) == nil {
			return number{i: i}, true
		}
	case "!!float":
		var f float64
		if n.Decode(&f) == nil {
			return number{f: f, float: true}, true
		}
	}
	return number{}, false
}

func (x number) add(k int64) number {
	if x.float {
		return number{f: x.f + float64(k), float: true}
	}
	return number{i: x.i + k}
}

func (x number) mul(k int64) number {
	if x.float {
		return number{f: x.f * float64(k), float: true}
	}
	return number{i: x.i * k}
}

func (x number) String() string {
	if x.float {
		return formatFloat(x.f)
	}
	return strconv.FormatInt(x.i, 10)
}

// displayValue formats a scalar the way the item pages show numbers:
// integers as is, floats always with a fractional part ("2.0")
func displayValue(n *yaml.Node) string {
	n = resolve(n)
	if n == nil {
		return "None"
	}
	if n.Kind != yaml.ScalarNode {
		raw, err := nodeJSON(n)
		if err != nil {
			return ""
		}
		return string(raw)
	}

	switch n.Tag {
	case "!!null":
		return "None"
	case "!!bool":
		var b bool
		if n.Decode(&b) == nil {
			if b {
				return "True"
			}
			return "False"
		}
	case "!!int":
		var i int64
		if n.Decode(&i) == nil {
			return strconv.FormatInt(i, 10)
		}
	case "!!float":
		var f float64
		if n.Decode(&f) == nil {
			return formatFloat(f)
		}
	}
	return n.Value
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// nodeJSON converts a YAML node to JSON, keeping mapping key order
func nodeJSON(n *yaml.Node) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, n, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// maxNodeDepth guards against alias cycles
const maxNodeDepth = 64

func writeNodeJSON(buf *bytes.Buffer, n *yaml.Node, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("yaml nesting deeper than %d", maxNodeDepth)
	}

	n = resolve(n)
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i, p := range mappingPairs(n) {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, keyString(p[0])); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, p[1], depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, c, depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		return writeScalarJSON(buf, n)
	default:
		buf.WriteString("null")
	}
	return nil
}

func writeScalarJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Tag {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			buf.WriteString(strconv.FormatBool(b))
			return nil
		}
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			buf.WriteString(strconv.FormatInt(i, 10))
			return nil
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			buf.WriteString(formatFloat(f))
			return nil
		}
	}
	return writeJSONString(buf, n.Value)
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}
