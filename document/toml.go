package document

import (
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Marshal renders a document as TOML.
//
// Values are written as strings. A child name that occurs once becomes a
// table; a name that repeats becomes an array of tables, which keeps the
// relative order of the repeated sections.
func Marshal(root *Node) ([]byte, error) {
	table, err := encodeTable(root)
	if err != nil {
		return nil, err
	}
	return toml.Marshal(table)
}

// Unmarshal parses TOML into an unnamed root section.
//
// Keys are visited in sorted order. Non-string scalars are kept as their
// textual form, so a hand-edited `cacheSize = 100` reads the same as
// `cacheSize = "100"`.
func Unmarshal(data []byte) (*Node, error) {
	var table map[string]any
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return decodeTable("", table), nil
}

func encodeTable(n *Node) (map[string]any, error) {
	table := make(map[string]any, len(n.values)+len(n.children))

	for _, v := range n.values {
		switch existing := table[v.Key].(type) {
		case nil:
			table[v.Key] = v.Value
		case string:
			table[v.Key] = []string{existing, v.Value}
		case []string:
			table[v.Key] = append(existing, v.Value)
		}
	}

	names := lo.Uniq(lo.Map(n.children, func(c *Node, _ int) string { return c.Name }))
	for _, name := range names {
		if _, clash := table[name]; clash {
			return nil, fmt.Errorf("%w: %q", ErrNameClash, name)
		}

		group := n.Nodes(name)
		tables := make([]map[string]any, 0, len(group))
		for _, child := range group {
			encoded, err := encodeTable(child)
			if err != nil {
				return nil, err
			}
			tables = append(tables, encoded)
		}

		if len(tables) == 1 {
			table[name] = tables[0]
		} else {
			table[name] = tables
		}
	}

	return table, nil
}

func decodeTable(name string, table map[string]any) *Node {
	n := New(name)

	keys := lo.Keys(table)
	slices.Sort(keys)

	for _, k := range keys {
		switch v := table[k].(type) {
		case map[string]any:
			n.AppendNode(decodeTable(k, v))
		case []any:
			for _, item := range v {
				if sub, ok := item.(map[string]any); ok {
					n.AppendNode(decodeTable(k, sub))
				} else {
					n.AddValue(k, scalar(item))
				}
			}
		default:
			n.AddValue(k, scalar(v))
		}
	}

	return n
}

func scalar(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case time.Time:
		return value.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(value)
	}
}
