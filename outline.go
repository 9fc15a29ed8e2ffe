package lighthousedocs

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// OutlineLevel is the inclusive range of heading levels that make up the on
// page table of contents.
type OutlineLevel [2]int

// OutlineDeep is the level range meant by the "deep" shorthand.
var OutlineDeep = OutlineLevel{2, 6}

func (l OutlineLevel) Min() int { return l[0] }
func (l OutlineLevel) Max() int { return l[1] }

// Contains reports whether headings of the given level are part of the
// outline.
func (l OutlineLevel) Contains(level int) bool {
	return level >= l[0] && level <= l[1]
}

// parseOutlineLevel accepts the forms the level can be written in: a single
// number, the string "deep", or a [min, max] pair.
func parseOutlineLevel(v any) (OutlineLevel, error) {
	switch o := v.(type) {
	case OutlineLevel:
		return o, nil
	case string:
		if o == "deep" {
			return OutlineDeep, nil
		}

		return OutlineLevel{}, fmt.Errorf("unknown outline level %q", o)
	case []any:
		if len(o) != 2 {
			return OutlineLevel{}, fmt.Errorf(
				"outline level range must have two elements, got %d", len(o))
		}

		lo, err := levelNumber(o[0])
		if err != nil {
			return OutlineLevel{}, err
		}

		hi, err := levelNumber(o[1])
		if err != nil {
			return OutlineLevel{}, err
		}

		return OutlineLevel{lo, hi}, nil
	}

	n, err := levelNumber(v)
	if err != nil {
		return OutlineLevel{}, err
	}

	return OutlineLevel{n, n}, nil
}

func levelNumber(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("outline level %v is not an integer", n)
		}

		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("outline level %q: %w", n.String(), err)
		}

		return int(i), nil
	}

	return 0, fmt.Errorf("invalid outline level value %v (%T)", v, v)
}

func (l *OutlineLevel) UnmarshalJSON(data []byte) error {
	var raw any

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decode outline level: %w", err)
	}

	lvl, err := parseOutlineLevel(raw)
	if err != nil {
		return err
	}

	*l = lvl

	return nil
}

func (l OutlineLevel) MarshalYAML() (any, error) {
	return []int{l[0], l[1]}, nil
}

func (l *OutlineLevel) UnmarshalYAML(value *yaml.Node) error {
	var raw any

	err := value.Decode(&raw)
	if err != nil {
		return fmt.Errorf("decode outline level: %w", err)
	}

	if raw == nil {
		return errors.New("outline level is empty")
	}

	lvl, err := parseOutlineLevel(raw)
	if err != nil {
		return err
	}

	*l = lvl

	return nil
}
