package fieldpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is a parsed dotted path. Segments are object keys or decimal list indices.
type Path []string

// Parse splits a dotted path into segments.
func Parse(path string) (Path, error) {
	if path == "" {
		return nil, resolveErr(path, "", ErrMalformed)
	}
	segments := strings.Split(path, ".")
	for _, s := range segments {
		if s == "" {
			return nil, resolveErr(path, "", ErrMalformed)
		}
	}
	return Path(segments), nil
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Read walks a decoded JSON tree (map[string]any and []any) and returns the
// value at path.
func Read(root any, path string) (any, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}

	cur := root
	for _, seg := range p {
		cur, err = step(cur, seg, path)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// Write walks all but the last segment of path and assigns value to the leaf.
// Intermediate segments must already exist. A missing key in the final mapping
// is created; list leaves must address an existing index.
func Write(root any, path string, value any) error {
	p, err := Parse(path)
	if err != nil {
		return err
	}

	cur := root
	for _, seg := range p[:len(p)-1] {
		cur, err = step(cur, seg, path)
		if err != nil {
			return err
		}
	}

	leaf := p[len(p)-1]
	switch node := cur.(type) {
	case map[string]any:
		node[leaf] = value
		return nil
	case []any:
		i, err := index(leaf, len(node), path)
		if err != nil {
			return err
		}
		node[i] = value
		return nil
	default:
		return resolveErr(path, leaf, ErrShape)
	}
}

func step(cur any, seg, path string) (any, error) {
	switch node := cur.(type) {
	case map[string]any:
		next, ok := node[seg]
		if !ok {
			return nil, resolveErr(path, seg, ErrUnknownField)
		}
		return next, nil
	case []any:
		i, err := index(seg, len(node), path)
		if err != nil {
			return nil, err
		}
		return node[i], nil
	default:
		return nil, resolveErr(path, seg, ErrShape)
	}
}

func index(seg string, n int, path string) (int, error) {
	i, err := strconv.Atoi(seg)
	if err != nil {
		return 0, resolveErr(path, seg, fmt.Errorf("%w: not a list index", ErrMalformed))
	}
	if i < 0 || i >= n {
		return 0, resolveErr(path, seg, ErrOutOfRange)
	}
	return i, nil
}
