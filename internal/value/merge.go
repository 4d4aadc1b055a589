package value

// SeqMode selects how Merge combines two sequences.
type SeqMode uint8

const (
	// Replace makes the source sequence win outright.
	Replace SeqMode = iota
	// Append splices the source items after the destination items.
	Append
)

// Merge deep-merges src over dst and returns the result:
//
//   - mapping over mapping merges key by key, recursively;
//   - sequence over sequence follows mode;
//   - a Null src leaves dst untouched;
//   - anything else is replaced by src.
//
// Neither argument is modified.
func Merge(dst, src Value, mode SeqMode) Value {
	switch {
	case src.kind == Null:
		return dst.Clone()
	case dst.kind == Mapping && src.kind == Mapping:
		out := make(map[string]Value, len(dst.fields)+len(src.fields))
		for k, f := range dst.fields {
			out[k] = f.Clone()
		}
		for k, f := range src.fields {
			if cur, ok := out[k]; ok {
				out[k] = Merge(cur, f, mode)
				continue
			}
			out[k] = f.Clone()
		}
		return Value{kind: Mapping, fields: out}
	case dst.kind == Sequence && src.kind == Sequence && mode == Append:
		items := make([]Value, 0, len(dst.items)+len(src.items))
		for _, it := range dst.items {
			items = append(items, it.Clone())
		}
		for _, it := range src.items {
			items = append(items, it.Clone())
		}
		return Value{kind: Sequence, items: items}
	}
	return src.Clone()
}

// MergeMaps deep-merges the entries of src over dst entry by entry and
// returns a new map. A nil dst and a nil src yield nil.
func MergeMaps(dst, src map[string]Value, mode SeqMode) map[string]Value {
	if dst == nil && src == nil {
		return nil
	}
	out := CloneMap(dst)
	if out == nil {
		out = make(map[string]Value, len(src))
	}
	for k, v := range src {
		if cur, ok := out[k]; ok {
			out[k] = Merge(cur, v, mode)
			continue
		}
		out[k] = v.Clone()
	}
	return out
}

// Assign copies every entry of src into dst, replacing whole entries.
func Assign(dst, src map[string]Value) {
	for k, v := range src {
		dst[k] = v.Clone()
	}
}

// CloneMap deep-copies m. It returns nil for a nil map.
func CloneMap(m map[string]Value) map[string]Value {
	if m == nil {
		return nil
	}
	out := make(map[string]Value, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}
