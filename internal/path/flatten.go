package path

// Flatten collapses a nested record into a single-level mapping whose keys
// are full paths. Non-empty map[string]any values are descended into;
// everything else, including slices and empty maps, is kept as a leaf.
func (c Codec) Flatten(rec Record) map[string]any {
	out := make(map[string]any)
	c.flattenInto(out, nil, rec)

	return out
}

// flattenInto walks node; prefix is nil at the root so that an empty
// top-level key still yields an empty leading segment.
func (c Codec) flattenInto(out map[string]any, prefix *string, node Record) {
	for key, value := range node {
		full := key
		if prefix != nil {
			full = *prefix + c.Separator() + key
		}

		if child, ok := value.(map[string]any); ok && len(child) > 0 {
			c.flattenInto(out, &full, child)

			continue
		}

		out[full] = value
	}
}

// Clone returns a deep copy of rec. Nested maps and slices are copied;
// other leaves are shared.
func Clone(rec Record) Record {
	if rec == nil {
		return nil
	}

	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = CloneValue(v)
	}

	return out
}

// CloneValue deep copies map[string]any and []any values.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Clone(t)
	case []any:
		if t == nil {
			return t
		}

		cp := make([]any, len(t))
		for i := range t {
			cp[i] = CloneValue(t[i])
		}

		return cp
	default:
		return v
	}
}
