package domain

// Document is a plain configuration object holding JSON-compatible values:
// nested Documents (or map[string]any), []any, strings, bools, numbers and nil.
type Document = map[string]any

// Merge deep-merges sources into target from left to right and returns target.
//
// Nested objects present on both sides are merged recursively, arrays present on
// both sides are concatenated (target first), and every other value is assigned,
// so later sources win on scalar conflicts. A nil target is allocated.
func Merge(target Document, sources ...Document) Document {
	if target == nil {
		target = make(Document)
	}
	for _, src := range sources {
		for k, v := range src {
			target[k] = mergeValue(target[k], v)
		}
	}
	return target
}

func mergeValue(dst, src any) any {
	if srcObj, ok := src.(map[string]any); ok {
		if dstObj, ok := dst.(map[string]any); ok {
			return Merge(dstObj, srcObj)
		}
		return src
	}
	if srcArr, ok := src.([]any); ok {
		if dstArr, ok := dst.([]any); ok {
			out := make([]any, 0, len(dstArr)+len(srcArr))
			out = append(out, dstArr...)
			return append(out, srcArr...)
		}
	}
	return src
}

// Clone returns a deep copy of doc. Nested objects and arrays are copied,
// scalars are shared.
func Clone(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Clone(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
