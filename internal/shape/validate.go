package shape

import "math"

// The checks below work on the generic form encoding/json produces when
// decoding into an interface value: objects are map[string]any, arrays are
// []any and numbers are float64.

func isNumber(v any) bool {
	f, ok := v.(float64)
	return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

// IsPoint reports whether v is an object with numeric x and y.
func IsPoint(v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return isNumber(obj["x"]) && isNumber(obj["y"])
}

// IsRecord reports whether v has the structure of a Shape. The id must be a
// whole number since it is stored as an int.
func IsRecord(v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}

	id, ok := obj["id"].(float64)
	if !ok || !isNumber(id) || id != math.Trunc(id) {
		return false
	}
	points, ok := obj["points"].([]any)
	if !ok {
		return false
	}
	if !isString(obj["fill"]) || !isString(obj["stroke"]) || !isNumber(obj["strokeWidth"]) {
		return false
	}
	for _, p := range points {
		if !IsPoint(p) {
			return false
		}
	}

	sizes, ok := obj["sizes"].(map[string]any)
	if !ok {
		return false
	}
	for _, k := range []string{"minX", "minY", "width", "height"} {
		if !isNumber(sizes[k]) {
			return false
		}
	}
	return true
}
