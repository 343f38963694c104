package isolate

import (
	"sort"
	"strconv"
	"strings"
)

// bookkeepingKeys are process-bookkeeping pseudo-variables that describe the
// parent's own invocation. They are misleading inside a child and are never
// forwarded.
var bookkeepingKeys = map[string]struct{}{
	"argv": {},
	"argc": {},
}

// MergeEnviron merges a job's environment overrides onto a parent
// environment snapshot in os.Environ "key=value" form. It is a pure
// function of its inputs.
//
// Rules: bookkeeping pseudo-variables are stripped from the snapshot; an
// override wins on key collision; override values that are not plain
// scalars are dropped, leaving the key entirely unset for the child.
func MergeEnviron(snapshot []string, overrides map[string]any) []string {
	merged := make([]string, 0, len(snapshot)+len(overrides))

	for _, entry := range snapshot {
		key, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, skip := bookkeepingKeys[key]; skip {
			continue
		}
		if _, overridden := overrides[key]; overridden {
			continue
		}
		merged = append(merged, entry)
	}

	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if value, ok := scalarValue(overrides[key]); ok {
			merged = append(merged, key+"="+value)
		}
	}

	return merged
}

// scalarValue renders an override value as environment text. Composite
// values (slices, maps, structs) have no environment representation and
// report ok=false.
func scalarValue(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, true
	case bool:
		return strconv.FormatBool(value), true
	case int:
		return strconv.Itoa(value), true
	case int8:
		return strconv.FormatInt(int64(value), 10), true
	case int16:
		return strconv.FormatInt(int64(value), 10), true
	case int32:
		return strconv.FormatInt(int64(value), 10), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case uint:
		return strconv.FormatUint(uint64(value), 10), true
	case uint8:
		return strconv.FormatUint(uint64(value), 10), true
	case uint16:
		return strconv.FormatUint(uint64(value), 10), true
	case uint32:
		return strconv.FormatUint(uint64(value), 10), true
	case uint64:
		return strconv.FormatUint(value, 10), true
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	default:
		return "", false
	}
}
