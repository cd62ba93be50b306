package hasher

import "strings"

// ArraySeparator joins the present entries of a HashArray input.
const ArraySeparator = ","

// HashArray joins the non-nil items with commas in their original order and
// hashes the result, semantically if requested. Nil entries are skipped and
// logged at debug level. An empty or all-nil input hashes the empty sequence.
func HashArray(items []*string, semantic bool) string {
	present := make([]string, 0, len(items))
	for i, s := range items {
		if s == nil {
			lg().Debug("encountered nil value in hash array input", "index", i)
			continue
		}
		present = append(present, *s)
	}

	content := []byte(strings.Join(present, ArraySeparator))
	if semantic {
		return ProteinHash(content)
	}
	return TextHash(content)
}

// Strings converts plain strings into HashArray input.
func Strings(ss ...string) []*string {
	out := make([]*string, len(ss))
	for i := range ss {
		out[i] = &ss[i]
	}
	return out
}
