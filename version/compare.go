package version

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// release is a parsed tag such as v1.4.0 or 1.5.0-rc.1.
type release struct {
	core       [3]int
	prerelease string
}

// parseRelease accepts an optional "v" prefix, a missing minor or patch part and
// a pre-release suffix. Build metadata after "+" is ignored.
func parseRelease(tag string) (release, error) {
	var r release

	s := strings.TrimPrefix(strings.TrimSpace(tag), "v")
	s, _, _ = strings.Cut(s, "+")
	s, r.prerelease, _ = strings.Cut(s, "-")

	parts := strings.Split(s, ".")
	if len(parts) > len(r.core) {
		return r, fmt.Errorf("version %q has too many parts", tag)
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return r, fmt.Errorf("version %q: invalid part %q", tag, part)
		}
		r.core[i] = n
	}

	return r, nil
}

// Compare orders two release tags: 1 if a is newer, -1 if b is newer, 0 if equal.
// A pre-release sorts before the release it precedes.
func Compare(a, b string) (int, error) {
	ra, err := parseRelease(a)
	if err != nil {
		return 0, err
	}

	rb, err := parseRelease(b)
	if err != nil {
		return 0, err
	}

	if c := slices.Compare(ra.core[:], rb.core[:]); c != 0 {
		return c, nil
	}

	switch {
	case ra.prerelease == rb.prerelease:
		return 0, nil
	case ra.prerelease == "":
		return 1, nil
	case rb.prerelease == "":
		return -1, nil
	}

	return cmp.Compare(ra.prerelease, rb.prerelease), nil
}
