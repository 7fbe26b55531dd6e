package parser

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// semver is a parsed "major.minor[.patch][-prerelease]" version string, the
// shape used by the openapi and swagger fields.
type semver struct {
	major, minor, patch int
	pre                 string
}

// parseSemver parses s. The patch component defaults to 0. Components must
// be unsigned decimal numbers that fit in 31 bits.
func parseSemver(s string) (semver, error) {
	core, pre, _ := strings.Cut(s, "-")
	parts := strings.Split(core, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return semver{}, fmt.Errorf("invalid version format: %q", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 31)
		if err != nil {
			return semver{}, fmt.Errorf("invalid version component %q in %q", p, s)
		}
		nums[i] = int(n)
	}
	return semver{major: nums[0], minor: nums[1], patch: nums[2], pre: pre}, nil
}

// compare orders versions by major, minor and patch. A pre-release sorts
// before its release; two pre-release labels compare lexically, so
// "rc1" < "rc2" but also "rc10" < "rc2".
func (v semver) compare(o semver) int {
	if c := cmp.Compare(v.major, o.major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.minor, o.minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.patch, o.patch); c != 0 {
		return c
	}
	switch {
	case v.pre == o.pre:
		return 0
	case v.pre == "":
		return 1
	case o.pre == "":
		return -1
	}
	return strings.Compare(v.pre, o.pre)
}
