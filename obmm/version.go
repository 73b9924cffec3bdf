package obmm

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
)

// Version is a dotted numeric version with up to four components.
type Version struct {
	Major    int
	Minor    int
	Build    int
	Revision int
}

// DefaultManagerVersion is the manager version reported to
// If VersionLessThan / VersionGreaterThan.
var DefaultManagerVersion = Version{Major: 1, Minor: 1, Build: 12}

// ParseVersion parses "1", "1.2", "1.2.3" or "1.2.3.4". Missing components are
// zero. Pre-release and build suffixes are rejected; game and extender
// versions are plain numbers.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("empty version")
	}
	if s[0] == 'v' {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}
	parsed, err := version.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	if parsed.Prerelease() != "" || parsed.Metadata() != "" {
		return Version{}, fmt.Errorf("invalid version %q: suffix not allowed", s)
	}
	segs := parsed.Segments()
	if len(segs) > 4 {
		return Version{}, fmt.Errorf("version %q has more than four components", s)
	}
	var nums [4]int
	copy(nums[:], segs)
	return Version{Major: nums[0], Minor: nums[1], Build: nums[2], Revision: nums[3]}, nil
}

// MustParseVersion is ParseVersion for constants.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0 or 1.
func (v Version) Compare(other Version) int {
	return v.canonical().Compare(other.canonical())
}

// canonical converts v for comparison. Negative components, which only a
// hand-built Version can hold, count as zero.
func (v Version) canonical() *version.Version {
	parts := [4]int{v.Major, v.Minor, v.Build, v.Revision}
	for i := range parts {
		parts[i] = max(parts[i], 0)
	}
	return version.Must(version.NewVersion(fmt.Sprintf("%d.%d.%d.%d", parts[0], parts[1], parts[2], parts[3])))
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
