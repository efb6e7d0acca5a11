package session

import "fmt"

// Version is the implementation version recorded into every game. A
// difference in major version breaks compatibility; a difference in minor
// version does not.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
}

// CurrentVersion is the version of this implementation.
var CurrentVersion = Version{Major: 1, Minor: 0}

// Compatible reports whether a game created by other can be loaded by this
// version.
func (v Version) Compatible(other Version) bool {
	return v.Major == other.Major && v.Minor >= other.Minor
}

func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// Type is the kind of setup a game was created from.
type Type string

const (
	// TypeStandard is the standard board, hotels, and limits.
	TypeStandard Type = "standard"
	// TypeCustom is a setup built from a custom configuration.
	TypeCustom Type = "custom"
)
