package config

import (
	"fmt"

	"github.com/chored-dev/chored/internal/errors"
)

// VersionPin is a resolved scala major -> full version.
type VersionPin struct {
	Major   string
	Version string
}

// Majors returns the requested majors, defaulting to DefaultScalaMajor.
func (o ProjectOptions) Majors() []string {
	if len(o.Scala.Majors) == 0 {
		return []string{DefaultScalaMajor}
	}
	return cloneStrings(o.Scala.Majors)
}

// ResolveVersions resolves every requested major to exactly one version, in
// request order. An explicit pin wins over the built-in default; a major with
// neither is a configuration error.
func ResolveVersions(o ProjectOptions) ([]VersionPin, error) {
	defaults := DefaultScalaVersions()
	majors := o.Majors()
	pins := make([]VersionPin, 0, len(majors))
	for _, major := range majors {
		version, ok := o.Scala.Versions[major]
		if !ok || version == "" {
			version, ok = defaults[major]
		}
		if !ok {
			return nil, fmt.Errorf("%w: scala %s", errors.ErrUnresolvedVersion, major)
		}
		pins = append(pins, VersionPin{Major: major, Version: version})
	}
	return pins, nil
}

// PrimaryScalaVersion is the resolved version of the first requested major.
func PrimaryScalaVersion(o ProjectOptions) (string, error) {
	pins, err := ResolveVersions(o)
	if err != nil {
		return "", err
	}
	return pins[0].Version, nil
}
