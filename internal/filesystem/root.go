package filesystem

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidInput is returned when root resolution receives no paths.
	ErrInvalidInput = errors.New("filesystem: empty path list")
	// ErrNoCommonRoot is returned when the paths share no leading component.
	ErrNoCommonRoot = errors.New("filesystem: no common root")
)

// ResolveRoot returns the path the hierarchy is anchored at. A non-empty
// explicitRoot is returned verbatim. Otherwise the longest component prefix
// shared by all paths is computed.
func ResolveRoot(paths []string, explicitRoot string) (string, error) {
	if explicitRoot != "" {
		return explicitRoot, nil
	}
	if len(paths) == 0 {
		return "", ErrInvalidInput
	}
	if len(paths) == 1 {
		return paths[0], nil
	}

	commonComponents := pathComponents(paths[0])
	for _, path := range paths[1:] {
		otherComponents := pathComponents(path)
		sharedLength := 0
		for sharedLength < len(commonComponents) && sharedLength < len(otherComponents) {
			if commonComponents[sharedLength] != otherComponents[sharedLength] {
				break
			}
			sharedLength++
		}
		commonComponents = commonComponents[:sharedLength]
		if len(commonComponents) == 0 {
			return "", ErrNoCommonRoot
		}
	}
	return joinComponents(commonComponents), nil
}

// pathComponents splits path into its components. The leading separator of an
// absolute path is kept as a component of its own; empty and "." segments are dropped.
func pathComponents(path string) []string {
	var components []string
	if strings.HasPrefix(path, Separator) {
		components = append(components, Separator)
	}
	for _, segment := range strings.Split(path, Separator) {
		if segment == "" || segment == "." {
			continue
		}
		components = append(components, segment)
	}
	return components
}

func joinComponents(components []string) string {
	if len(components) == 0 {
		return ""
	}
	if components[0] == Separator {
		return Separator + strings.Join(components[1:], Separator)
	}
	return strings.Join(components, Separator)
}

// CleanPath returns the canonical form of path used for every entry key.
// Repeated separators, "." segments and a trailing separator are removed, so
// "./a//b/" becomes "a/b". A path made only of "." segments becomes ".".
func CleanPath(path string) string {
	if path == "" {
		return ""
	}
	cleaned := joinComponents(pathComponents(path))
	if cleaned == "" {
		return "."
	}
	return cleaned
}
