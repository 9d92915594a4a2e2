// Package filesystem reconstructs a directory hierarchy from a flat list of paths.
package filesystem

import (
	"strconv"
	"strings"
	"time"

	"github.com/temirov/pathtree/internal/output"
	"github.com/temirov/pathtree/internal/utils"
)

// Separator is the path separator used for every Entry path.
const Separator = "/"

// Kind classifies an Entry.
type Kind int

const (
	KindUnknown Kind = iota
	KindFile
	KindDirectory
)

const (
	kindFileName      = "FILE"
	kindDirectoryName = "DIRECTORY"
	kindUnknownName   = "UNKNOWN"

	describeTitle = "File Content"

	labelPath         = "Path: "
	labelKind         = "Type: "
	labelName         = "Name: "
	labelParent       = "Parent: "
	labelLength       = "Length: "
	labelTag          = "eTag: "
	labelModification = "Modification time: "
	labelAccess       = "Access time: "
)

// ParseKind maps the textual form of a kind back to its value.
// Unrecognized input yields KindUnknown.
func ParseKind(value string) Kind {
	switch value {
	case kindDirectoryName:
		return KindDirectory
	case kindFileName:
		return KindFile
	default:
		return KindUnknown
	}
}

func (kind Kind) String() string {
	switch kind {
	case KindDirectory:
		return kindDirectoryName
	case KindFile:
		return kindFileName
	default:
		return kindUnknownName
	}
}

// Entry is one file or directory of the reconstructed hierarchy.
// Two entries are the same entry when their paths are equal.
type Entry struct {
	Path       string
	Name       string
	Parent     string
	HasParent  bool
	Length     int64
	Kind       Kind
	Tag        string
	ModifiedAt time.Time
	AccessedAt time.Time
}

// NewEntry builds an Entry for the cleaned form of path deriving its name and parent.
func NewEntry(path string, length int64, kind Kind) Entry {
	path = CleanPath(path)
	parent, hasParent := ParentPath(path)
	return Entry{
		Path:      path,
		Name:      BaseName(path),
		Parent:    parent,
		HasParent: hasParent,
		Length:    length,
		Kind:      kind,
	}
}

// canonical returns entry keyed by its cleaned path with name and parent rederived.
func (entry Entry) canonical() Entry {
	cleaned := CleanPath(entry.Path)
	if cleaned == entry.Path {
		return entry
	}
	entry.Path = cleaned
	entry.Name = BaseName(cleaned)
	entry.Parent, entry.HasParent = ParentPath(cleaned)
	return entry
}

// Equal reports whether both entries share the same path.
func (entry Entry) Equal(other Entry) bool {
	return entry.Path == other.Path
}

// IsDirectory reports whether the entry is a directory.
func (entry Entry) IsDirectory() bool {
	return entry.Kind == KindDirectory
}

// BaseName returns the final segment of path, or path itself when it has none.
func BaseName(path string) string {
	separatorIndex := strings.LastIndex(path, Separator)
	if separatorIndex < 0 {
		return path
	}
	name := path[separatorIndex+1:]
	if name == "" {
		return path
	}
	return name
}

// ParentPath returns the path of the directory containing path.
// The leading separator of an absolute path is itself a directory, so "/a" has parent "/".
func ParentPath(path string) (string, bool) {
	separatorIndex := strings.LastIndex(path, Separator)
	if separatorIndex < 0 || path == Separator {
		return "", false
	}
	if separatorIndex == 0 {
		return Separator, true
	}
	return path[:separatorIndex], true
}

// Describe renders the entry as a labeled block using the provided theme.
func (entry Entry) Describe(theme output.Theme) string {
	var builder strings.Builder
	builder.WriteString(theme.Title(describeTitle))
	builder.WriteString("\n")
	builder.WriteString(theme.Info(labelPath, entry.Path))
	builder.WriteString("\n")
	builder.WriteString(theme.Info(labelKind, entry.Kind.String()))
	builder.WriteString("\n")
	builder.WriteString(theme.Info(labelName, entry.Name))
	builder.WriteString("\n")
	builder.WriteString(theme.Info(labelParent, entry.Parent))
	builder.WriteString("\n")
	builder.WriteString(theme.Info(labelLength, strconv.FormatInt(entry.Length, 10)))
	builder.WriteString("\n")
	builder.WriteString(theme.Info(labelTag, entry.Tag))
	if !entry.ModifiedAt.IsZero() {
		builder.WriteString("\n")
		builder.WriteString(theme.Info(labelModification, utils.FormatTimestamp(entry.ModifiedAt)))
	}
	if !entry.AccessedAt.IsZero() {
		builder.WriteString("\n")
		builder.WriteString(theme.Info(labelAccess, utils.FormatTimestamp(entry.AccessedAt)))
	}
	return builder.String()
}
