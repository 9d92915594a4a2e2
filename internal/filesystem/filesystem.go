package filesystem

import (
	"errors"
	"time"

	"github.com/tidwall/btree"
	"go.uber.org/zap"
)

const (
	buildStartedMessage  = "build filesystem data structure"
	rootSelectedMessage  = "root selected"
	noRootMessage        = "no common root"
	buildFinishedMessage = "filesystem built"
)

// FileSystem is a set of entries keyed by path with an optional designated root.
type FileSystem struct {
	entries *btree.Map[string, Entry]
	root    string
	hasRoot bool
	logger  *zap.Logger
}

// New returns an empty FileSystem. A nil logger disables logging.
func New(logger *zap.Logger) *FileSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSystem{
		entries: btree.NewMap[string, Entry](0),
		logger:  logger,
	}
}

// SetRoot designates the cleaned path as the root and stores it as a parentless
// directory, replacing any entry already stored under that path.
func (fileSystem *FileSystem) SetRoot(path string) {
	path = CleanPath(path)
	fileSystem.root = path
	fileSystem.hasRoot = true
	rootEntry := NewEntry(path, 0, KindDirectory)
	rootEntry.Parent = ""
	rootEntry.HasParent = false
	if existing, found := fileSystem.entries.Get(path); found {
		rootEntry.ModifiedAt = existing.ModifiedAt
		rootEntry.AccessedAt = existing.AccessedAt
	}
	fileSystem.entries.Set(path, rootEntry)
}

// Root returns the designated root path.
func (fileSystem *FileSystem) Root() (string, bool) {
	return fileSystem.root, fileSystem.hasRoot
}

// Add inserts an entry for path and synthesizes every missing ancestor directory.
// It reports false when path is the designated root.
func (fileSystem *FileSystem) Add(path string, length int64, kind Kind) bool {
	return fileSystem.AddEntry(NewEntry(path, length, kind))
}

// AddEntry inserts entry unless an entry with the same path already exists,
// then ensures its parent chain up to the root. It reports false when the
// entry's path is the designated root. The entry path is cleaned first.
func (fileSystem *FileSystem) AddEntry(entry Entry) bool {
	entry = entry.canonical()
	if fileSystem.isRoot(entry.Path) {
		return false
	}
	fileSystem.insert(entry)
	fileSystem.ensureAncestors(entry)
	return true
}

// ensureAncestors walks up from entry inserting directories until it reaches
// the root, a parentless path, or a path whose chain already exists.
func (fileSystem *FileSystem) ensureAncestors(entry Entry) {
	visited := map[string]struct{}{entry.Path: {}}
	current := entry
	for current.HasParent {
		parentPath := current.Parent
		if _, seen := visited[parentPath]; seen {
			return
		}
		visited[parentPath] = struct{}{}
		if fileSystem.isRoot(parentPath) || fileSystem.Contains(parentPath) {
			return
		}
		parent := NewEntry(parentPath, 0, KindDirectory)
		fileSystem.entries.Set(parentPath, parent)
		current = parent
	}
}

func (fileSystem *FileSystem) insert(entry Entry) {
	if fileSystem.Contains(entry.Path) {
		return
	}
	fileSystem.entries.Set(entry.Path, entry)
}

func (fileSystem *FileSystem) isRoot(path string) bool {
	return fileSystem.hasRoot && fileSystem.root == path
}

// FromPathList resolves the root of paths and adds each path as a file.
// Entries are added even when no common root exists; ErrNoCommonRoot is then returned.
func (fileSystem *FileSystem) FromPathList(paths []string, explicitRoot string) error {
	entries := make([]Entry, 0, len(paths))
	for _, path := range paths {
		entries = append(entries, NewEntry(path, 0, KindFile))
	}
	return fileSystem.FromEntryList(entries, explicitRoot)
}

// FromEntryList behaves like FromPathList for entries that already carry metadata.
func (fileSystem *FileSystem) FromEntryList(entries []Entry, explicitRoot string) error {
	fileSystem.logger.Debug(buildStartedMessage)
	startTime := time.Now()

	canonicalEntries := make([]Entry, 0, len(entries))
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = entry.canonical()
		canonicalEntries = append(canonicalEntries, entry)
		paths = append(paths, entry.Path)
	}
	root, rootError := ResolveRoot(paths, CleanPath(explicitRoot))
	switch {
	case rootError == nil:
		fileSystem.SetRoot(root)
		fileSystem.logger.Debug(rootSelectedMessage, zap.String("root", root))
	case errors.Is(rootError, ErrNoCommonRoot):
		fileSystem.logger.Debug(noRootMessage)
	default:
		return rootError
	}

	for _, entry := range canonicalEntries {
		fileSystem.AddEntry(entry)
	}
	fileSystem.logger.Debug(buildFinishedMessage,
		zap.Duration("elapsed", time.Since(startTime)),
		zap.Int("entries", fileSystem.Len()),
	)
	return rootError
}

// Get returns the entry stored under path.
func (fileSystem *FileSystem) Get(path string) (Entry, bool) {
	return fileSystem.entries.Get(path)
}

// Contains reports whether an entry exists for path.
func (fileSystem *FileSystem) Contains(path string) bool {
	_, found := fileSystem.entries.Get(path)
	return found
}

// Len returns the number of entries.
func (fileSystem *FileSystem) Len() int {
	return fileSystem.entries.Len()
}

// Walk calls visit for every entry in path order until visit returns false.
func (fileSystem *FileSystem) Walk(visit func(entry Entry) bool) {
	fileSystem.entries.Scan(func(_ string, entry Entry) bool {
		return visit(entry)
	})
}

// Entries returns every entry in path order.
func (fileSystem *FileSystem) Entries() []Entry {
	return fileSystem.entries.Values()
}

// FileCount returns the number of file entries.
func (fileSystem *FileSystem) FileCount() int {
	count := 0
	fileSystem.Walk(func(entry Entry) bool {
		if entry.Kind == KindFile {
			count++
		}
		return true
	})
	return count
}

// TotalBytes sums the length of every entry.
func (fileSystem *FileSystem) TotalBytes() int64 {
	var total int64
	fileSystem.Walk(func(entry Entry) bool {
		total += entry.Length
		return true
	})
	return total
}
