// Package commands assembles reconstructed hierarchies into rendered trees.
package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/pathtree/internal/filesystem"
	"github.com/temirov/pathtree/internal/graph"
	"github.com/temirov/pathtree/internal/scanner"
)

const (
	// NoRootMessage is printed when the entries share no root.
	NoRootMessage = "No root for printing as tree!"
	// RootNodeMissingMessage is printed when the root has no node in the graph.
	RootNodeMissingMessage = "Root node not found!"

	warningEdgeMessage   = "Error adding edge."
	graphBuiltMessage    = "graph built"
	errorRenderingFormat = "rendering tree from %s: %w"
)

// ErrRootNodeMissing is returned when the designated root is absent from the graph.
var ErrRootNodeMissing = errors.New("commands: root node not found")

// EntryGraph is the graph representation of an entry collection.
type EntryGraph = graph.Graph[filesystem.Entry]

// BuildGraph registers one node per entry keyed by path and connects every
// entry to its parent. Edges that cannot be added are logged and skipped.
func (treeBuilder *TreeBuilder) BuildGraph(fileSystem *filesystem.FileSystem) *EntryGraph {
	startTime := time.Now()
	entryGraph := graph.New[filesystem.Entry]()
	fileSystem.Walk(func(entry filesystem.Entry) bool {
		entryGraph.AddNode(entry.Path, entry.Name, entry)
		return true
	})
	fileSystem.Walk(func(entry filesystem.Entry) bool {
		if !entry.HasParent {
			return true
		}
		if edgeError := entryGraph.AddEdge(entry.Parent, entry.Path); edgeError != nil {
			treeBuilder.Logger.Warn(warningEdgeMessage, zap.Error(edgeError))
		}
		return true
	})
	treeBuilder.Logger.Debug(graphBuiltMessage,
		zap.Duration("elapsed", time.Since(startTime)),
		zap.Int("nodes", entryGraph.Len()),
	)
	return entryGraph
}

// RenderTree renders fileSystem below its designated root followed by a summary.
// When no tree can be drawn the returned text is the message to show the user
// and the error is ErrNoCommonRoot or ErrRootNodeMissing.
func (treeBuilder *TreeBuilder) RenderTree(fileSystem *filesystem.FileSystem) (string, error) {
	root, hasRoot := fileSystem.Root()
	if !hasRoot {
		return NoRootMessage, filesystem.ErrNoCommonRoot
	}
	entryGraph := treeBuilder.BuildGraph(fileSystem)
	rootNode, found := entryGraph.Lookup(root)
	if !found {
		return RootNodeMissingMessage, ErrRootNodeMissing
	}
	rootNode.Label = root
	if treeBuilder.hasMaxDepth {
		entryGraph.SetMaxDisplayLevel(treeBuilder.maxDepth)
	}

	rendered, renderError := entryGraph.Render(root, graph.RenderOptions[filesystem.Entry]{
		Label: treeBuilder.nodeLabel(root),
		Less:  directoriesFirst,
	})
	if renderError != nil {
		if errors.Is(renderError, graph.ErrNodeNotFound) {
			return RootNodeMissingMessage, ErrRootNodeMissing
		}
		return "", fmt.Errorf(errorRenderingFormat, root, renderError)
	}
	summary := treeBuilder.Theme.Summary(fileSystem.Len(), fileSystem.FileCount(), fileSystem.TotalBytes())
	return rendered + "\n" + summary, nil
}

// PrintFileList builds a hierarchy from literal paths and renders it.
func (treeBuilder *TreeBuilder) PrintFileList(paths []string, explicitRoot string) (string, error) {
	fileSystem := filesystem.New(treeBuilder.Logger)
	if buildError := fileSystem.FromPathList(paths, explicitRoot); buildError != nil {
		if errors.Is(buildError, filesystem.ErrNoCommonRoot) {
			return NoRootMessage, buildError
		}
		return "", buildError
	}
	return treeBuilder.RenderTree(fileSystem)
}

// DescribeEntries renders the detail block of every entry in path order.
func (treeBuilder *TreeBuilder) DescribeEntries(fileSystem *filesystem.FileSystem) string {
	blocks := make([]string, 0, fileSystem.Len())
	fileSystem.Walk(func(entry filesystem.Entry) bool {
		blocks = append(blocks, entry.Describe(treeBuilder.Theme))
		return true
	})
	return strings.Join(blocks, "\n\n")
}

// EntriesFromScan converts scanned files into file entries carrying their metadata.
func EntriesFromScan(files []scanner.File) []filesystem.Entry {
	entries := make([]filesystem.Entry, 0, len(files))
	for _, file := range files {
		entry := filesystem.NewEntry(file.Path, file.Size, filesystem.KindFile)
		entry.Tag = file.Tag
		entry.ModifiedAt = file.ModifiedAt
		entry.AccessedAt = file.AccessedAt
		entries = append(entries, entry)
	}
	return entries
}

func (treeBuilder *TreeBuilder) nodeLabel(root string) func(node *graph.Node[filesystem.Entry]) string {
	return func(node *graph.Node[filesystem.Entry]) string {
		if node.Key == root {
			return treeBuilder.Theme.Root(node.Label)
		}
		if node.Payload.IsDirectory() {
			return treeBuilder.Theme.Directory(node.Label)
		}
		return treeBuilder.Theme.File(node.Label)
	}
}

// directoriesFirst orders directories before files, then by case-insensitive name.
func directoriesFirst(left *graph.Node[filesystem.Entry], right *graph.Node[filesystem.Entry]) bool {
	leftIsDirectory := left.Payload.IsDirectory()
	rightIsDirectory := right.Payload.IsDirectory()
	if leftIsDirectory != rightIsDirectory {
		return leftIsDirectory
	}
	leftName := strings.ToLower(left.Label)
	rightName := strings.ToLower(right.Label)
	if leftName != rightName {
		return leftName < rightName
	}
	return left.Label < right.Label
}
