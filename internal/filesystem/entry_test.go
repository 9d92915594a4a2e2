package filesystem_test

import (
	"errors"
	"testing"

	"github.com/temirov/pathtree/internal/filesystem"
)

func TestNewEntryDerivesNameAndParent(t *testing.T) {
	testCases := []struct {
		name           string
		path           string
		expectedName   string
		expectedParent string
		hasParent      bool
	}{
		{name: "nested absolute", path: "/a/b/c.txt", expectedName: "c.txt", expectedParent: "/a/b", hasParent: true},
		{name: "top level absolute", path: "/a", expectedName: "a", expectedParent: "/", hasParent: true},
		{name: "filesystem root", path: "/", expectedName: "/", hasParent: false},
		{name: "relative", path: "dir/file", expectedName: "file", expectedParent: "dir", hasParent: true},
		{name: "bare name", path: "file", expectedName: "file", hasParent: false},
		{name: "empty", path: "", expectedName: "", hasParent: false},
		{name: "leading current directory", path: "./dir/file", expectedName: "file", expectedParent: "dir", hasParent: true},
		{name: "repeated separators", path: "/srv//app/", expectedName: "app", expectedParent: "/srv", hasParent: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			entry := filesystem.NewEntry(testCase.path, 0, filesystem.KindFile)
			if entry.Name != testCase.expectedName {
				t.Fatalf("expected name %q, got %q", testCase.expectedName, entry.Name)
			}
			if entry.HasParent != testCase.hasParent {
				t.Fatalf("expected hasParent %v, got %v", testCase.hasParent, entry.HasParent)
			}
			if entry.Parent != testCase.expectedParent {
				t.Fatalf("expected parent %q, got %q", testCase.expectedParent, entry.Parent)
			}
		})
	}
}

func TestEntryEqualityUsesPathOnly(t *testing.T) {
	first := filesystem.NewEntry("/a/b", 1, filesystem.KindFile)
	second := filesystem.NewEntry("/a/b", 900, filesystem.KindDirectory)
	second.Tag = "different"
	if !first.Equal(second) {
		t.Fatalf("entries with the same path must be equal")
	}
	if first.Equal(filesystem.NewEntry("/a/c", 1, filesystem.KindFile)) {
		t.Fatalf("entries with different paths must differ")
	}
}

func TestParseKind(t *testing.T) {
	testCases := map[string]filesystem.Kind{
		"FILE":      filesystem.KindFile,
		"DIRECTORY": filesystem.KindDirectory,
		"UNKNOWN":   filesystem.KindUnknown,
		"symlink":   filesystem.KindUnknown,
	}
	for input, expected := range testCases {
		if actual := filesystem.ParseKind(input); actual != expected {
			t.Fatalf("ParseKind(%q) = %v, want %v", input, actual, expected)
		}
		if expected != filesystem.KindUnknown && expected.String() != input {
			t.Fatalf("%v.String() = %q, want %q", expected, expected.String(), input)
		}
	}
}

func TestResolveRoot(t *testing.T) {
	testCases := []struct {
		name          string
		paths         []string
		explicitRoot  string
		expectedRoot  string
		expectedError error
	}{
		{name: "explicit root verbatim", paths: []string{"/a/b"}, explicitRoot: "/elsewhere", expectedRoot: "/elsewhere"},
		{name: "empty list", paths: nil, expectedError: filesystem.ErrInvalidInput},
		{name: "single path", paths: []string{"/x/y.txt"}, expectedRoot: "/x/y.txt"},
		{name: "shared prefix", paths: []string{"/a/b/c.txt", "/a/b/d.txt", "/a/e.txt"}, expectedRoot: "/a"},
		{name: "component not substring", paths: []string{"/data/app1/x", "/data/app2/y"}, expectedRoot: "/data"},
		{name: "absolute paths share slash", paths: []string{"/x/one", "/y/two"}, expectedRoot: "/"},
		{name: "relative without common component", paths: []string{"a/b", "c/d"}, expectedError: filesystem.ErrNoCommonRoot},
		{name: "mixed absolute and relative", paths: []string{"/a/b", "a/b"}, expectedError: filesystem.ErrNoCommonRoot},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			root, err := filesystem.ResolveRoot(testCase.paths, testCase.explicitRoot)
			if testCase.expectedError != nil {
				if !errors.Is(err, testCase.expectedError) {
					t.Fatalf("expected error %v, got %v", testCase.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if root != testCase.expectedRoot {
				t.Fatalf("expected root %q, got %q", testCase.expectedRoot, root)
			}
		})
	}
}

func TestCleanPath(t *testing.T) {
	testCases := map[string]string{
		"":               "",
		"/":              "/",
		"//":             "/",
		".":              ".",
		"./":             ".",
		"./a/b":          "a/b",
		"a/./b/":         "a/b",
		"/srv//app/x.go": "/srv/app/x.go",
		"/a/../b":        "/a/../b",
	}
	for input, expected := range testCases {
		if actual := filesystem.CleanPath(input); actual != expected {
			t.Fatalf("CleanPath(%q) = %q, want %q", input, actual, expected)
		}
	}
}
