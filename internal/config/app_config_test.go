package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/pathtree/internal/utils"
)

type configTestCase struct {
	name           string
	globalContent  string
	localContent   string
	explicitPath   string
	explicitBody   string
	expectMaxDepth *int
	expectColor    *bool
	expectDetails  *bool
	expectCopy     *bool
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func intPointer(value int) *int {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:           "local_overrides_global",
			globalContent:  "tree:\n  max_depth: 4\n  color: false\n  copy: true\n",
			localContent:   "tree:\n  max_depth: 2\n  details: true\n",
			expectMaxDepth: intPointer(2),
			expectColor:    boolPointer(false),
			expectDetails:  boolPointer(true),
			expectCopy:     boolPointer(true),
		},
		{
			name:           "explicit_path_replaces_local",
			globalContent:  "tree:\n  color: true\n",
			localContent:   "tree:\n  details: true\n",
			explicitPath:   "custom.yaml",
			explicitBody:   "tree:\n  max_depth: 1\n",
			expectColor:    boolPointer(true),
			expectMaxDepth: intPointer(1),
		},
		{
			name: "no_files",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.GlobalConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.LocalConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte(testCase.explicitBody), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			assertIntPointer(t, "max_depth", testCase.expectMaxDepth, loadedConfig.Tree.MaxDepth)
			assertBoolPointer(t, "color", testCase.expectColor, loadedConfig.Tree.Color)
			assertBoolPointer(t, "details", testCase.expectDetails, loadedConfig.Tree.Details)
			assertBoolPointer(t, "copy", testCase.expectCopy, loadedConfig.Tree.Copy)
			if loadedConfig.Tree.Tags != nil {
				t.Fatalf("expected no tags override")
			}
		})
	}
}

func TestLoadApplicationConfigurationRejectsDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", os.Getenv("HOME"))
	workingDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(workingDir, utils.LocalConfigFileName), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected error when the configuration path is a directory")
	}
}

func TestMergeClonesPointers(t *testing.T) {
	override := ApplicationConfiguration{Tree: TreeConfiguration{MaxDepth: intPointer(3), Tags: boolPointer(true)}}
	merged := ApplicationConfiguration{}.Merge(override)
	*override.Tree.MaxDepth = 9
	*override.Tree.Tags = false
	if *merged.Tree.MaxDepth != 3 || !*merged.Tree.Tags {
		t.Fatalf("merged configuration shares pointers with override")
	}
	if merged.Tree.Copy != nil {
		t.Fatalf("unset fields must stay unset")
	}
}

func assertIntPointer(t *testing.T, name string, expected *int, actual *int) {
	t.Helper()
	if expected == nil {
		if actual != nil {
			t.Fatalf("expected no %s override, got %d", name, *actual)
		}
		return
	}
	if actual == nil || *actual != *expected {
		t.Fatalf("unexpected %s value", name)
	}
}

func assertBoolPointer(t *testing.T, name string, expected *bool, actual *bool) {
	t.Helper()
	if expected == nil {
		if actual != nil {
			t.Fatalf("expected no %s override, got %t", name, *actual)
		}
		return
	}
	if actual == nil || *actual != *expected {
		t.Fatalf("unexpected %s value", name)
	}
}
