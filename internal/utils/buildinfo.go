// Package utils provides formatting, logging and version helpers shared by pathtree packages.
package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion     = "unknown"
	developmentVersion = "(devel)"

	errorAbsolutePathFormat = "resolving absolute path for %s: %w"
	errorGitNotFoundFormat  = "%s directory not found in or above %s"
)

var gitDescribeArguments = [][]string{
	{"describe", "--tags", "--exact-match"},
	{"describe", "--tags", "--long", "--dirty"},
}

// GetApplicationVersion reports the module version recorded at build time and
// falls back to git describe when running from a work tree.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != developmentVersion {
		return buildInfo.Main.Version
	}

	workTreeDirectory, findError := findGitWorkTree(".")
	if findError != nil {
		return unknownVersion
	}
	for _, arguments := range gitDescribeArguments {
		// #nosec G204
		gitCommand := exec.Command("git", arguments...)
		gitCommand.Dir = workTreeDirectory
		gitOutput, gitError := gitCommand.Output()
		if gitError == nil && len(gitOutput) > 0 {
			return strings.TrimSpace(string(gitOutput))
		}
	}
	return unknownVersion
}

// findGitWorkTree walks upward from startDirectory to the directory containing GitDirectoryName.
func findGitWorkTree(startDirectory string) (string, error) {
	absoluteStartDirectory, absolutePathError := filepath.Abs(startDirectory)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, startDirectory, absolutePathError)
	}

	currentDirectory := absoluteStartDirectory
	for {
		fileInformation, statError := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if statError == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return "", fmt.Errorf(errorGitNotFoundFormat, GitDirectoryName, absoluteStartDirectory)
		}
		currentDirectory = parentDirectory
	}
}
