//go:build integration

package itest

import (
	"errors"
	"os"
	"path/filepath"
)

// findRepoRoot walks up from the test's working directory to the module
// root so `go run ./cmd/lyrstage` resolves regardless of invocation dir.
func findRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			break
		}
		wd = parent
	}
	return "", errors.New("could not locate go.mod")
}
