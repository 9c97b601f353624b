package e2etest

import "os"

// baseDir creates the home directory of one test manager
func baseDir(pattern string) (string, error) {
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return "", err
	}

	// the checker writes its config and logs under the home directory
	if err := os.Chmod(dir, 0755); err != nil {
		return "", err
	}

	return dir, nil
}
