package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// writeOutput writes a converted document into outputDir, creating the
// directory if it doesn't exist, and returns the path written.
func writeOutput(fs afero.Fs, outputDir, input string, content []byte) (string, error) {
	if err := fs.MkdirAll(outputDir, dirPerm); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	outputPath := filepath.Join(outputDir, outputName(input))

	if err := afero.WriteFile(fs, outputPath, content, filePerm); err != nil {
		return "", fmt.Errorf("writing file %s: %w", outputPath, err)
	}

	return outputPath, nil
}
