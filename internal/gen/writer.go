package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory, creating it
// if needed. Files whose content is unchanged are left untouched so their
// modification time survives repeated runs. It returns the number of files
// written.
func WriteFiles(files []GeneratedFile, outputDir string) (int, error) {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	written := 0

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		existing, err := os.ReadFile(outputPath)
		switch {
		case err == nil && bytes.Equal(existing, file.Content):
			continue
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return written, fmt.Errorf("reading file %s: %w", file.Filename, err)
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		written++
	}

	return written, nil
}
