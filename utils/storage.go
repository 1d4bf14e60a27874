package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SaveImportFileCopy writes a server-side copy of an uploaded elab file
// under IMPORT_FILES_DIR so the original bytes of a batch can be located
// later. Returns (batchDir, savedName).
func SaveImportFileCopy(batchID uint, originalName string, raw []byte) (string, string, error) {
	root := os.Getenv("IMPORT_FILES_DIR")
	if root == "" {
		root = "_import_files"
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return "", "", err
	}

	stamp := time.Now().Format("20060102_150405")
	batchDir := filepath.Join(root, fmt.Sprintf("batch_%d_%s", batchID, stamp))
	if err := os.MkdirAll(batchDir, 0o755); err != nil {
		return "", "", err
	}

	savedName := fmt.Sprintf("%d_%s_%s", batchID, stamp, filepath.Base(originalName))
	if err := os.WriteFile(filepath.Join(batchDir, savedName), raw, 0o644); err != nil {
		return "", "", err
	}
	return batchDir, savedName, nil
}
