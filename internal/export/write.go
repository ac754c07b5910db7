package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

// Write writes export artifacts for cat to dir and returns the manifest.
func Write(dir string, cat *catalog.Catalog) (Manifest, error) {
	topics := cat.Topics()
	if len(topics) == 0 {
		return Manifest{}, fmt.Errorf("no topics to export")
	}
	m := Manifest{
		ExportVersion: FormatVersion,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		TopicCount:    len(topics),
		CatalogHash:   TextHash(CanonicalText(cat)),
		TopicsFile:    TopicsFile,
		KeywordsFile:  KeywordsFile,
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("cannot create export dir %s: %w", dir, err)
	}

	// topics jsonl
	tf, err := os.Create(filepath.Join(dir, m.TopicsFile))
	if err != nil {
		return Manifest{}, fmt.Errorf("cannot create topics file: %w", err)
	}
	bw := bufio.NewWriter(tf)
	enc := json.NewEncoder(bw)
	for i := range topics {
		if err := enc.Encode(&topics[i]); err != nil {
			_ = tf.Close()
			return Manifest{}, fmt.Errorf("cannot write topic %s: %w", topics[i].ID, err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = tf.Close()
		return Manifest{}, err
	}
	if err := tf.Close(); err != nil {
		return Manifest{}, err
	}

	// keywords
	keywords := cat.Keywords()
	if keywords == nil {
		keywords = catalog.KeywordIndex{}
	}
	kb, err := json.MarshalIndent(keywords, "", "  ")
	if err != nil {
		return Manifest{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, m.KeywordsFile), kb, 0o644); err != nil {
		return Manifest{}, fmt.Errorf("cannot write keywords: %w", err)
	}

	// manifest last, so a readable manifest implies complete data files
	mb, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Manifest{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), mb, 0o644); err != nil {
		return Manifest{}, fmt.Errorf("cannot write manifest: %w", err)
	}
	return m, nil
}

// AtomicSwap replaces destDir with srcDir by renaming.
func AtomicSwap(srcDir, destDir string) error {
	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	backup := destDir + ".bak"
	_ = os.RemoveAll(backup)
	if _, err := os.Stat(destDir); err == nil {
		if err := os.Rename(destDir, backup); err != nil {
			return err
		}
	}
	if err := os.Rename(srcDir, destDir); err != nil {
		// rollback best-effort
		if _, stErr := os.Stat(backup); stErr == nil {
			_ = os.Rename(backup, destDir)
		}
		return err
	}
	_ = os.RemoveAll(backup)
	return nil
}
