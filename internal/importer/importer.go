// Package importer copies user-authored topic folders into the topics
// directory, applying exclude filtering and MD5-based conflict resolution.
package importer

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

// ConflictTag is inserted into the name of an incoming file whose content
// differs from the one already present.
const ConflictTag = "import"

// ConflictPair records a conflict found during import.
type ConflictPair struct {
	Original string // file already in the topics dir
	Conflict string // where the incoming version was stored
}

// Result is returned by ImportDir.
type Result struct {
	Conflicts []ConflictPair
	Imported  int // files copied, conflicts included
	Skipped   int // identical duplicates

	// Topic-level counts. A topic is a top-level folder of src holding a TOPIC.md.
	TopicsImported  int
	TopicsSkipped   int // every file was an identical duplicate
	TopicsConflicts int
	// NotTopics lists top-level entries ignored because they are not topic folders.
	NotTopics []string
}

// ImportDir copies every topic folder under srcDir into dstDir.
func ImportDir(srcDir, dstDir string, excludes []string) (*Result, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", srcDir, err)
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dstDir, err)
	}

	result := &Result{}
	for _, e := range entries {
		name := e.Name()
		if matchesExclude(name, excludes) {
			continue
		}
		if !e.IsDir() || strings.HasPrefix(name, ".") || !isTopicDir(filepath.Join(srcDir, name)) {
			result.NotTopics = append(result.NotTopics, name)
			continue
		}
		o, err := importTopic(filepath.Join(srcDir, name), filepath.Join(dstDir, name), excludes, result)
		if err != nil {
			return result, err
		}
		// a topic with both new files and conflicts counts in both
		if o.copied {
			result.TopicsImported++
		}
		if o.conflict {
			result.TopicsConflicts++
		}
		if !o.copied && !o.conflict {
			result.TopicsSkipped++
		}
	}
	sort.Strings(result.NotTopics)
	return result, nil
}

type topicOutcome struct {
	copied   bool
	conflict bool
}

func importTopic(src, dst string, excludes []string, result *Result) (topicOutcome, error) {
	var o topicOutcome
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel != "." && matchesExclude(rel, excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		if _, err := os.Stat(target); err == nil {
			srcMD5, err := fileMD5(path)
			if err != nil {
				return fmt.Errorf("md5 %s: %w", path, err)
			}
			dstMD5, err := fileMD5(target)
			if err != nil {
				return fmt.Errorf("md5 %s: %w", target, err)
			}
			if srcMD5 == dstMD5 {
				result.Skipped++
				return nil
			}
			conflictDst := conflictPath(target)
			if err := copyFile(path, conflictDst); err != nil {
				return fmt.Errorf("conflict copy %s → %s: %w", path, conflictDst, err)
			}
			result.Conflicts = append(result.Conflicts, ConflictPair{Original: target, Conflict: conflictDst})
			result.Imported++
			o.conflict = true
			return nil
		}

		if err := copyFile(path, target); err != nil {
			return fmt.Errorf("copy %s → %s: %w", path, target, err)
		}
		result.Imported++
		o.copied = true
		return nil
	})
	return o, err
}

func isTopicDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, catalog.TopicFile))
	return err == nil && !info.IsDir()
}

// conflictPath inserts .conflict-import before the final extension.
//
//	TOPIC.md       → TOPIC.conflict-import.md
//	notes.draft.md → notes.draft.conflict-import.md
func conflictPath(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	return base + ".conflict-" + ConflictTag + ext
}

// matchesExclude reports whether relPath or its basename matches any pattern.
func matchesExclude(relPath string, patterns []string) bool {
	name := filepath.Base(relPath)
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, relPath); matched {
			return true
		}
	}
	return false
}

func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// copyFile copies src to dst, preserving permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
