package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

// Load reads an export from dir containing manifest + topics + keywords.
func Load(dir string) (*Snapshot, error) {
	manifestPath := filepath.Join(dir, ManifestFile)
	b, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest %s: %w", manifestPath, err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON %s: %w", manifestPath, err)
	}
	if m.ExportVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported export version: %d", m.ExportVersion)
	}
	if m.TopicsFile == "" {
		m.TopicsFile = TopicsFile
	}
	if m.KeywordsFile == "" {
		m.KeywordsFile = KeywordsFile
	}

	topics, err := loadTopics(filepath.Join(dir, m.TopicsFile))
	if err != nil {
		return nil, err
	}
	if len(topics) != m.TopicCount {
		return nil, fmt.Errorf("topic count mismatch: got %d want %d", len(topics), m.TopicCount)
	}

	snap := &Snapshot{Manifest: m, Topics: topics}
	kpath := filepath.Join(dir, m.KeywordsFile)
	kb, err := os.ReadFile(kpath)
	if err != nil {
		return nil, fmt.Errorf("cannot read keywords %s: %w", kpath, err)
	}
	if err := json.Unmarshal(kb, &snap.Keywords); err != nil {
		return nil, fmt.Errorf("invalid keywords JSON %s: %w", kpath, err)
	}
	return snap, nil
}

func loadTopics(path string) ([]catalog.Topic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open topics file %s: %w", path, err)
	}
	defer f.Close()

	var out []catalog.Topic
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var t catalog.Topic
		if err := json.Unmarshal(line, &t); err != nil {
			return nil, fmt.Errorf("invalid topics JSONL %s: %w", path, err)
		}
		out = append(out, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read topics file %s: %w", path, err)
	}
	return out, nil
}
