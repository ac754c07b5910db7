package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TopicFile is the file name DiscoverTopics looks for in each topic folder.
const TopicFile = "TOPIC.md"

// DiscoverTopics scans dir/*/TOPIC.md and returns the topics they describe,
// ordered by folder name. A missing dir yields no topics.
//
// The folder name is the fallback id and title; the first non-heading line of
// the body is the fallback what_it_is text.
func DiscoverTopics(dir string) ([]Topic, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Topic{}, nil
		}
		return nil, fmt.Errorf("cannot stat topics directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("topics path is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot scan topics: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []Topic
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name(), TopicFile)
		b, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("cannot read %s: %w", path, err)
		}
		out = append(out, topicFromMarkdown(e.Name(), string(b)))
	}
	return out, nil
}

func topicFromMarkdown(folder, content string) Topic {
	fm, body, _ := splitFrontmatter(content)
	t := fm.Topic

	t.ID = strings.TrimSpace(t.ID)
	if t.ID == "" {
		t.ID = folder
	}
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		t.Title = folder
	}
	if len(t.Keywords) == 0 {
		t.Keywords = fm.Tags
	}
	if strings.TrimSpace(t.WhatItIs) == "" {
		t.WhatItIs = inferDescriptionFromBody(body)
	}
	return t
}

func inferDescriptionFromBody(body string) string {
	lines := strings.Split(body, "\n")
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		if strings.HasPrefix(ln, "#") {
			continue
		}
		return ln
	}
	return ""
}
