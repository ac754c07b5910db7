package catalog

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// topicFrontmatter is the header block of a TOPIC.md file. It embeds Topic so
// any catalog field can be set, and accepts "tags" as an alias for keywords.
type topicFrontmatter struct {
	Topic `yaml:",inline"`
	Tags  []string `yaml:"tags"`
}

// splitFrontmatter separates a leading "---" YAML block from the markdown body.
// ok is false when there is no block or it does not parse.
func splitFrontmatter(content string) (topicFrontmatter, string, bool) {
	s := strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(s, "---") {
		return topicFrontmatter{}, content, false
	}

	parts := strings.SplitN(s, "---", 3)
	if len(parts) < 3 {
		return topicFrontmatter{}, content, false
	}

	fmText := strings.TrimSpace(parts[1])
	body := strings.TrimPrefix(parts[2], "\n")

	var fm topicFrontmatter
	if err := yaml.Unmarshal([]byte(fmText), &fm); err != nil {
		return topicFrontmatter{}, content, false
	}
	return fm, body, true
}
