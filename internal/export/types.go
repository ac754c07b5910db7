package export

import "github.com/kamusis/patterns-cli/internal/catalog"

// FormatVersion is bumped whenever the on-disk layout changes.
const FormatVersion = 1

const (
	ManifestFile = "export_manifest.json"
	TopicsFile   = "topics.jsonl"
	KeywordsFile = "keywords.json"
)

// Manifest describes a catalog export and how to interpret it.
type Manifest struct {
	ExportVersion int    `json:"export_version"`
	CreatedAt     string `json:"created_at"`
	TopicCount    int    `json:"topic_count"`
	CatalogHash   string `json:"catalog_hash"`
	TopicsFile    string `json:"topics_file"`
	KeywordsFile  string `json:"keywords_file"`
}

// Snapshot is a loaded export.
type Snapshot struct {
	Manifest Manifest
	Topics   []catalog.Topic
	Keywords catalog.KeywordIndex
}

// Catalog rebuilds a catalog from the snapshot.
func (s *Snapshot) Catalog() (*catalog.Catalog, error) {
	return catalog.New(s.Topics, s.Keywords)
}
