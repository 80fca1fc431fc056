package gitea

// TOC mirrors a manual's toc.yaml: the ordered hierarchy of sections
// that structures the manual.
type TOC struct {
	Title    string       `yaml:"title"`
	Sections []TOCSection `yaml:"sections"`
}

// TOCSection is one entry in the hierarchy. Link is the article ID when
// the entry points at an article, empty for a pure container section.
type TOCSection struct {
	Title    string       `yaml:"title"`
	Link     string       `yaml:"link"`
	Sections []TOCSection `yaml:"sections"`
}

// IsContainer reports whether the section only groups other sections.
func (s TOCSection) IsContainer() bool {
	return s.Link == "" && len(s.Sections) > 0
}

// ArticleCount returns the number of linked articles in the subtree.
func (s TOCSection) ArticleCount() int {
	count := 0
	if s.Link != "" {
		count++
	}
	for _, sub := range s.Sections {
		count += sub.ArticleCount()
	}
	return count
}

// ArticleConfig lists the relations of one article as declared in a
// manual's config.yaml.
type ArticleConfig struct {
	Dependencies []string `yaml:"dependencies"`
	Recommended  []string `yaml:"recommended"`
}

// ManualConfig maps article IDs to their relations.
type ManualConfig map[string]ArticleConfig
