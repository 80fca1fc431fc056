package core

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/door43-tools/tanotion/internal/gitea"
	"github.com/door43-tools/tanotion/internal/notion"
)

// Article bundles the files of one Translation Academy article.
type Article struct {
	Manual   string
	ID       string
	Title    string
	Subtitle string
	Content  string
}

// ContentHash fingerprints the article files for update detection.
func (a Article) ContentHash() string {
	combined := fmt.Sprintf("%s|%s|%s", a.Title, a.Subtitle, a.Content)
	return fmt.Sprintf("%x", md5.Sum([]byte(combined)))
}

// RepositoryPath is the article directory inside the source repository.
func (a Article) RepositoryPath() string {
	return fmt.Sprintf("en_ta/%s/%s", a.Manual, a.ID)
}

var manualNames = map[string]string{
	"intro":     "Introduction",
	"process":   "Process Manual",
	"translate": "Translation Manual",
	"checking":  "Checking Manual",
}

// ManualDisplayName maps a manual directory to its display name.
func ManualDisplayName(manual string) string {
	if name, ok := manualNames[manual]; ok {
		return name
	}
	return manual
}

var sectionArticles = map[string]bool{
	"intro-checking":   true,
	"intro-share":      true,
	"intro-publishing": true,
	"ta-intro":         true,
}

func contentType(articleID string) string {
	if strings.HasPrefix(articleID, "figs-") || strings.HasPrefix(articleID, "grammar-") {
		return "Module"
	}
	if sectionArticles[articleID] {
		return "Section"
	}
	return "Topic"
}

func difficultyLevel(dependencies []string) string {
	switch {
	case len(dependencies) == 0:
		return "Beginner"
	case len(dependencies) <= 3:
		return "Intermediate"
	default:
		return "Advanced"
	}
}

// keyword groups for the Key Concepts property
var conceptKeywords = []struct {
	concept  string
	keywords []string
}{
	{"Figures of Speech", []string{"metaphor", "simile"}},
	{"Grammar", []string{"verb", "sentence"}},
	{"Translation Principles", []string{"translation", "translate", "meaning"}},
	{"Quality Assurance", []string{"check", "review", "accuracy"}},
	{"Team Management", []string{"team", "leader", "collaborate"}},
	{"Cultural Context", []string{"culture", "cultural", "context"}},
	{"Church Involvement", []string{"church", "pastor", "leader"}},
	{"Source Texts", []string{"source", "original", "hebrew", "greek"}},
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func keyConcepts(articleID, content string) []string {
	lower := strings.ToLower(content)
	var concepts []string
	for _, group := range conceptKeywords {
		switch group.concept {
		case "Figures of Speech":
			if strings.Contains(articleID, "figs-") || containsAny(lower, group.keywords) {
				concepts = append(concepts, group.concept)
			}
		case "Grammar":
			if strings.Contains(articleID, "grammar-") || containsAny(lower, group.keywords) {
				concepts = append(concepts, group.concept)
			}
		default:
			if containsAny(lower, group.keywords) {
				concepts = append(concepts, group.concept)
			}
		}
	}
	return concepts
}

func targetAudience(manual, content string) []string {
	lower := strings.ToLower(content)
	var audiences []string
	switch manual {
	case "translate":
		audiences = append(audiences, "Translators")
	case "checking":
		audiences = append(audiences, "Checkers")
	case "process":
		audiences = append(audiences, "Team Leaders")
	}
	if containsAny(lower, []string{"train", "teaching"}) {
		audiences = append(audiences, "Trainers")
	}
	if containsAny(lower, []string{"church", "pastor"}) {
		audiences = append(audiences, "Church Leaders")
	}
	if len(audiences) == 0 {
		return []string{"Translators"}
	}
	return audiences
}

const defaultLearningObjective = "Learn about translation concepts and techniques."

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// learningObjective extracts a one-line objective: the first early line
// mentioning learning, otherwise the first paragraph, otherwise a stock
// sentence.
func learningObjective(content string) string {
	lines := strings.Split(content, "\n")
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for _, line := range lines[:limit] {
		lower := strings.ToLower(line)
		if containsAny(lower, []string{"learn", "understand", "objective", "goal"}) {
			return truncateRunes(strings.TrimSpace(line), 200)
		}
	}
	for _, paragraph := range strings.Split(content, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" || strings.HasPrefix(paragraph, "#") {
			continue
		}
		if len([]rune(paragraph)) > 200 {
			return truncateRunes(paragraph, 200) + "..."
		}
		return paragraph
	}
	return defaultLearningObjective
}

// DatabaseProperties derives the full property set of an article's
// database row.
func DatabaseProperties(article Article, relations gitea.ArticleConfig, order int, giteaBase string) notion.Properties {
	title := article.Title
	if title == "" {
		title = article.ID
	}
	fullContent := article.Content + "\n" + article.Subtitle

	yamlConfig, _ := json.MarshalIndent(map[string][]string{
		"dependencies": relations.Dependencies,
		"recommended":  relations.Recommended,
	}, "", "  ")

	status := "Needs Review"
	if article.Content != "" {
		status = "Complete"
	}

	return notion.Properties{
		"Title":        notion.TitleProperty(title),
		"Slug":         notion.RichTextProperty(article.ID),
		"Manual":       notion.SelectProperty(ManualDisplayName(article.Manual)),
		"Content Type": notion.SelectProperty(contentType(article.ID)),

		"Sequence Order":  notion.NumberProperty(float64(order)),
		"Repository Path": notion.RichTextProperty(article.RepositoryPath()),
		"Original URL":    notion.URLProperty(fmt.Sprintf("%s%s/%s/01.md", giteaBase, article.Manual, article.ID)),

		"Summary":            notion.RichTextProperty(article.Subtitle),
		"Learning Objective": notion.RichTextProperty(learningObjective(fullContent)),
		"YAML Config":        notion.RichTextProperty(string(yamlConfig)),

		"Difficulty Level": notion.SelectProperty(difficultyLevel(relations.Dependencies)),
		"Key Concepts":     notion.MultiSelectProperty(keyConcepts(article.ID, fullContent)...),
		"Target Audience":  notion.MultiSelectProperty(targetAudience(article.Manual, fullContent)...),

		"Status":             notion.SelectProperty(status),
		"Translation Status": notion.MultiSelectProperty("Available in GL"),
		"Content Hash":       notion.RichTextProperty(article.ContentHash()),
	}
}
