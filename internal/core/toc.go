package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/door43-tools/tanotion/internal/gitea"
	"github.com/door43-tools/tanotion/internal/markdown"
	"github.com/door43-tools/tanotion/internal/notion"
)

// TOCBuilderOptions narrow a build run.
type TOCBuilderOptions struct {
	// Sections limits how many top-level sections are built (0 = all).
	Sections int
	// Start skips the first Start-1 top-level sections.
	Start int
	// NoContent builds only the visual TOC, no hierarchy pages.
	NoContent bool
	// SkipExisting leaves already-cached article pages untouched.
	SkipExisting bool
}

// TOCBuilder mirrors a manual's toc.yaml into Notion twice: as a page
// hierarchy (one page per article or container section) and as a visual
// table of contents of toggles with page links on the parent page.
type TOCBuilder struct {
	config    *Config
	source    *gitea.Client
	sink      notion.Sink
	cache     *Cache
	converter *markdown.Converter
	resolver  *LinkResolver
	options   TOCBuilderOptions
}

func NewTOCBuilder(config *Config, source *gitea.Client, sink notion.Sink, cache *Cache, options TOCBuilderOptions) *TOCBuilder {
	resolver := NewLinkResolver(cache)
	return &TOCBuilder{
		config:   config,
		source:   source,
		sink:     sink,
		cache:    cache,
		resolver: resolver,
		converter: markdown.NewConverter(
			markdown.WithResolver(resolver),
			markdown.WithMaxBlocks(config.Migration.MaxBlocks),
		),
		options: options,
	}
}

// BuildManual builds one manual under the parent page. The visual TOC
// toggles land on the parent page itself; hierarchy pages become its
// child pages.
func (b *TOCBuilder) BuildManual(ctx context.Context, manual, parentPageID string) error {
	toc, err := b.source.ManualTOC(ctx, manual)
	if err != nil {
		return err
	}
	relations, err := b.source.ManualArticleConfig(ctx, manual)
	if err != nil && !errors.Is(err, gitea.ErrNotFound) {
		CurrentLogger().Warnf("Unable to load %s/config.yaml: %v", manual, err)
	}

	sections := toc.Sections
	if b.options.Start > 1 && b.options.Start <= len(sections) {
		sections = sections[b.options.Start-1:]
	}
	if b.options.Sections > 0 && b.options.Sections < len(sections) {
		sections = sections[:b.options.Sections]
	}

	for _, section := range sections {
		if err := b.buildSection(ctx, manual, section, relations, parentPageID, parentPageID, 1, 0); err != nil {
			return err
		}
	}
	return nil
}

// buildSection handles one TOC node: its hierarchy page, its visual TOC
// entry, and its subsections.
func (b *TOCBuilder) buildSection(ctx context.Context, manual string, section gitea.TOCSection,
	relations gitea.ManualConfig, visualParentID, hierarchyParentID string, level, indent int) error {

	articleID := section.Link
	subsections := section.Sections

	// A container whose first child is an identically titled article
	// takes that article's content as its own page body.
	if articleID == "" && len(subsections) > 0 {
		first := subsections[0]
		if first.Title == section.Title && first.Link != "" && len(first.Sections) == 0 {
			CurrentLogger().Debugf("Container %q takes content from child article %q", section.Title, first.Link)
			articleID = first.Link
			subsections = subsections[1:]
		}
	}

	isArticle := articleID != ""
	isContainer := len(subsections) > 0

	var pageID string
	if (isArticle || isContainer) && !b.options.NoContent {
		cached := b.lookupExisting(articleID, section.Title)
		switch {
		case cached != "":
			CurrentLogger().Infof("Cache hit: page %q already exists (%s)", section.Title, cached)
			pageID = cached
		case b.options.SkipExisting:
			CurrentLogger().Infof("Skipping creation of %q", section.Title)
		case isArticle:
			created, err := b.createArticlePage(ctx, manual, section.Title, articleID, hierarchyParentID, relations)
			if err != nil {
				CurrentLogger().Errorf("Failed to create article page %q: %v", section.Title, err)
				if isContainer {
					// The subtree still needs a parent page.
					created, err = b.createSectionPage(ctx, section.Title, hierarchyParentID)
					if err != nil {
						return err
					}
				}
			}
			pageID = created
		case isContainer:
			created, err := b.createSectionPage(ctx, section.Title, hierarchyParentID)
			if err != nil {
				return err
			}
			pageID = created
		}
	}

	visualParentID, err := b.addVisualEntry(ctx, section.Title, pageID, visualParentID, level, indent, isArticle)
	if err != nil {
		return err
	}

	nextHierarchyParent := hierarchyParentID
	if pageID != "" {
		nextHierarchyParent = pageID
	}
	nextIndent := indent + 1
	if b.isToggle(section.Title, level) {
		nextIndent = 0
	}
	for _, sub := range subsections {
		if err := b.buildSection(ctx, manual, sub, relations, visualParentID, nextHierarchyParent, level+1, nextIndent); err != nil {
			return err
		}
	}
	return nil
}

func (b *TOCBuilder) lookupExisting(articleID, title string) string {
	if articleID != "" {
		if pageID, ok := b.cache.LookupPage(articleID); ok {
			return pageID
		}
	}
	if pageID, ok := b.cache.PageByTitle(title); ok {
		return pageID
	}
	return ""
}

func (b *TOCBuilder) isToggle(title string, level int) bool {
	return level == 1 || title == "Just-in-Time Learning Modules"
}

// addVisualEntry places the section in the visual TOC and returns the
// parent the subsections' entries should attach to.
func (b *TOCBuilder) addVisualEntry(ctx context.Context, title, pageID, visualParentID string, level, indent int, isArticle bool) (string, error) {
	if visualParentID == "" {
		return "", nil
	}

	if b.isToggle(title, level) {
		var toggle *notion.Block
		if level == 1 {
			toggle = notion.NewHeading(1, []notion.RichText{notion.Text(title)})
			toggle.Heading1.IsToggleable = true
		} else {
			toggle = notion.NewToggle([]notion.RichText{notion.Text(title)})
		}
		created, err := b.sink.AppendBlock(ctx, visualParentID, toggle)
		if err != nil {
			return "", err
		}
		if pageID != "" {
			if err := b.appendLinkParagraph(ctx, created.ID, "📄 "+title, pageID); err != nil {
				return "", err
			}
		}
		return created.ID, nil
	}

	prefix := strings.Repeat("    ", indent) + bulletForIndent(indent)
	if pageID != "" {
		return visualParentID, b.appendLinkParagraph(ctx, visualParentID, prefix+title, pageID)
	}
	entry := notion.NewParagraph([]notion.RichText{notion.BoldText(prefix + title)})
	_, err := b.sink.AppendBlock(ctx, visualParentID, entry)
	return visualParentID, err
}

func bulletForIndent(indent int) string {
	switch indent {
	case 1:
		return "→ "
	case 2:
		return "○ "
	default:
		return "• "
	}
}

func (b *TOCBuilder) appendLinkParagraph(ctx context.Context, parentID, text, pageID string) error {
	link := notion.LinkText(text, NotionPageURL(pageID))
	link.Annotations = &notion.Annotations{Color: "blue"}
	_, err := b.sink.AppendBlock(ctx, parentID, notion.NewParagraph([]notion.RichText{link}))
	return err
}

// createArticlePage builds a full article page: H1 title, subtitle
// callout, converted content, and a related-articles callout.
func (b *TOCBuilder) createArticlePage(ctx context.Context, manual, title, articleID, parentID string, relations gitea.ManualConfig) (string, error) {
	content, err := b.source.ArticleContent(ctx, manual, articleID)
	if err != nil {
		return "", err
	}
	subtitle, err := b.source.ArticleSubtitle(ctx, manual, articleID)
	if err != nil {
		return "", err
	}

	contentBlocks := b.converter.Convert(markdown.Document(content))

	var blocks []*notion.Block
	if len(contentBlocks) == 0 || contentBlocks[0].Type != notion.TypeHeading1 {
		blocks = append(blocks, notion.NewHeading(1, []notion.RichText{notion.Text(title)}))
	}
	if subtitle != "" {
		blocks = append(blocks, subtitleCallout(subtitle))
	}
	blocks = append(blocks, contentBlocks...)
	if callout := b.relatedCallout(relations[articleID]); callout != nil {
		blocks = append(blocks, notion.NewDivider(), callout)
	}

	page, err := b.sink.CreateChildPage(ctx, parentID, title, blocks)
	if err != nil {
		return "", err
	}

	b.cache.RecordPage(articleID, page.ID)
	b.cache.RecordTitle(page.ID, title)
	b.cache.RecordArticleURLs(b.config.GiteaSourceBase(), manual, articleID, page.ID)
	return page.ID, nil
}

func (b *TOCBuilder) createSectionPage(ctx context.Context, title, parentID string) (string, error) {
	page, err := b.sink.CreateChildPage(ctx, parentID, title, []*notion.Block{
		notion.NewHeading(1, []notion.RichText{notion.Text(title)}),
	})
	if err != nil {
		return "", err
	}
	b.cache.RecordTitle(page.ID, title)
	return page.ID, nil
}

func subtitleCallout(subtitle string) *notion.Block {
	question := strings.Trim(strings.TrimSpace(subtitle), "_")
	callout := notion.NewCallout([]notion.RichText{
		notion.Text("This article answers the question: "),
		notion.ItalicText(question),
	}, "❓", "gray_background")
	return callout
}

// relatedCallout links the article's dependencies and recommendations.
// Returns nil unless at least one relation resolved to a migrated page.
func (b *TOCBuilder) relatedCallout(relations gitea.ArticleConfig) *notion.Block {
	related := append([]string{}, relations.Dependencies...)
	for _, id := range relations.Recommended {
		if !slices.Contains(related, id) {
			related = append(related, id)
		}
	}
	if len(related) == 0 {
		return nil
	}

	runs := []notion.RichText{notion.Text("Related: ")}
	resolved := 0
	for i, articleID := range related {
		if i > 0 {
			runs = append(runs, notion.Text(" | "))
		}
		title := b.relatedTitle(articleID)
		if pageID, ok := b.cache.LookupPage(articleID); ok {
			link := notion.LinkText(title, NotionPageURL(pageID))
			link.Annotations = &notion.Annotations{Color: "gray"}
			runs = append(runs, link)
			resolved++
		} else {
			runs = append(runs, notion.RichText{
				Type:        "text",
				Text:        notion.TextContent{Content: title},
				Annotations: &notion.Annotations{Italic: true, Color: "gray"},
			})
		}
	}
	if resolved == 0 {
		return nil
	}
	return notion.NewCallout(runs, "🔗", "gray_background")
}

func (b *TOCBuilder) relatedTitle(articleID string) string {
	if pageID, ok := b.cache.LookupPage(articleID); ok {
		if title, found := b.cache.Titles()[pageID]; found && title != "" {
			return title
		}
	}
	return articleID
}

// Describe summarizes what a build run would cover, for logging.
func Describe(toc *gitea.TOC) string {
	count := 0
	for _, section := range toc.Sections {
		count += section.ArticleCount()
	}
	return fmt.Sprintf("%s (%d sections, %d articles)", toc.Title, len(toc.Sections), count)
}
