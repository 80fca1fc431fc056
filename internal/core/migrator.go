package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/door43-tools/tanotion/internal/gitea"
	"github.com/door43-tools/tanotion/internal/markdown"
	"github.com/door43-tools/tanotion/internal/notion"
	"github.com/door43-tools/tanotion/pkg/console"
)

// ArticleRef addresses one article inside a manual.
type ArticleRef struct {
	Manual string
	ID     string
}

func (r ArticleRef) String() string {
	return r.Manual + "/" + r.ID
}

// ParseArticleRef reads a "manual/article" argument.
func ParseArticleRef(arg string) (ArticleRef, error) {
	manual, id, found := strings.Cut(arg, "/")
	if !found || manual == "" || id == "" {
		return ArticleRef{}, fmt.Errorf("invalid article reference %q (want manual/article)", arg)
	}
	return ArticleRef{Manual: manual, ID: id}, nil
}

// MigrationSummary reports the outcome of a migration run.
type MigrationSummary struct {
	Migrated int
	Skipped  int
	Failed   int
}

// Migrator pushes articles into the Notion database, one row per
// article with the converted body as page content. Failures on a single
// article are logged and the run continues.
type Migrator struct {
	config    *Config
	source    *gitea.Client
	sink      notion.Sink
	cache     *Cache
	converter *markdown.Converter

	relations map[string]gitea.ManualConfig // manual → config.yaml
}

func NewMigrator(config *Config, source *gitea.Client, sink notion.Sink, cache *Cache) *Migrator {
	resolver := NewLinkResolver(cache)
	return &Migrator{
		config: config,
		source: source,
		sink:   sink,
		cache:  cache,
		converter: markdown.NewConverter(
			markdown.WithResolver(resolver),
			markdown.WithMaxBlocks(config.Migration.MaxBlocks),
		),
		relations: make(map[string]gitea.ManualConfig),
	}
}

// DiscoverArticles walks the TOC of each manual and returns every linked
// article in reading order.
func (m *Migrator) DiscoverArticles(ctx context.Context, manuals []string) ([]ArticleRef, error) {
	var refs []ArticleRef
	seen := make(map[ArticleRef]bool)

	for _, manual := range manuals {
		toc, err := m.source.ManualTOC(ctx, manual)
		if err != nil {
			return nil, err
		}
		var walk func(sections []gitea.TOCSection)
		walk = func(sections []gitea.TOCSection) {
			for _, section := range sections {
				if section.Link != "" {
					ref := ArticleRef{Manual: manual, ID: section.Link}
					if !seen[ref] {
						seen[ref] = true
						refs = append(refs, ref)
					}
				}
				walk(section.Sections)
			}
		}
		walk(toc.Sections)
	}
	return refs, nil
}

// Migrate processes the given articles in order. The sequence order of
// each row is its position in the list.
func (m *Migrator) Migrate(ctx context.Context, refs []ArticleRef) (MigrationSummary, error) {
	var summary MigrationSummary
	progress := console.NewProgressLog(len(refs), console.ShowPercent())

	for i, ref := range refs {
		progress.Log(i+1, ref.String())

		migrated, err := m.migrateArticle(ctx, ref, i+1)
		switch {
		case err != nil:
			CurrentLogger().Errorf("Failed to migrate %s: %v", ref, err)
			summary.Failed++
		case migrated:
			summary.Migrated++
		default:
			summary.Skipped++
		}
	}
	progress.Clear(fmt.Sprintf("Migrated %d articles (%d skipped, %d failed)",
		summary.Migrated, summary.Skipped, summary.Failed))

	if path := m.config.Migration.CacheFile; path != "" {
		if err := m.cache.SaveToFile(path); err != nil {
			return summary, fmt.Errorf("save cache: %w", err)
		}
	}
	return summary, nil
}

func (m *Migrator) loadArticle(ctx context.Context, ref ArticleRef) (Article, error) {
	title, err := m.source.ArticleTitle(ctx, ref.Manual, ref.ID)
	if err != nil {
		return Article{}, err
	}
	subtitle, err := m.source.ArticleSubtitle(ctx, ref.Manual, ref.ID)
	if err != nil {
		return Article{}, err
	}
	content, err := m.source.ArticleContent(ctx, ref.Manual, ref.ID)
	if err != nil {
		return Article{}, err
	}
	return Article{
		Manual:   ref.Manual,
		ID:       ref.ID,
		Title:    title,
		Subtitle: subtitle,
		Content:  content,
	}, nil
}

func (m *Migrator) articleRelations(ctx context.Context, ref ArticleRef) gitea.ArticleConfig {
	config, ok := m.relations[ref.Manual]
	if !ok {
		loaded, err := m.source.ManualArticleConfig(ctx, ref.Manual)
		if err != nil && !errors.Is(err, gitea.ErrNotFound) {
			CurrentLogger().Warnf("Unable to load %s/config.yaml: %v", ref.Manual, err)
		}
		config = loaded
		m.relations[ref.Manual] = config
	}
	return config[ref.ID]
}

// migrateArticle creates or updates the database row of one article.
// Returns false when the row is already up to date.
func (m *Migrator) migrateArticle(ctx context.Context, ref ArticleRef, order int) (bool, error) {
	article, err := m.loadArticle(ctx, ref)
	if err != nil {
		return false, err
	}
	relations := m.articleRelations(ctx, ref)

	existing, err := m.sink.QueryDatabaseBySlug(ctx, m.config.NotionDatabaseID, article.ID)
	if err != nil {
		return false, err
	}

	record := func(pageID string) {
		m.cache.RecordPage(article.ID, pageID)
		m.cache.RecordTitle(pageID, article.Title)
		m.cache.RecordArticleURLs(m.config.GiteaSourceBase(), article.Manual, article.ID, pageID)
	}

	if existing != nil && existing.Properties["Content Hash"].PlainText() == article.ContentHash() {
		CurrentLogger().Infof("Skipping %s: content unchanged", ref)
		record(existing.ID)
		return false, nil
	}

	properties := DatabaseProperties(article, relations, order, m.config.GiteaSourceBase())

	var pageID string
	if existing != nil {
		CurrentLogger().Infof("Updating existing row for %s", ref)
		if err := m.sink.UpdatePageProperties(ctx, existing.ID, properties); err != nil {
			return false, err
		}
		if err := m.clearPageContent(ctx, existing.ID); err != nil {
			return false, err
		}
		pageID = existing.ID
	} else {
		CurrentLogger().Infof("Creating row for %s", ref)
		page, err := m.sink.CreateDatabaseRow(ctx, m.config.NotionDatabaseID, properties)
		if err != nil {
			return false, err
		}
		pageID = page.ID
	}

	blocks := m.converter.Convert(markdown.Document(article.Content))
	if len(blocks) > 0 {
		if err := m.sink.AppendChildren(ctx, pageID, blocks); err != nil {
			return false, err
		}
	}

	record(pageID)
	return true, nil
}

func (m *Migrator) clearPageContent(ctx context.Context, pageID string) error {
	blocks, err := m.sink.ListChildren(ctx, pageID)
	if err != nil {
		return err
	}
	for _, block := range blocks {
		if err := m.sink.DeleteBlock(ctx, block.ID); err != nil {
			return err
		}
	}
	return nil
}
