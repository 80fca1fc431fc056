package core

import (
	"context"
	"fmt"

	"github.com/door43-tools/tanotion/internal/notion"
	"github.com/door43-tools/tanotion/pkg/console"
)

// updatableTypes are the block types whose rich text the API lets us
// rewrite in place.
var updatableTypes = map[notion.BlockType]bool{
	notion.TypeParagraph:        true,
	notion.TypeHeading1:         true,
	notion.TypeHeading2:         true,
	notion.TypeHeading3:         true,
	notion.TypeQuote:            true,
	notion.TypeBulletedListItem: true,
	notion.TypeNumberedListItem: true,
	notion.TypeToggle:           true,
	notion.TypeCallout:          true,
}

// LinkUpdater walks migrated pages after the fact and rewrites internal
// links that could not be resolved at conversion time, once their target
// pages exist.
type LinkUpdater struct {
	sink     notion.Sink
	cache    *Cache
	resolver *LinkResolver
}

func NewLinkUpdater(sink notion.Sink, cache *Cache) *LinkUpdater {
	return &LinkUpdater{
		sink:     sink,
		cache:    cache,
		resolver: NewLinkResolver(cache),
	}
}

// UpdateAllPages processes every cached page. Per-page failures are
// logged and the walk continues. Returns the number of rewritten links.
func (u *LinkUpdater) UpdateAllPages(ctx context.Context) (int, error) {
	pageIDs := u.cache.PageIDs()
	progress := console.NewProgressLog(len(pageIDs), console.ShowPercent())

	updated := 0
	for i, pageID := range pageIDs {
		progress.Log(i+1, pageID)
		count, err := u.UpdatePage(ctx, pageID)
		if err != nil {
			CurrentLogger().Errorf("Failed to update links on page %s: %v", pageID, err)
			continue
		}
		updated += count
	}
	progress.Clear(fmt.Sprintf("Updated %d links on %d pages", updated, len(pageIDs)))
	return updated, nil
}

// UpdatePage rewrites the resolvable links of one page, descending into
// nested blocks.
func (u *LinkUpdater) UpdatePage(ctx context.Context, pageID string) (int, error) {
	blocks, err := u.sink.ListChildren(ctx, pageID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, block := range blocks {
		count, err := u.updateBlock(ctx, block)
		if err != nil {
			return updated, err
		}
		updated += count

		if block.HasChildren {
			nested, err := u.UpdatePage(ctx, block.ID)
			if err != nil {
				return updated, err
			}
			updated += nested
		}
	}
	return updated, nil
}

func (u *LinkUpdater) updateBlock(ctx context.Context, block *notion.Block) (int, error) {
	if !updatableTypes[block.Type] {
		return 0, nil
	}
	runs := block.RichTextRuns()
	if len(runs) == 0 {
		return 0, nil
	}

	updated := 0
	for i := range runs {
		link := runs[i].Text.Link
		if link == nil || !IsInternalLink(link.URL) {
			continue
		}
		newURL, ok := u.resolver.ResolveLink(link.URL, runs[i].Text.Content)
		if !ok || newURL == link.URL {
			continue
		}
		runs[i].Text.Link.URL = newURL
		if runs[i].Annotations == nil {
			runs[i].Annotations = &notion.Annotations{}
		}
		runs[i].Annotations.Color = "blue"
		updated++
	}
	if updated == 0 {
		return 0, nil
	}

	block.SetRichTextRuns(runs)
	if err := u.sink.UpdateBlock(ctx, block); err != nil {
		return 0, err
	}
	CurrentLogger().Debugf("Rewrote %d links in block %s", updated, block.ID)
	return updated, nil
}
