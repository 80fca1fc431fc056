package core_test

import (
	"context"
	"testing"

	"github.com/door43-tools/tanotion/internal/core"
	"github.com/door43-tools/tanotion/internal/notion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAllPagesRewritesResolvedLinks(t *testing.T) {
	sink := notion.NewDryRunSink()
	cache := core.NewCache()
	cache.RecordPage("figs-metaphor", "page1")
	cache.RecordPage("figs-simile", "simile1")

	link := notion.LinkText("simile", "../figs-simile/01.md")
	external := notion.LinkText("docs", "https://example.com/docs")
	sink.Children["page1"] = []*notion.Block{
		notion.NewParagraph([]notion.RichText{notion.Text("See "), link}),
		notion.NewParagraph([]notion.RichText{external}),
		notion.NewCode("> cat 01.md", "plain text"),
	}

	updater := core.NewLinkUpdater(sink, cache)
	updated, err := updater.UpdateAllPages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	runs := sink.Children["page1"][0].RichTextRuns()
	require.NotNil(t, runs[1].Text.Link)
	assert.Equal(t, core.NotionPageURL("simile1"), runs[1].Text.Link.URL)
	require.NotNil(t, runs[1].Annotations)
	assert.Equal(t, "blue", runs[1].Annotations.Color)

	// The plain run and the external link stay untouched.
	assert.Nil(t, runs[0].Text.Link)
	assert.Equal(t, "https://example.com/docs", sink.Children["page1"][1].RichTextRuns()[0].Text.Link.URL)
}

func TestUpdatePageDescendsIntoChildren(t *testing.T) {
	sink := notion.NewDryRunSink()
	cache := core.NewCache()
	cache.RecordPage("figs-simile", "simile1")

	item := notion.NewBulletedListItem([]notion.RichText{notion.Text("nested")})
	item.ID = "item1"
	item.HasChildren = true
	sink.Children["page1"] = []*notion.Block{item}
	sink.Children["item1"] = []*notion.Block{
		notion.NewParagraph([]notion.RichText{notion.LinkText("simile", "../figs-simile/01.md")}),
	}

	updater := core.NewLinkUpdater(sink, cache)
	updated, err := updater.UpdatePage(context.Background(), "page1")
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	nested := sink.Children["item1"][0].RichTextRuns()[0]
	assert.Equal(t, core.NotionPageURL("simile1"), nested.Text.Link.URL)
}

func TestUpdatePageLeavesUnresolvedLinks(t *testing.T) {
	sink := notion.NewDryRunSink()
	cache := core.NewCache()

	sink.Children["page1"] = []*notion.Block{
		notion.NewParagraph([]notion.RichText{notion.LinkText("missing", "../figs-unknown/01.md")}),
	}

	updater := core.NewLinkUpdater(sink, cache)
	updated, err := updater.UpdatePage(context.Background(), "page1")
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Equal(t, "../figs-unknown/01.md", sink.Children["page1"][0].RichTextRuns()[0].Text.Link.URL)
}
