package notion

import (
	"context"

	"github.com/google/uuid"
)

// DryRunSink implements Sink without network calls. Page and block IDs
// are generated locally so that downstream caching and link resolution
// behave as in a live run.
type DryRunSink struct {
	Pages    map[string]*Page    // page ID → created page
	Children map[string][]*Block // parent ID → appended blocks
}

func NewDryRunSink() *DryRunSink {
	return &DryRunSink{
		Pages:    make(map[string]*Page),
		Children: make(map[string][]*Block),
	}
}

func (s *DryRunSink) newPage(properties Properties) *Page {
	page := &Page{
		Object:     "page",
		ID:         uuid.New().String(),
		Properties: properties,
	}
	page.URL = "https://www.notion.so/" + page.ID
	s.Pages[page.ID] = page
	return page
}

func (s *DryRunSink) CreateChildPage(_ context.Context, _ string, title string, children []*Block) (*Page, error) {
	page := s.newPage(Properties{"title": TitleProperty(title)})
	s.Children[page.ID] = append(s.Children[page.ID], children...)
	return page, nil
}

func (s *DryRunSink) CreateDatabaseRow(_ context.Context, _ string, properties Properties) (*Page, error) {
	return s.newPage(properties), nil
}

func (s *DryRunSink) UpdatePageProperties(_ context.Context, pageID string, properties Properties) error {
	if page, ok := s.Pages[pageID]; ok {
		for name, value := range properties {
			page.Properties[name] = value
		}
	}
	return nil
}

func (s *DryRunSink) AppendChildren(_ context.Context, blockID string, blocks []*Block) error {
	for _, block := range blocks {
		if block.ID == "" {
			block.ID = uuid.New().String()
		}
	}
	s.Children[blockID] = append(s.Children[blockID], blocks...)
	return nil
}

func (s *DryRunSink) AppendBlock(_ context.Context, blockID string, block *Block) (*Block, error) {
	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	s.Children[blockID] = append(s.Children[blockID], block)
	return block, nil
}

func (s *DryRunSink) ListChildren(_ context.Context, blockID string) ([]*Block, error) {
	return s.Children[blockID], nil
}

func (s *DryRunSink) UpdateBlock(_ context.Context, _ *Block) error {
	return nil
}

func (s *DryRunSink) DeleteBlock(_ context.Context, blockID string) error {
	delete(s.Children, blockID)
	return nil
}

func (s *DryRunSink) QueryDatabaseBySlug(_ context.Context, _ string, slug string) (*Page, error) {
	for _, page := range s.Pages {
		if page.Properties["Slug"].PlainText() == slug {
			return page, nil
		}
	}
	return nil, nil
}
