package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/door43-tools/tanotion/pkg/clock"
)

const (
	// DefaultBaseURL is the public Notion API endpoint.
	DefaultBaseURL = "https://api.notion.com"

	// apiVersion pins the block and property schemas this client speaks.
	apiVersion = "2022-06-28"

	// appendBatchSize is the maximum number of blocks the API accepts in
	// a single children append.
	appendBatchSize = 100
)

// Sink is the write surface the migration needs from Notion. The REST
// client implements it against the live API; the dry-run sink records
// calls locally.
type Sink interface {
	CreateChildPage(ctx context.Context, parentPageID, title string, children []*Block) (*Page, error)
	CreateDatabaseRow(ctx context.Context, databaseID string, properties Properties) (*Page, error)
	UpdatePageProperties(ctx context.Context, pageID string, properties Properties) error
	AppendChildren(ctx context.Context, blockID string, blocks []*Block) error
	AppendBlock(ctx context.Context, blockID string, block *Block) (*Block, error)
	ListChildren(ctx context.Context, blockID string) ([]*Block, error)
	UpdateBlock(ctx context.Context, block *Block) error
	DeleteBlock(ctx context.Context, blockID string) error
	QueryDatabaseBySlug(ctx context.Context, databaseID, slug string) (*Page, error)
}

// Client is the Notion REST client. Requests are spaced by a fixed delay;
// failures surface as errors without retry.
type Client struct {
	rest  *resty.Client
	delay time.Duration
}

// NewClient returns a client authenticated with the integration token.
// delay is slept after every request to stay inside the API rate limit.
func NewClient(baseURL, token string, delay time.Duration) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Notion-Version", apiVersion).
		SetHeader("Content-Type", "application/json")
	return &Client{rest: rest, delay: delay}
}

// apiError is the Notion error envelope.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *Client) throttle() {
	if c.delay > 0 {
		clock.Sleep(c.delay)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	defer c.throttle()

	var apiErr apiError
	request := c.rest.R().SetContext(ctx).SetError(&apiErr)
	if body != nil {
		request.SetBody(body)
	}
	if result != nil {
		request.SetResult(result)
	}
	resp, err := request.Execute(method, path)
	if err != nil {
		return fmt.Errorf("notion: %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("notion: %s %s: %s (%s)", method, path, apiErr.Message, apiErr.Code)
	}
	return nil
}

type pageParent struct {
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
}

type createPageRequest struct {
	Parent     pageParent `json:"parent"`
	Properties Properties `json:"properties"`
	Children   []*Block   `json:"children,omitempty"`
}

// CreateChildPage creates a page under a parent page. At most one batch
// of top-level children goes in the creation call; the rest, and any
// nested children, follow through AppendChildren.
func (c *Client) CreateChildPage(ctx context.Context, parentPageID, title string, children []*Block) (*Page, error) {
	var page Page
	err := c.do(ctx, resty.MethodPost, "/v1/pages", createPageRequest{
		Parent:     pageParent{PageID: parentPageID},
		Properties: Properties{"title": TitleProperty(title)},
	}, &page)
	if err != nil {
		return nil, err
	}
	if len(children) > 0 {
		if err := c.AppendChildren(ctx, page.ID, children); err != nil {
			return nil, err
		}
	}
	return &page, nil
}

// CreateDatabaseRow creates a page as a row of a database.
func (c *Client) CreateDatabaseRow(ctx context.Context, databaseID string, properties Properties) (*Page, error) {
	var page Page
	err := c.do(ctx, resty.MethodPost, "/v1/pages", createPageRequest{
		Parent:     pageParent{DatabaseID: databaseID},
		Properties: properties,
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePageProperties patches the given properties of an existing page.
func (c *Client) UpdatePageProperties(ctx context.Context, pageID string, properties Properties) error {
	return c.do(ctx, resty.MethodPatch, "/v1/pages/"+pageID, map[string]any{
		"properties": properties,
	}, nil)
}

type childrenResponse struct {
	Results    []*Block `json:"results"`
	HasMore    bool     `json:"has_more"`
	NextCursor string   `json:"next_cursor"`
}

// AppendChildren appends a block tree under blockID. Top-level blocks go
// in batches of at most 100 with their children detached; each created
// block that had children receives them in a follow-up append addressed
// to its new ID. Table rows are the exception and stay inline.
func (c *Client) AppendChildren(ctx context.Context, blockID string, blocks []*Block) error {
	for start := 0; start < len(blocks); start += appendBatchSize {
		end := start + appendBatchSize
		if end > len(blocks) {
			end = len(blocks)
		}
		batch := blocks[start:end]

		detached := make([][]*Block, len(batch))
		for i, block := range batch {
			detached[i] = block.DetachChildren()
		}

		var created childrenResponse
		err := c.do(ctx, resty.MethodPatch, "/v1/blocks/"+blockID+"/children", map[string]any{
			"children": batch,
		}, &created)
		if err != nil {
			return err
		}
		if len(created.Results) != len(batch) {
			return fmt.Errorf("notion: append to %s: sent %d blocks, got %d back",
				blockID, len(batch), len(created.Results))
		}

		for i, children := range detached {
			if len(children) == 0 {
				continue
			}
			if err := c.AppendChildren(ctx, created.Results[i].ID, children); err != nil {
				return err
			}
		}
	}
	return nil
}

// AppendBlock appends a single block and returns it as created, with
// its new ID. Used where later calls must address the created block.
func (c *Client) AppendBlock(ctx context.Context, blockID string, block *Block) (*Block, error) {
	children := block.DetachChildren()

	var created childrenResponse
	err := c.do(ctx, resty.MethodPatch, "/v1/blocks/"+blockID+"/children", map[string]any{
		"children": []*Block{block},
	}, &created)
	if err != nil {
		return nil, err
	}
	if len(created.Results) != 1 {
		return nil, fmt.Errorf("notion: append to %s: got %d blocks back", blockID, len(created.Results))
	}
	if len(children) > 0 {
		if err := c.AppendChildren(ctx, created.Results[0].ID, children); err != nil {
			return nil, err
		}
	}
	return created.Results[0], nil
}

// ListChildren returns all direct children of a block, following
// pagination.
func (c *Client) ListChildren(ctx context.Context, blockID string) ([]*Block, error) {
	var blocks []*Block
	cursor := ""
	for {
		path := "/v1/blocks/" + blockID + "/children?page_size=100"
		if cursor != "" {
			path += "&start_cursor=" + cursor
		}
		var page childrenResponse
		if err := c.do(ctx, resty.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}
		blocks = append(blocks, page.Results...)
		if !page.HasMore {
			return blocks, nil
		}
		cursor = page.NextCursor
	}
}

// UpdateBlock rewrites the payload of an existing block, keeping its
// type.
func (c *Client) UpdateBlock(ctx context.Context, block *Block) error {
	payload := map[string]any{}
	switch block.Type {
	case TypeParagraph:
		payload["paragraph"] = block.Paragraph
	case TypeHeading1:
		payload["heading_1"] = block.Heading1
	case TypeHeading2:
		payload["heading_2"] = block.Heading2
	case TypeHeading3:
		payload["heading_3"] = block.Heading3
	case TypeQuote:
		payload["quote"] = block.Quote
	case TypeBulletedListItem:
		payload["bulleted_list_item"] = block.BulletedListItem
	case TypeNumberedListItem:
		payload["numbered_list_item"] = block.NumberedListItem
	case TypeCallout:
		payload["callout"] = block.Callout
	case TypeToggle:
		payload["toggle"] = block.Toggle
	default:
		return fmt.Errorf("notion: update block %s: type %s not updatable", block.ID, block.Type)
	}
	return c.do(ctx, resty.MethodPatch, "/v1/blocks/"+block.ID, payload, nil)
}

// DeleteBlock archives a block.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) error {
	return c.do(ctx, resty.MethodDelete, "/v1/blocks/"+blockID, nil, nil)
}

type queryResponse struct {
	Results []*Page `json:"results"`
}

// QueryDatabaseBySlug returns the first database row whose Slug property
// equals slug, or nil when none matches.
func (c *Client) QueryDatabaseBySlug(ctx context.Context, databaseID, slug string) (*Page, error) {
	var result queryResponse
	err := c.do(ctx, resty.MethodPost, "/v1/databases/"+databaseID+"/query", map[string]any{
		"filter": map[string]any{
			"property":  "Slug",
			"rich_text": map[string]any{"equals": slug},
		},
	}, &result)
	if err != nil {
		return nil, err
	}
	if len(result.Results) == 0 {
		return nil, nil
	}
	return result.Results[0], nil
}

type searchResponse struct {
	Results []*Page `json:"results"`
}

// Search returns pages whose title matches the query.
func (c *Client) Search(ctx context.Context, query string) ([]*Page, error) {
	var result searchResponse
	err := c.do(ctx, resty.MethodPost, "/v1/search", map[string]any{
		"query":  query,
		"filter": map[string]any{"property": "object", "value": "page"},
	}, &result)
	if err != nil {
		return nil, err
	}
	return result.Results, nil
}
