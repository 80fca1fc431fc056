package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

var (
	manualPathRegex      = regexp.MustCompile(`(?:\.\./|/)(?:intro|process|translate|checking)/([^/]+)(?:/01\.md|/)?$`)
	relativeArticleRegex = regexp.MustCompile(`\.\./([^/]+)/01\.md`)
	relativeDirRegex     = regexp.MustCompile(`\.\./([^/]+)/`)
	numberedFileRegex    = regexp.MustCompile(`(\d+-[^/]+)\.md$`)
)

// ExtractArticleID pulls the article ID out of an internal link URL.
// Returns "" when the URL does not look like an article reference.
// The manual-qualified pattern runs first so that paths crossing a
// manual segment ("../../translate/slug/01.md", full Gitea URLs) do not
// fall into the bare-relative fallbacks.
func ExtractArticleID(url string) string {
	if m := manualPathRegex.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if strings.Contains(url, "../") {
		if strings.Contains(url, "01.md") {
			if m := relativeArticleRegex.FindStringSubmatch(url); m != nil {
				return m[1]
			}
		} else if strings.HasSuffix(url, "/") {
			if m := relativeDirRegex.FindStringSubmatch(url); m != nil {
				return m[1]
			}
		} else if m := numberedFileRegex.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// IsInternalLink reports whether a URL points inside the corpus, i.e. is
// a candidate for rewriting to a Notion page link.
func IsInternalLink(url string) bool {
	return strings.Contains(url, "../") || strings.Contains(url, "git.door43.org")
}

// NotionPageURL builds the public URL of a page. Notion accepts the page
// ID without dashes.
func NotionPageURL(pageID string) string {
	return "https://www.notion.so/" + strings.ReplaceAll(pageID, "-", "")
}

// LinkResolver maps internal corpus URLs to migrated Notion pages using
// the cache. Resolution tries, in order: the exact URL variant map, the
// article ID extracted from the URL, the exact link text as a title, and
// finally a slug-normalized title comparison.
type LinkResolver struct {
	cache *Cache
}

func NewLinkResolver(cache *Cache) *LinkResolver {
	return &LinkResolver{cache: cache}
}

// PageIDFor returns the Notion page ID a URL points at, if it is known.
func (r *LinkResolver) PageIDFor(url, linkText string) (string, bool) {
	if pageID, ok := r.cache.LookupURL(url); ok {
		return pageID, true
	}
	if articleID := ExtractArticleID(url); articleID != "" {
		if pageID, ok := r.cache.LookupPage(articleID); ok {
			return pageID, true
		}
	}
	if linkText != "" {
		if pageID, ok := r.cache.PageByTitle(linkText); ok {
			return pageID, true
		}
		want := slug.Make(linkText)
		if want != "" {
			for pageID, title := range r.cache.Titles() {
				if slug.Make(title) == want {
					CurrentLogger().Debugf("Resolved link via fuzzy title: %q -> %q (%s)", linkText, title, pageID)
					return pageID, true
				}
			}
		}
	}
	return "", false
}

// ResolveLink implements the converter's link resolution hook: internal
// URLs that map to a migrated page are rewritten to its Notion URL;
// everything else is kept byte for byte.
func (r *LinkResolver) ResolveLink(url, linkText string) (string, bool) {
	if !IsInternalLink(url) {
		return "", false
	}
	if pageID, ok := r.PageIDFor(url, linkText); ok {
		return NotionPageURL(pageID), true
	}
	CurrentLogger().Warnf("Could not resolve internal link: %s", url)
	return "", false
}

// RecordArticleURLs registers the URL variants under which an article is
// reachable, so later links resolve regardless of how they are spelled:
// relative (with and without 01.md), the full Gitea URL, and the
// scheme-stripped form of each.
func (c *Cache) RecordArticleURLs(giteaBase, manual, articleID, pageID string) {
	variants := []string{
		fmt.Sprintf("../%s/", articleID),
		fmt.Sprintf("../%s/01.md", articleID),
		fmt.Sprintf("%s%s/%s/", giteaBase, manual, articleID),
		fmt.Sprintf("%s%s/%s/01.md", giteaBase, manual, articleID),
	}
	for _, variant := range variants {
		c.RecordURL(variant, pageID)
		if stripped := strings.TrimPrefix(variant, "https://"); stripped != variant {
			c.RecordURL(stripped, pageID)
		} else if stripped := strings.TrimPrefix(variant, "http://"); stripped != variant {
			c.RecordURL(stripped, pageID)
		}
	}
}

// GiteaSourceBase is the URL prefix of article files in the repository
// browser, ending with a slash.
func (c *Config) GiteaSourceBase() string {
	return fmt.Sprintf("%s/%s/%s/src/branch/%s/",
		strings.TrimRight(c.Gitea.URL, "/"), c.Gitea.Owner, c.Gitea.Repo, c.Gitea.Ref)
}
