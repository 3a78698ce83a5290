package nasa

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/cosmusapp/cosmus-go/internal/models"
)

const (
	searchPageSize = 10
	randomPageSize = 100
	randomDraws    = 5
)

// searchVocabulary feeds FetchRandom with broad archive topics.
var searchVocabulary = []string{
	"galaxy", "nebula", "earth", "apollo", "planet",
	"stars", "hubble", "mars rover", "space shuttle",
}

// Engine turns a loosely structured archive search result into a small set
// of quality-tiered, ready-to-render resource URLs. Every failure along the
// way is non-fatal: the engine logs and moves to the next candidate, and
// only exhaustion yields a nil result.
type Engine struct {
	client *Client
	logger *slog.Logger
	pick   func(n int) int
}

// NewEngine creates a media resolution engine on top of an archive client.
func NewEngine(client *Client, logger *slog.Logger) *Engine {
	return &Engine{
		client: client,
		logger: logger,
		pick:   rand.IntN,
	}
}

// FetchByQuery searches the archive and resolves the first item with a usable
// image or video. Returns nil when the query yields nothing usable; it never
// fails with an error, matching the caller contract that missing media is a
// normal outcome.
func (e *Engine) FetchByQuery(ctx context.Context, query string) *models.ResolvedMedia {
	if query == "" {
		return nil
	}

	items, err := e.client.Search(ctx, query, searchPageSize)
	if err != nil {
		e.logger.Warn("archive search failed", "query", query, "error", err)
		return nil
	}

	for _, item := range items {
		if item.Href == "" {
			continue
		}
		if media := e.resolveItem(ctx, item); media != nil {
			return media
		}
	}

	e.logger.Info("no usable media found", "query", query)
	return nil
}

// FetchRandom picks a topic from the fixed vocabulary, searches with a large
// page size, and makes up to five random draws from the usable items,
// resolving each until one succeeds.
func (e *Engine) FetchRandom(ctx context.Context) *models.ResolvedMedia {
	term := searchVocabulary[e.pick(len(searchVocabulary))]

	items, err := e.client.Search(ctx, term, randomPageSize)
	if err != nil {
		e.logger.Warn("random archive search failed", "term", term, "error", err)
		return nil
	}

	var usable []Item
	for _, item := range items {
		kind := item.MediaType()
		if item.Href != "" && (kind == "image" || kind == "video") {
			usable = append(usable, item)
		}
	}
	if len(usable) == 0 {
		e.logger.Info("no usable media for random term", "term", term)
		return nil
	}

	for i := 0; i < randomDraws; i++ {
		item := usable[e.pick(len(usable))]
		if media := e.resolveItem(ctx, item); media != nil {
			return media
		}
	}

	e.logger.Info("random draws exhausted", "term", term)
	return nil
}

// resolveItem resolves one search result item into tiered URLs according to
// its declared media kind. Returns nil for unusable kinds or failed
// resolution.
func (e *Engine) resolveItem(ctx context.Context, item Item) *models.ResolvedMedia {
	switch item.MediaType() {
	case "image":
		manifest, err := e.client.Manifest(ctx, item.Href)
		if err != nil {
			e.logger.Warn("manifest fetch failed", "href", item.Href, "error", err)
			return nil
		}
		urls := resolveImageURLs(manifest, item.Href)
		if urls == nil {
			e.logger.Debug("no usable image links in manifest", "href", item.Href)
			return nil
		}
		return &models.ResolvedMedia{
			Type:    models.MediaImage,
			Title:   item.Title(),
			Preview: urls.preview,
			Display: urls.display,
			Full:    urls.full,
		}

	case "video":
		manifest, err := e.client.Manifest(ctx, item.Href)
		if err != nil {
			e.logger.Warn("video manifest fetch failed", "href", item.Href, "error", err)
			return nil
		}
		videoURL := selectVideoURL(manifest)
		if videoURL == "" {
			e.logger.Debug("no playable video links in manifest", "href", item.Href)
			return nil
		}
		// One optimized file serves all three tiers.
		return &models.ResolvedMedia{
			Type:    models.MediaVideo,
			Title:   item.Title(),
			Preview: videoURL,
			Display: videoURL,
			Full:    videoURL,
		}

	default:
		return nil
	}
}
