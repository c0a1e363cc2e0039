// Package pipeline composes the extract, transform and load stages into a
// single run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/toplinks"
)

// Harvester fetches source pages and turns their anchors into link records.
type Harvester struct {
	Fetcher     toplinks.Fetcher
	Extractor   toplinks.AnchorExtractor
	RateLimiter toplinks.DomainLimiter // optional
	Logger      *slog.Logger

	// Now returns the capture time. Defaults to time.Now.
	Now func() time.Time
}

// Extract harvests every source in order. A source that cannot be fetched is
// logged and skipped. A page that cannot be parsed aborts the stage. When no
// source yields any record an ENODATA error is returned.
func (h *Harvester) Extract(ctx context.Context, sources []toplinks.Source) (toplinks.Dataset, error) {
	var records toplinks.Dataset
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		html, err := h.fetch(ctx, src)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			h.logger().Error("source fetch failed", "source", string(src), "code", toplinks.ErrorCode(err), "err", err)
			continue
		}

		anchors, err := h.Extractor.ExtractAnchors(html)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", src, err)
		}

		for _, a := range anchors {
			records = append(records, toplinks.LinkRecord{
				Title:       a.Title,
				Link:        a.Href,
				Description: a.Description,
				CapturedAt:  h.now(),
				Source:      src,
			})
		}
		h.logger().Info("source harvested", "source", string(src), "links", len(anchors))
	}

	if len(records) == 0 {
		return nil, toplinks.Errorf(toplinks.ENODATA, "no links extracted from %d sources", len(sources))
	}
	return records, nil
}

func (h *Harvester) fetch(ctx context.Context, src toplinks.Source) (string, error) {
	if h.RateLimiter != nil {
		u, err := url.Parse(string(src))
		if err != nil {
			return "", toplinks.Errorf(toplinks.EINVALID, "invalid source %q: %v", src, err)
		}
		if err := h.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	return h.Fetcher.Fetch(ctx, string(src))
}

func (h *Harvester) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Harvester) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.DiscardHandler)
}
