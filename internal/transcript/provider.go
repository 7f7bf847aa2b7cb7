package transcript

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/airenas/go-app/pkg/goapp"
	"github.com/airenas/transcript-fetcher/internal/domain"
	"github.com/airenas/transcript-fetcher/internal/utils"
)

// Fetcher returns raw page data for a video
type Fetcher interface {
	Get(ctx context.Context, videoID string) ([]byte, error)
}

// Provider fetches a video page and extracts transcript text from it
type Provider struct {
	fetcher Fetcher
}

// NewProvider creates a transcript provider
func NewProvider(fetcher Fetcher) (*Provider, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("no fetcher")
	}
	return &Provider{fetcher: fetcher}, nil
}

// Get returns the trimmed transcript of videoID.
// It returns domain.ErrNoTranscript if the document has no text
// and domain.ErrBadDocument if the document can't be parsed.
func (sp *Provider) Get(ctx context.Context, videoID string) (string, error) {
	defer utils.MeasureTime(ctx, "transcript", time.Now())
	data, err := sp.fetcher.Get(ctx, videoID)
	if err != nil {
		return "", err
	}
	res, err := Extract(data)
	if err != nil {
		return "", err
	}
	goapp.Log.Debug().Str("id", utils.RequestID(ctx)).Int("len", len(res)).Msg("extracted")
	// whitespace only text is treated as no transcript
	res = strings.TrimSpace(res)
	if res == "" {
		return "", domain.ErrNoTranscript
	}
	return res, nil
}
