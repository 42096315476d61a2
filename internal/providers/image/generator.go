// Package image defines the image generation boundary used by the
// orchestrator and its Gemini-backed implementation.
package image

import (
	"context"

	"showcase/internal/providers/genai"
)

// Reference is a source image supplied alongside a generation prompt.
type Reference struct {
	MIME string
	Data []byte
}

// GenerateRequest carries one shot's prompt and references.
type GenerateRequest struct {
	Prompt      string
	AspectRatio string
	References  []Reference
	RequestID   string
}

// Asset is a generated image.
type Asset struct {
	Format string
	Width  int
	Height int
	Data   []byte
}

// Generator produces a single image per request.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Asset, error)
}

type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (*Asset, error) {
	refs := make([]genai.Reference, len(req.References))
	for i, r := range req.References {
		refs[i] = genai.Reference{MIME: r.MIME, Data: r.Data}
	}
	asset, err := g.client.GenerateImage(ctx, genai.ImageRequest{
		Prompt:      req.Prompt,
		AspectRatio: req.AspectRatio,
		References:  refs,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return nil, err
	}
	return &Asset{
		Format: asset.Format,
		Width:  asset.Width,
		Height: asset.Height,
		Data:   asset.Data,
	}, nil
}

var _ Generator = (*GeminiGenerator)(nil)
