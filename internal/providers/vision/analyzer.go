// Package vision defines the multimodal analysis boundary used for brief
// parsing, hero description, style analysis and consistency scoring.
package vision

import (
	"context"
	"fmt"

	"showcase/internal/providers/genai"
)

// Reference is an image part analyzed alongside the prompt. Parts are sent
// ahead of the prompt text.
type Reference struct {
	MIME string
	Data []byte
}

// Analyzer runs multimodal prompts against a vision-capable model.
type Analyzer interface {
	// AnalyzeJSON runs the prompt in JSON mode and returns the extracted
	// JSON fragment ready for unmarshalling.
	AnalyzeJSON(ctx context.Context, prompt string, refs []Reference) ([]byte, error)
	// Describe runs the prompt and returns free-form text.
	Describe(ctx context.Context, prompt string, refs []Reference) (string, error)
}

type GeminiAnalyzer struct {
	client *genai.Client
}

func NewGeminiAnalyzer(client *genai.Client) *GeminiAnalyzer {
	return &GeminiAnalyzer{client: client}
}

func (g *GeminiAnalyzer) AnalyzeJSON(ctx context.Context, prompt string, refs []Reference) ([]byte, error) {
	raw, err := g.client.GenerateText(ctx, genai.TextRequest{
		Prompt:     prompt,
		References: toGenaiRefs(refs),
		JSONMode:   true,
	})
	if err != nil {
		return nil, err
	}
	fragment := genai.ExtractJSONFragment(raw)
	if fragment == "" {
		return nil, fmt.Errorf("vision: empty analysis payload")
	}
	return []byte(fragment), nil
}

func (g *GeminiAnalyzer) Describe(ctx context.Context, prompt string, refs []Reference) (string, error) {
	return g.client.GenerateText(ctx, genai.TextRequest{
		Prompt:     prompt,
		References: toGenaiRefs(refs),
	})
}

func toGenaiRefs(refs []Reference) []genai.Reference {
	out := make([]genai.Reference, len(refs))
	for i, r := range refs {
		out[i] = genai.Reference{MIME: r.MIME, Data: r.Data}
	}
	return out
}

var _ Analyzer = (*GeminiAnalyzer)(nil)
