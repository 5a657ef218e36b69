package extract

import (
	"context"
	"os"
	"sync"

	"google.golang.org/genai"

	"github.com/agentstation/docfold/pkg/constants"
	"github.com/agentstation/docfold/pkg/errors"
	"github.com/agentstation/docfold/pkg/logging"
	"github.com/agentstation/docfold/pkg/schema"
)

// Google extracts document fields through the Gemini API. The genai client
// is created lazily on first use and reused across calls.
type Google struct {
	schema *schema.Schema
	model  string
	apiKey string

	genaiClient *genai.Client
	mu          sync.Mutex
}

// GoogleOption configures a Google extractor.
type GoogleOption func(*Google)

// WithModel overrides the default Gemini model.
func WithModel(model string) GoogleOption {
	return func(g *Google) {
		if model != "" {
			g.model = model
		}
	}
}

// WithAPIKey sets the API key explicitly instead of reading the
// environment.
func WithAPIKey(key string) GoogleOption {
	return func(g *Google) {
		g.apiKey = key
	}
}

// NewGoogle creates a Gemini-backed extractor for the given schema. The
// API key comes from GEMINI_API_KEY (or GOOGLE_API_KEY) unless WithAPIKey
// is used.
func NewGoogle(s *schema.Schema, opts ...GoogleOption) (*Google, error) {
	if s == nil {
		return nil, errors.ErrSchemaRequired
	}

	g := &Google{
		schema: s,
		model:  constants.DefaultGeminiModel,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.apiKey == "" {
		g.apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if g.apiKey == "" {
		g.apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if g.apiKey == "" {
		return nil, errors.ErrAPIKeyRequired
	}

	return g, nil
}

// Extract sends the document to Gemini and parses the response into a
// capture record. A model or parse failure is returned as a failed Result
// so the caller can append it as a failed capture; only transport-level
// problems surface as errors.
func (g *Google) Extract(ctx context.Context, doc Document) (*Result, error) {
	logger := logging.FromContext(ctx)

	client, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ExtractionTimeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(doc.Data, doc.MIMEType),
			genai.NewPartFromText(extractionPrompt),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.2),
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.Canceled) {
				return nil, errors.ErrCanceled
			}
			return nil, errors.ErrTimeout
		}
		logger.Warn().
			Err(err).
			Str("label", doc.Label).
			Msg("Gemini request failed")
		return &Result{Err: errors.WrapExtraction("gemini", 0, err).Error()}, nil
	}

	record, summary, err := ParseResponse(g.schema, resp.Text())
	if err != nil {
		logger.Warn().
			Err(err).
			Str("label", doc.Label).
			Msg("Gemini response unparseable")
		return &Result{Err: err.Error()}, nil
	}

	logger.Debug().
		Str("label", doc.Label).
		Int("fields", len(record)).
		Msg("Extracted document fields")

	return &Result{Record: record, Summary: summary}, nil
}

func (g *Google) client(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.genaiClient != nil {
		return g.genaiClient, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  g.apiKey,
	})
	if err != nil {
		return nil, err
	}

	g.genaiClient = client
	return client, nil
}
