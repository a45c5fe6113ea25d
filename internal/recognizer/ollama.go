package recognizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/ollama/ollama/api"

	"github.com/bimmerbailey/sanictl/internal/detect"
)

// OllamaConfig configures the Ollama-backed adapter.
type OllamaConfig struct {
	// Host is the Ollama API endpoint (e.g. "http://localhost:11434"). Empty
	// means respect OLLAMA_HOST, falling back to the client default.
	Host string

	// Model is the sequence-labeling-capable model to prompt, e.g. "llama3.2".
	Model string

	// Timeout bounds a single LabelText call. Zero means 20s.
	Timeout time.Duration
}

// ErrRecognizerUnavailable is returned by NewOllama when the adapter cannot be
// constructed and by LabelText when a call fails outright; both are
// non-fatal to the sanitization core (spec §4.2, §7).
var ErrRecognizerUnavailable = errors.New("entity recognizer is not reachable")

// Ollama is a detect.Recognizer backed by a local Ollama chat model. It is
// constructed once and shared across concurrent sanitize calls (spec §5);
// Availability is re-checked on every LabelText call rather than cached, so
// a model that comes up mid-session is picked up without restarting.
type Ollama struct {
	client  *api.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewOllama builds an Ollama-backed recognizer adapter. It never blocks on
// network I/O; reachability is determined lazily, per call.
func NewOllama(cfg OllamaConfig, logger *slog.Logger) (*Ollama, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecognizerUnavailable, err)
	}

	if cfg.Host != "" {
		parsed, err := url.Parse(cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama host: %w", err)
		}
		client = api.NewClient(parsed, http.DefaultClient)
	}

	model := cfg.Model
	if model == "" {
		model = "llama3.2"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &Ollama{client: client, model: model, timeout: timeout, logger: logger}, nil
}

// Available reports whether the Ollama daemon responds to a heartbeat within
// a short bound. A false result degrades the caller to regex-only detection.
func (o *Ollama) Available() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return o.client.Heartbeat(ctx) == nil
}

func (o *Ollama) CanonicalLabels() map[string]struct{} {
	return canonicalLabelSet()
}

const labelPrompt = `Identify personal names, organizations, and locations in the text below.
Return ONLY a JSON array, no explanation. Each element must have:
- "text": the exact substring found
- "label": one of PER, ORG, LOC
- "confidence": a float between 0.0 and 1.0

Text:
%s

Example response: [{"text":"Jane Doe","label":"PER","confidence":0.92}]`

// LabelText asks the model for entity spans in text and locates each
// returned substring's first occurrence to produce byte offsets (spec
// §4.2). A span whose text cannot be found verbatim in text is dropped
// rather than guessed at.
func (o *Ollama) LabelText(text string) ([]detect.Span, error) {
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	prompt := fmt.Sprintf(labelPrompt, text)
	stream := false

	var content strings.Builder
	req := &api.ChatRequest{
		Model:    o.model,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
	}
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		o.logger.Warn("recognizer call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrRecognizerUnavailable, err)
	}

	return parseDetections(content.String(), text)
}

// parseDetections extracts the JSON array the model was asked to return
// (tolerating leading/trailing prose the model ignores instructions and
// adds) and resolves each detection's text back to byte offsets in source.
func parseDetections(raw, source string) ([]detect.Span, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("%w: model response contained no JSON array", ErrRecognizerUnavailable)
	}
	arr := []byte(raw[start : end+1])

	var spans []detect.Span
	_, err := jsonparser.ArrayEach(arr, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if err != nil || dataType != jsonparser.Object {
			return
		}
		text, terr := jsonparser.GetString(value, "text")
		rawLabel, lerr := jsonparser.GetString(value, "label")
		confidence, cerr := jsonparser.GetFloat(value, "confidence")
		if terr != nil || lerr != nil || text == "" {
			return
		}
		if cerr != nil {
			confidence = 0
		}

		label, ok := normalizeLabel(strings.ToUpper(strings.TrimSpace(rawLabel)))
		if !ok {
			return
		}

		idx := strings.Index(source, text)
		if idx == -1 {
			return
		}

		spans = append(spans, detect.Span{
			Label:      label,
			Start:      idx,
			End:        idx + len(text),
			Text:       text,
			Confidence: confidence,
			Source:     detect.SourceModel,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecognizerUnavailable, err)
	}

	return spans, nil
}
