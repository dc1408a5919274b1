package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
)

// SystemPrompt instructs the model to answer with the summary object
const SystemPrompt = "You are a senior engineer analyzing a GitHub repository. " +
	"Given the repo contents below, return a JSON object with exactly three keys:\n\n" +
	`  "summary"       - 2-5 sentence description of what the project does (use **bold** for the project name)` + "\n" +
	`  "technologies"  - list of main languages, frameworks, and tools (3-10 items, ordered by importance)` + "\n" +
	`  "structure"     - 2-4 sentence description of the directory layout` + "\n\n" +
	"Rules:\n" +
	"- Return ONLY raw JSON. No markdown fences, no commentary.\n" +
	"- Be factual. Only mention what you can confirm from the files.\n" +
	"- If unsure, omit rather than guess."

const repairPrompt = "Your previous response was invalid JSON. " +
	"Return ONLY valid JSON that matches the required schema. " +
	"Do not include markdown or extra text.\n\n" +
	"Bad response:\n"

// rawPreview bounds how much of an unparseable reply goes into errors
const rawPreview = 200

var jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// Summary is the model's description of a repository
type Summary struct {
	Summary      string   `json:"summary"`
	Technologies []string `json:"technologies"`
	Structure    string   `json:"structure"`

	// Repaired is set when the first reply had to be re-requested
	Repaired bool `json:"-"`
}

// Summarizer turns an assembled repository context into a Summary
type Summarizer struct {
	brain  Brain
	logger *slog.Logger
}

// NewSummarizer creates a summarizer over brain
func NewSummarizer(brain Brain, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Summarizer{brain: brain, logger: logger}
}

// Summarize asks the model to describe the repository. An unparseable
// answer is sent back once with a request to fix it.
func (s *Summarizer) Summarize(ctx context.Context, repoContext string) (*Summary, error) {
	prompt := "Analyze this repository:\n\n" + repoContext + "\n\nReturn JSON only."
	s.logger.Info("Sending prompt", "chars", utf8.RuneCountInString(prompt), "model", s.brain.Model())

	raw, err := s.ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	s.logger.Info("LLM replied", "chars", utf8.RuneCountInString(raw))

	summary, err := ParseSummary(raw)
	if err == nil {
		return summary, nil
	}

	s.logger.Warn("LLM returned invalid JSON; requesting repair", "error", err)
	raw, err = s.ask(ctx, repairPrompt+raw)
	if err != nil {
		return nil, err
	}
	s.logger.Info("LLM repair replied", "chars", utf8.RuneCountInString(raw))

	summary, err = ParseSummary(raw)
	if err != nil {
		return nil, errors.LLMError("LLM error: "+err.Error(), nil)
	}
	summary.Repaired = true
	return summary, nil
}

func (s *Summarizer) ask(ctx context.Context, user string) (string, error) {
	return s.brain.Chat(ctx, []Message{
		{Role: "system", Content: SystemPrompt},
		{Role: "user", Content: user},
	})
}

// ParseSummary extracts a Summary from a model reply. It tolerates a
// surrounding code fence or prose around a single JSON object, and coerces
// field types: non-string text fields are stringified and a scalar
// technologies value becomes a one-element list.
func ParseSummary(raw string) (*Summary, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(stripFence(raw)), &data); err != nil {
		m := jsonObjectPattern.FindString(raw)
		if m == "" {
			return nil, fmt.Errorf("LLM returned unparseable response: %s", preview(raw))
		}
		if err := json.Unmarshal([]byte(m), &data); err != nil {
			return nil, fmt.Errorf("LLM returned unparseable response: %w", err)
		}
	}
	if data == nil {
		return nil, fmt.Errorf("LLM returned unparseable response: %s", preview(raw))
	}

	out := &Summary{
		Summary:      stringify(data["summary"]),
		Structure:    stringify(data["structure"]),
		Technologies: []string{},
	}

	switch tech := data["technologies"].(type) {
	case nil:
	case []any:
		for _, t := range tech {
			out.Technologies = append(out.Technologies, stringify(t))
		}
	default:
		out.Technologies = []string{stringify(tech)}
	}

	if out.Summary == "" {
		return nil, fmt.Errorf("LLM produced empty summary")
	}
	return out, nil
}

// stripFence removes a markdown code fence wrapped around the reply
func stripFence(raw string) string {
	t := strings.TrimSpace(raw)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[i+1:]
	} else {
		t = t[3:]
	}
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= rawPreview {
		return s
	}
	return string([]rune(s)[:rawPreview])
}
