package generator

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/RoriSQL/internal/backend"
)

const DefaultModel = "gpt-4o-mini"

var (
	fencedSQLRegex = regexp.MustCompile("(?s)```sql(.*?)```")
	selectRegex    = regexp.MustCompile(`(?is)(SELECT\s.*?);?\s*$`)
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// Schema is passed to the model verbatim as database context
	Schema string
	Logger *slog.Logger
}

// OpenAIGenerator asks an OpenAI-compatible chat model for SQL. It never executes the
// query, so every successful response is sql-only.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	schema string
	logger *slog.Logger
}

func NewOpenAIGenerator(cfg Config) (*OpenAIGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}

	clientConfig := openai.DefaultConfig(strings.TrimSpace(cfg.APIKey))
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		schema: cfg.Schema,
		logger: logger,
	}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, question string) (*backend.Response, error) {
	if err := backend.Validate(question); err != nil {
		return nil, err
	}

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(question, g.schema)},
		},
		Temperature: 0.3,
		MaxTokens:   1000,
		TopP:        1.0,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		g.logger.Warn("chat completion failed", "model", g.model, "error", err)
		return nil, &backend.TransportError{Op: "chat completion", Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &backend.TransportError{Op: "chat completion", Err: fmt.Errorf("empty choices")}
	}

	sql := ExtractSQL(resp.Choices[0].Message.Content)
	if sql == "" {
		return nil, &backend.ServiceError{Message: "model returned empty SQL"}
	}
	g.logger.Debug("generated sql", "model", g.model, "tokens", resp.Usage.TotalTokens)

	return &backend.Response{SQL: sql}, nil
}

func BuildPrompt(question, schema string) string {
	var b strings.Builder
	b.WriteString("### Task\n")
	fmt.Fprintf(&b, "Generate a SQL query to answer [QUESTION]%s[/QUESTION]\n", question)
	if strings.TrimSpace(schema) != "" {
		b.WriteString("\n### Database Schema\n")
		b.WriteString("This query will run on a database whose schema is represented in this string:\n")
		b.WriteString(strings.TrimSpace(schema))
		b.WriteString("\n")
	}
	b.WriteString("Return only the sql query without explanation to run it directly.\n")
	return b.String()
}

// ExtractSQL pulls the query out of a model answer: a fenced sql block first, then a
// trailing SELECT statement, then the whole answer.
func ExtractSQL(content string) string {
	if m := fencedSQLRegex.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := selectRegex.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(content)
}
