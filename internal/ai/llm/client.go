package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
	"golang.org/x/time/rate"
)

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds each attempt
	Timeout time.Duration
	// Retry allows one extra attempt after a transient failure
	Retry             bool
	RequestsPerMinute int
}

// Client talks to an OpenAI-compatible chat completions endpoint
type Client struct {
	client  openai.Client
	model   string
	timeout time.Duration
	retry   bool
	limiter *rate.Limiter
}

var _ Completer = (*Client)(nil)

func NewClient(opts Options) *Client {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 120
	}

	return &Client{
		client:  openai.NewClient(reqOpts...),
		model:   opts.Model,
		timeout: opts.Timeout,
		retry:   opts.Retry,
		limiter: perMinute(opts.RequestsPerMinute),
	}
}

// Complete sends the request and returns the first choice's content.
// Failures are reported as ErrUpstreamUnavailable.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	attempts := 1
	if c.retry {
		attempts = 2
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", ErrRegistry.NewWithCause(ErrUpstreamUnavailable, err)
		}

		content, err := c.complete(ctx, req)
		if err == nil {
			return content, nil
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) {
			break
		}
		if attempt < attempts {
			logx.Warnf("llm %s attempt %d failed, retrying: %v", req.Operation, attempt, err)
		}
	}

	return "", ErrRegistry.NewWithCause(ErrUpstreamUnavailable, lastErr).
		WithDetail("operation", req.Operation)
}

func (c *Client) complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		}
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no choices in completion")
	}
	return completion.Choices[0].Message.Content, nil
}

// retryable is true for transport failures and 408/429/5xx answers
func retryable(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusRequestTimeout,
			apiErr.StatusCode == http.StatusTooManyRequests,
			apiErr.StatusCode >= http.StatusInternalServerError:
			return true
		default:
			return false
		}
	}
	return true
}

// perMinute allows rpm calls a minute with bursts of up to half of that
func perMinute(rpm int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), max(rpm/2, 1))
}
