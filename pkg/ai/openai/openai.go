// Package openai implements ai.AnswerClient against any OpenAI-compatible
// chat completion endpoint. Pointing ChatURL at a compatible provider
// (Groq, a local gateway, ...) works unchanged.
package openai

import (
	"sync"

	"pomelo/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// AnswerOpenAIClient is the OpenAI-backed generation client.
//
// An AnswerOpenAIClient should be created using NewAnswerOpenAIClient.
type AnswerOpenAIClient struct {
	chatModel string
	chatURL   string
	chatKey   string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewAnswerOpenAIClientParams configures an AnswerOpenAIClient.
//
// ChatModel names the completion model. ChatURL overrides the API base URL
// for OpenAI-compatible providers; leave it empty for api.openai.com.
// Without a ChatKey the client is created but unusable (Available reports
// false), which callers surface as a disabled generation stage rather than
// an error.
type NewAnswerOpenAIClientParams struct {
	ChatModel string
	ChatURL   string
	ChatKey   string
}

// NewAnswerOpenAIClient creates a generation client with the provided
// parameters.
//
// Example:
//
//	client := openai.NewAnswerOpenAIClient(openai.NewAnswerOpenAIClientParams{
//		ChatModel: "llama-3.1-8b-instant",
//		ChatURL:   "https://api.groq.com/openai/v1",
//		ChatKey:   os.Getenv("AI_CHAT_KEY"),
//	})
func NewAnswerOpenAIClient(params NewAnswerOpenAIClientParams) *AnswerOpenAIClient {
	return &AnswerOpenAIClient{
		chatModel: params.ChatModel,
		chatURL:   params.ChatURL,
		chatKey:   params.ChatKey,

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey),
	}
}

// Available reports whether the client holds a usable API connection.
func (c *AnswerOpenAIClient) Available() bool {
	return c.ChatClient != nil
}

func newOpenaiClient(baseURL string, apiKey string) *openai.Client {
	if apiKey == "" {
		return nil
	}

	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)
	return &client
}
