// Package anthropic wraps the Anthropic messages API as an opaque
// text-producing advisor. It reads a snapshot and returns free-form insight;
// its absence or failure must never affect stock or order state.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/labeltracker/internal/domain/models"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 1024
)

// Client defines the interface for inventory insight generation.
type Client interface {
	InventoryInsights(ctx context.Context, schema models.DatabaseSchema) (string, error)
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

// Message is one turn of the conversation sent to the API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

const systemPrompt = `You are an AI business consultant for LabelTracker, a label inventory and logistics manager.
Analyze the inventory and sales data the user provides and reply with a concise (2-3 sentences)
strategic insight about low stock, revenue trends, or restocking priorities. Reply with plain text only.`

// InventoryInsights sends the products and orders of the snapshot to the model
// and returns its advisory text.
func (c *anthropicClient) InventoryInsights(ctx context.Context, schema models.DatabaseSchema) (string, error) {
	products, err := json.Marshal(schema.Products)
	if err != nil {
		return "", fmt.Errorf("encode products: %w", err)
	}
	orders, err := json.Marshal(schema.Orders)
	if err != nil {
		return "", fmt.Errorf("encode orders: %w", err)
	}

	prompt := fmt.Sprintf("Products: %s\nOrders: %s", products, orders)

	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  []Message{{Role: "user", Content: prompt}},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)

	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	return respBody.Content[0].Text, nil
}
