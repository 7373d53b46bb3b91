// Package ai calls Gemini for the drafting assistant: proposal execution
// plans and verification-document summaries. Generation failures are
// returned to the caller; they never gate the proposal state machine.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

type Client struct {
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// ProposalPlanInput describes the proposal being drafted.
type ProposalPlanInput struct {
	DisasterName string `json:"disaster_name"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Amount       int64  `json:"amount"`
	Timeline     string `json:"timeline"`
}

// GenerateProposalPlan drafts a detailed execution plan for a relief
// proposal.
func (c *Client) GenerateProposalPlan(ctx context.Context, in ProposalPlanInput) (string, error) {
	prompt := fmt.Sprintf(`You are an expert NGO coordinator drafting a funding proposal. Write a detailed execution plan based on the following information.

The plan should be professional, actionable, and instill confidence in potential donors. Break it down into sections: "Objective", "Execution Strategy", "Budget Allocation", "Impact Measurement".

Disaster: %s
Proposal Title: %s
Category: %s
Requested Amount: $%d
Timeline: %s

Generate a detailed plan based on these inputs. If the category is "Food", mention sourcing, logistics, and distribution methods.`,
		in.DisasterName, in.Title, in.Category, in.Amount, in.Timeline)

	return c.generate(ctx, prompt)
}

// VerificationInput describes the artifacts submitted as delivery proof.
type VerificationInput struct {
	Photos      []string `json:"photos"`
	Receipts    []string `json:"receipts"`
	GPSLocation string   `json:"gps_location"`
	Notes       string   `json:"notes"`
}

// SummarizeVerification condenses delivery-proof artifacts into a short
// summary a validator can review quickly.
func (c *Client) SummarizeVerification(ctx context.Context, in VerificationInput) (string, error) {
	prompt := fmt.Sprintf(`You are verifying an aid delivery for a disaster-relief DAO. Summarize the submitted verification documents into a concise paragraph a validator can review quickly. State what was delivered, where, and whether the evidence looks consistent.

Photos submitted: %d
Receipts submitted: %d
GPS location: %s
Delivery notes: %s`,
		len(in.Photos), len(in.Receipts), in.GPSLocation, in.Notes)

	return c.generate(ctx, prompt)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.APIKey == "" {
		return "", errors.New("gemini: api key not configured")
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", geminiEndpoint, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: status %d", resp.StatusCode)
	}

	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("gemini: bad response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}

	text := out.Candidates[0].Content.Parts[0].Text
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "`")
	text = strings.TrimSpace(text)
	return text, nil
}
