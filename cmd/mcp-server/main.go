package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/patrickwarner/smartdocs/internal/environment"
	"github.com/patrickwarner/smartdocs/internal/models"
	"github.com/patrickwarner/smartdocs/internal/observability"
	"github.com/patrickwarner/smartdocs/internal/personalize"
)

type DetectEnvironmentInput struct {
	UserAgent string `json:"user_agent"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
}

type PersonalizeDocumentInput struct {
	HTML      string `json:"html"`
	UserAgent string `json:"user_agent"`
	Policy    string `json:"policy,omitempty"` // indicator, silent, demo
	Country   string `json:"country,omitempty"`
}

type PersonalizeDocumentOutput struct {
	OS     string `json:"os"`
	Policy string `json:"policy"`
	HTML   string `json:"html"`
}

// DocsServer exposes detection and personalization as MCP tools.
type DocsServer struct {
	logger *zap.Logger
}

func environmentFor(userAgent string, loc models.Location) models.Environment {
	return models.Environment{
		OS:        environment.ClassifyOS(userAgent),
		Browser:   environment.ClassifyBrowser(userAgent),
		Location:  loc,
		UserAgent: userAgent,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// DetectEnvironment classifies a User-Agent the same way the HTTP server does.
func (s *DocsServer) DetectEnvironment(ctx context.Context, req *mcp.CallToolRequest, input DetectEnvironmentInput) (*mcp.CallToolResult, models.EnvironmentDetails, error) {
	env := environmentFor(input.UserAgent, models.Location{
		Country: orDefault(input.Country, "unknown"),
		City:    orDefault(input.City, "unknown"),
	})

	s.logger.Info("detect_environment",
		zap.String("os", string(env.OS)),
		zap.String("browser", string(env.Browser)))

	return nil, models.EnvironmentDetails{
		EnvironmentReport: env.Report(),
		Profile:           environment.Describe(env.OS),
		Agent:             environment.Inspect(env.UserAgent),
	}, nil
}

// PersonalizeDocument rewrites caller-supplied HTML for the given User-Agent.
func (s *DocsServer) PersonalizeDocument(ctx context.Context, req *mcp.CallToolRequest, input PersonalizeDocumentInput) (*mcp.CallToolResult, PersonalizeDocumentOutput, error) {
	policy, err := personalize.ParsePolicy(input.Policy)
	if err != nil {
		return nil, PersonalizeDocumentOutput{}, err
	}

	env := environmentFor(input.UserAgent, models.Location{
		Country: orDefault(input.Country, "US"),
		City:    "unknown",
	})

	var out strings.Builder
	if err := personalize.Render(&out, strings.NewReader(input.HTML), policy, env); err != nil {
		return nil, PersonalizeDocumentOutput{}, fmt.Errorf("personalize document: %w", err)
	}

	s.logger.Info("personalize_document",
		zap.String("policy", policy.Name),
		zap.String("os", string(env.OS)),
		zap.Int("input_bytes", len(input.HTML)),
		zap.Int("output_bytes", out.Len()))

	return nil, PersonalizeDocumentOutput{
		OS:     string(env.OS),
		Policy: policy.Name,
		HTML:   out.String(),
	}, nil
}

func newMCPServer(docs *DocsServer) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "smartdocs",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_environment",
		Description: "Classify a User-Agent into OS and browser and describe the OS toolchain",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_agent": map[string]interface{}{
					"type":        "string",
					"description": "Raw User-Agent header value",
				},
				"country": map[string]interface{}{
					"type":        "string",
					"description": "Country code to report (optional, defaults to unknown)",
				},
				"city": map[string]interface{}{
					"type":        "string",
					"description": "City to report (optional, defaults to unknown)",
				},
			},
			"required": []string{"user_agent"},
		},
	}, docs.DetectEnvironment)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "personalize_document",
		Description: "Rewrite an HTML document so only the sections for the detected OS are visible",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"html": map[string]interface{}{
					"type":        "string",
					"description": "HTML document to personalize",
				},
				"user_agent": map[string]interface{}{
					"type":        "string",
					"description": "Raw User-Agent header value",
				},
				"policy": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"indicator", "silent", "demo"},
					"description": "Personalization policy (optional, defaults to indicator)",
				},
				"country": map[string]interface{}{
					"type":        "string",
					"description": "Country code for the user-country meta tag (optional, defaults to US)",
				},
			},
			"required": []string{"html", "user_agent"},
		},
	}, docs.PersonalizeDocument)

	return server
}

func main() {
	// stdout carries the MCP protocol, so logs go to stderr.
	logger, err := observability.InitStderrLogger("smartdocs-mcp")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	server := newMCPServer(&DocsServer{logger: logger})

	logger.Info("MCP Server running via stdio")
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
