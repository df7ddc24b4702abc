// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package mcptools exposes endpoint listing, rule mapping and class
// rendering as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/dacolabs/formrequest/internal/config"
	"github.com/dacolabs/formrequest/internal/emit"
	"github.com/dacolabs/formrequest/internal/generate"
	"github.com/dacolabs/formrequest/internal/logging"
	"github.com/dacolabs/formrequest/internal/oas"
)

// NewServer creates an MCP server with every tool registered.
func NewServer(version string, cfg *config.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"formrequest",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions("formrequest turns OpenAPI request schemas into Laravel FormRequest validation rules. Use list_endpoints to see which operations have a request schema, map_rules to inspect the rules of one operation, and render_request to get the generated PHP class."),
	)
	Register(s, cfg)
	return s
}

// Register adds the tools to s. cfg supplies namespace and class defaults.
func Register(s *server.MCPServer, cfg *config.Config) {
	specArgs := []mcp.ToolOption{
		mcp.WithString("spec_path", mcp.Description("Path to an OpenAPI 3.0/3.1 document (JSON or YAML)")),
		mcp.WithString("spec", mcp.Description("OpenAPI document content, used when spec_path is omitted")),
		mcp.WithString("format", mcp.Description("Document format: json or yaml (defaults to the file extension)")),
		mcp.WithBoolean("include_parameters", mcp.Description("Also validate path and query parameters")),
	}

	s.AddTool(
		mcp.NewTool("list_endpoints", append([]mcp.ToolOption{
			mcp.WithDescription("List the operations of an OpenAPI document with their derived FormRequest class names"),
		}, specArgs...)...),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEndpoints(ctx, req)
		},
	)

	s.AddTool(
		mcp.NewTool("map_rules", append([]mcp.ToolOption{
			mcp.WithDescription("Map the request schema of one operation to ordered Laravel validation rules"),
			mcp.WithString("operation", mcp.Required(), mcp.Description("operationId, or METHOD /path")),
			mcp.WithString("output", mcp.Description("Output encoding: json (default) or yaml")),
		}, specArgs...)...),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMapRules(ctx, req, cfg)
		},
	)

	s.AddTool(
		mcp.NewTool("render_request", append([]mcp.ToolOption{
			mcp.WithDescription("Render the FormRequest PHP class for one operation"),
			mcp.WithString("operation", mcp.Required(), mcp.Description("operationId, or METHOD /path")),
			mcp.WithString("namespace", mcp.Description(`PHP namespace (defaults to App\Http\Requests)`)),
		}, specArgs...)...),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRenderRequest(ctx, req, cfg)
		},
	)
}

type endpointInfo struct {
	ID         string   `json:"id"`
	Method     string   `json:"method"`
	Path       string   `json:"path"`
	ClassName  string   `json:"class_name"`
	Summary    string   `json:"summary,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Deprecated bool     `json:"deprecated,omitempty"`
	Generated  bool     `json:"generated"`
}

type endpointList struct {
	Title      string         `json:"title"`
	Endpoints  []endpointInfo `json:"endpoints"`
	Schemas    []string       `json:"schemas,omitempty"`
	Duplicates [][]string     `json:"duplicate_signatures,omitempty"`
	Warnings   []string       `json:"warnings,omitempty"`
}

func handleListEndpoints(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spec, err := loadSpec(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	includeParams := mcp.ParseBoolean(req, "include_parameters", false)
	generated := make(map[*oas.Endpoint]bool)
	for _, ep := range generate.Candidates(spec, includeParams) {
		generated[ep] = true
	}

	out := endpointList{
		Title:     spec.Info.Title,
		Schemas:   spec.Schemas(),
		Warnings:  spec.Warnings,
		Endpoints: []endpointInfo{},
	}
	for _, ep := range spec.Endpoints {
		out.Endpoints = append(out.Endpoints, endpointInfo{
			ID:         ep.ID(),
			Method:     ep.Method,
			Path:       ep.Path,
			ClassName:  ep.ClassName(),
			Summary:    ep.Summary,
			Tags:       ep.Tags,
			Deprecated: ep.Deprecated,
			Generated:  generated[ep],
		})
	}
	for _, group := range spec.Duplicates() {
		ids := make([]string, len(group))
		for i, ep := range group {
			ids[i] = ep.ID()
		}
		out.Duplicates = append(out.Duplicates, ids)
	}

	logging.FromContext(ctx).Debug().Int("endpoints", len(out.Endpoints)).Msg("listed endpoints")
	data, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleMapRules(ctx context.Context, req mcp.CallToolRequest, cfg *config.Config) (*mcp.CallToolResult, error) {
	spec, ep, err := loadEndpoint(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	_, table, err := generate.MapEndpoint(spec, ep, options(req, cfg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", ep.ID(), err)), nil
	}
	logging.FromContext(ctx).Debug().Str("endpoint", ep.ID()).Int("rules", table.Len()).Msg("mapped rules")

	var data []byte
	switch strings.ToLower(mcp.ParseString(req, "output", "json")) {
	case "yaml", "yml":
		data, err = yaml.Marshal(table)
	case "json":
		data, err = json.MarshalIndent(table, "", "  ")
	default:
		return mcp.NewToolResultError("output must be json or yaml"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleRenderRequest(ctx context.Context, req mcp.CallToolRequest, cfg *config.Config) (*mcp.CallToolResult, error) {
	spec, ep, err := loadEndpoint(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := options(req, cfg)
	if ns := mcp.ParseString(req, "namespace", ""); ns != "" {
		opts.Namespace = ns
	}

	class, err := generate.BuildClass(spec, ep, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", ep.ID(), err)), nil
	}
	src, err := class.Render()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	logging.FromContext(ctx).Debug().Str("endpoint", ep.ID()).Str("class", class.FQCN()).Msg("rendered class")
	return mcp.NewToolResultText(string(src)), nil
}

func options(req mcp.CallToolRequest, cfg *config.Config) generate.Options {
	return generate.Options{
		Namespace: cfg.Namespace,
		Class: emit.Options{
			BaseClass: cfg.BaseClass,
			Authorize: cfg.Authorize,
		},
		IncludeParameters: mcp.ParseBoolean(req, "include_parameters", cfg.IncludeParameters),
	}
}

func loadSpec(req mcp.CallToolRequest) (*oas.Spec, error) {
	format, err := oas.ParseFormat(mcp.ParseString(req, "format", ""))
	if err != nil {
		return nil, err
	}

	var doc *oas.Document
	if path := mcp.ParseString(req, "spec_path", ""); path != "" {
		doc, err = oas.Open(path, format)
	} else if content := mcp.ParseString(req, "spec", ""); content != "" {
		doc, err = oas.Decode([]byte(content), format)
	} else {
		return nil, errors.New("either spec_path or spec is required")
	}
	if err != nil {
		return nil, err
	}
	return oas.Parse(doc)
}

func loadEndpoint(req mcp.CallToolRequest) (*oas.Spec, *oas.Endpoint, error) {
	id := mcp.ParseString(req, "operation", "")
	if id == "" {
		return nil, nil, errors.New("operation is required")
	}
	spec, err := loadSpec(req)
	if err != nil {
		return nil, nil, err
	}
	ep, ok := spec.Endpoint(id)
	if !ok {
		return nil, nil, fmt.Errorf("operation %q not found", id)
	}
	return spec, ep, nil
}
