// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes portfolio tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/portfolio"
)

// ContentFormatURI is the resource URI of the content format contract.
const ContentFormatURI = "folio://content-format"

// Server wraps the MCP server with portfolio tools.
type Server struct {
	mcp    *server.MCPServer
	svc    *portfolio.Service
	syncer *content.Syncer
}

// New creates a new MCP server with all portfolio tools registered.
func New(svc *portfolio.Service, syncer *content.Syncer) *Server {
	s := &Server{svc: svc, syncer: syncer}

	s.mcp = server.NewMCPServer(
		"Folio",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List portfolio projects as served by the site (catalog merged with stored records)."),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("list_certificates",
		mcp.WithDescription("List certificates and education entries as served by the site."),
	), s.listCertificates)

	s.mcp.AddTool(mcp.NewTool("list_messages",
		mcp.WithDescription("List contact form messages, newest first."),
	), s.listMessages)

	s.mcp.AddTool(mcp.NewTool("get_content_contract",
		mcp.WithDescription("Returns the YAML content file format. "+
			"Call this before adding projects to ensure correct structure."),
	), s.getContentContract)

	s.mcp.AddTool(mcp.NewTool("add_project",
		mcp.WithDescription("Add or update a project by writing projects/<slug>.yaml into the content "+
			"directory and syncing it into the store. Records are keyed by link. Read the contract first via "+
			"the get_content_contract tool or the "+ContentFormatURI+" resource."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Project title")),
		mcp.WithString("link", mcp.Required(), mcp.Description("Public URL of the project")),
		mcp.WithString("description", mcp.Description("Short description")),
		mcp.WithString("image", mcp.Description("Preview image URL")),
		mcp.WithString("tags", mcp.Description("Comma-separated technology tags")),
		mcp.WithBoolean("featured", mcp.Description("Show the project in the featured section")),
	), s.addProject)

	s.mcp.AddResource(
		mcp.NewResource(ContentFormatURI, "Content Format Contract",
			mcp.WithResourceDescription("YAML format for project and certificate content files."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContentFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listProjects(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.Projects(ctx))
}

func (s *Server) listCertificates(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.Certificates(ctx))
}

func (s *Server) listMessages(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msgs, err := s.svc.Messages(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(msgs) == 0 {
		return mcp.NewToolResultText("no messages"), nil
	}
	return jsonResult(msgs)
}

func (s *Server) getContentContract(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ContentFormatContract), nil
}

func (s *Server) readContentFormatResource(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ContentFormatURI,
			MIMEType: "text/markdown",
			Text:     ContentFormatContract,
		},
	}, nil
}

func (s *Server) addProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	link, err := req.RequireString("link")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec := catalog.ProjectRecord{Title: &title, Link: &link}
	if v := req.GetString("description", ""); v != "" {
		rec.Description = &v
	}
	if v := req.GetString("image", ""); v != "" {
		rec.Image = &v
	}
	rec.Tags = splitTags(req.GetString("tags", ""))
	if _, ok := req.GetArguments()["featured"]; ok {
		v := req.GetBool("featured", false)
		rec.Featured = &v
	}

	rel, err := s.syncer.WriteProject(ctx, rec)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("written: %s", rel)), nil
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
