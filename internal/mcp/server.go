package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/internal/services"
	apperrors "github.com/mentorsetu/mentorsetu-api/pkg/errors"
	"github.com/mentorsetu/mentorsetu-api/pkg/logger"
	"github.com/mentorsetu/mentorsetu-api/pkg/metrics"
	"go.uber.org/zap"
)

const (
	defaultSearchLimit = 50
	protocolVersion    = "2024-11-05"
)

// Server represents an MCP server instance
type Server struct {
	mentorService services.MentorServiceInterface
	version       string
}

// NewServer creates a new MCP server
func NewServer(mentorService services.MentorServiceInterface, version string) *Server {
	if version == "" {
		version = "1.0.0"
	}
	return &Server{
		mentorService: mentorService,
		version:       version,
	}
}

// HandleRequest processes an MCP JSON-RPC request
func (s *Server) HandleRequest(ctx context.Context, req Request) Response {
	if req.JSONRPC != "2.0" {
		return s.errorResponse(req.ID, InvalidRequest, "Invalid JSON-RPC version")
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolCall(ctx, req)
	default:
		metrics.MCPToolInvocations.WithLabelValues("-", "method_not_found").Inc()
		return s.errorResponse(req.ID, MethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func (s *Server) handleInitialize(req Request) Response {
	logger.Info("MCP initialize request received")

	return Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: InitializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities: Capabilities{
				Tools: map[string]interface{}{},
			},
			ServerInfo: ServerInfo{
				Name:    "mentorsetu-mcp-server",
				Version: s.version,
			},
		},
	}
}

func (s *Server) handleToolsList(req Request) Response {
	tools := []Tool{
		{
			Name:        "search_mentors",
			Description: "Search the mentor directory. Text matches name, title or any expertise tag; category, minimum rating and price bucket narrow the result. Returns mentors in directory order.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"query": {
						Type:        "string",
						Description: "Case-insensitive text matched against name, title and expertise",
					},
					"category": {
						Type:        "string",
						Description: "Exact category, or \"all\"",
					},
					"min_rating": {
						Type:        "number",
						Description: "Minimum rating, for example 4.5",
					},
					"price": {
						Type:        "string",
						Description: "Price bucket: low (< 2500), medium (2500-3499), high (>= 3500)",
						Enum:        []string{"all", "low", "medium", "high"},
						Default:     "all",
					},
					"limit": {
						Type:        "integer",
						Description: "Maximum number of results to return (default: 50)",
						Default:     defaultSearchLimit,
					},
				},
			},
		},
		{
			Name:        "get_mentor_profile",
			Description: "Get the full profile of one mentor including biography, achievements, languages, availability and reviews.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"id": {
						Type:        "string",
						Description: "Mentor ID",
					},
				},
				Required: []string{"id"},
			},
		},
	}

	return Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  ToolsListResult{Tools: tools},
	}
}

func (s *Server) handleToolCall(ctx context.Context, req Request) Response {
	paramsJSON, err := json.Marshal(req.Params)
	if err != nil {
		metrics.MCPToolInvocations.WithLabelValues("-", "invalid_params").Inc()
		return s.errorResponse(req.ID, InvalidParams, "Invalid params format")
	}

	var params ToolCallParams
	if err := json.Unmarshal(paramsJSON, &params); err != nil {
		metrics.MCPToolInvocations.WithLabelValues("-", "invalid_params").Inc()
		return s.errorResponse(req.ID, InvalidParams, "Invalid params structure")
	}

	logger.Info("MCP tool call",
		zap.String("tool", params.Name),
		zap.Any("arguments", params.Arguments),
	)

	var result ToolCallResult
	var toolErr error

	switch params.Name {
	case "search_mentors":
		result, toolErr = s.searchMentors(ctx, params.Arguments)
	case "get_mentor_profile":
		result, toolErr = s.getMentorProfile(ctx, params.Arguments)
	default:
		metrics.MCPToolInvocations.WithLabelValues("-", "tool_not_found").Inc()
		return s.errorResponse(req.ID, MethodNotFound, fmt.Sprintf("Tool not found: %s", params.Name))
	}

	if toolErr != nil {
		errorCode := InternalError
		switch {
		case apperrors.Is(toolErr, apperrors.ErrNotFound):
			errorCode = NotFoundError
		case apperrors.Is(toolErr, apperrors.ErrInvalidInput):
			errorCode = InvalidParams
		default:
			logger.Error("MCP tool execution failed",
				zap.String("tool", params.Name),
				zap.Error(toolErr),
			)
		}

		metrics.MCPToolInvocations.WithLabelValues(params.Name, "error").Inc()
		return s.errorResponse(req.ID, errorCode, toolErr.Error())
	}

	metrics.MCPToolInvocations.WithLabelValues(params.Name, "success").Inc()

	return Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

func (s *Server) errorResponse(id interface{}, code int, message string) Response {
	return Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
		},
	}
}

// decodeArgs re-decodes the loosely typed arguments map into a typed struct
func decodeArgs(args map[string]interface{}, out interface{}) error {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return apperrors.InvalidInputError("arguments", err.Error())
	}
	if err := json.Unmarshal(argsJSON, out); err != nil {
		return apperrors.InvalidInputError("arguments", err.Error())
	}
	return nil
}

func textResult(v interface{}) (ToolCallResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ToolCallResult{}, fmt.Errorf("failed to format result: %w", err)
	}
	return ToolCallResult{Content: []Content{{Type: "text", Text: string(out)}}}, nil
}

func profileLink(id string) string {
	return services.CatalogPath + "/" + id
}

func searchResult(m models.MentorView) MentorSearchResult {
	return MentorSearchResult{
		ID:           m.ID,
		Name:         m.Name,
		Title:        m.Title,
		Company:      m.Company,
		Category:     m.Category,
		Expertise:    m.Expertise,
		Rating:       m.Rating,
		Price:        m.Price,
		PriceDisplay: m.PriceDisplay,
		Link:         profileLink(m.ID),
	}
}

func (s *Server) searchMentors(ctx context.Context, args map[string]interface{}) (ToolCallResult, error) {
	var searchArgs SearchMentorsArgs
	if err := decodeArgs(args, &searchArgs); err != nil {
		return ToolCallResult{}, err
	}
	if searchArgs.Limit <= 0 {
		searchArgs.Limit = defaultSearchLimit
	}

	filter, err := services.ParseMentorFilter(searchArgs.Query, searchArgs.Category, "", searchArgs.Price)
	if err != nil {
		return ToolCallResult{}, err
	}
	filter.MinRating = searchArgs.MinRating

	resp, err := s.mentorService.List(ctx, filter)
	if err != nil {
		return ToolCallResult{}, fmt.Errorf("failed to fetch mentors: %w", err)
	}

	mentors := resp.Mentors
	if len(mentors) > searchArgs.Limit {
		mentors = mentors[:searchArgs.Limit]
	}

	results := make([]MentorSearchResult, 0, len(mentors))
	for _, m := range mentors {
		results = append(results, searchResult(m))
	}
	metrics.MCPResultsReturned.WithLabelValues("search_mentors").Observe(float64(len(results)))

	logger.Info("MCP search_mentors completed",
		zap.Int("results_count", len(results)),
		zap.Any("search_args", searchArgs),
	)

	return textResult(results)
}

func (s *Server) getMentorProfile(ctx context.Context, args map[string]interface{}) (ToolCallResult, error) {
	var profileArgs GetMentorProfileArgs
	if err := decodeArgs(args, &profileArgs); err != nil {
		return ToolCallResult{}, err
	}
	if profileArgs.ID == "" {
		return ToolCallResult{}, apperrors.InvalidInputError("id", "is required")
	}

	profile, err := s.mentorService.Profile(ctx, profileArgs.ID)
	if err != nil {
		return ToolCallResult{}, err
	}

	m := profile.Mentor
	reviews := make([]Review, 0, len(profile.Reviews))
	for _, r := range profile.Reviews {
		reviews = append(reviews, Review{
			StudentName: r.StudentName,
			Rating:      r.Rating,
			Comment:     r.Comment,
			Date:        r.Date,
		})
	}

	result := MentorProfileResult{
		MentorSearchResult: searchResult(m),
		Location:           m.Location,
		Experience:         m.Experience,
		ReviewCount:        m.ReviewCount,
		Bio:                m.Bio,
		FullBio:            m.FullBio,
		Achievements:       m.Achievements,
		Languages:          m.Languages,
		SessionTypes:       m.SessionTypes,
		Availability:       m.Availability,
		AvatarURL:          m.Avatar,
		Reviews:            reviews,
	}
	metrics.MCPResultsReturned.WithLabelValues("get_mentor_profile").Observe(1)

	logger.Info("MCP get_mentor_profile completed", zap.String("mentor_id", m.ID))

	return textResult(result)
}
