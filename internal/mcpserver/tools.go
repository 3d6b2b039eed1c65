// Package mcpserver exposes the moving-request operations as MCP tools so an
// external LLM runtime can look up, create, and update records during a
// conversation. Tool results are the same user-facing strings the voice
// flow speaks; internal failures surface as corrective messages, never as
// protocol errors that would end the session.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vanlineshq/moveline/internal/request"
	"github.com/vanlineshq/moveline/internal/store"
)

type Tools struct {
	store            *store.Store
	logger           *slog.Logger
	currentRequestID string
}

// New binds the tool set to a store and mints the session's request id.
func New(st *store.Store, logger *slog.Logger) *Tools {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tools{
		store:            st,
		logger:           logger,
		currentRequestID: request.NewRequestID(),
	}
	t.logger.Info("initialized tool session", slog.String("request_id", t.currentRequestID))
	return t
}

// CurrentRequestID returns the id bound to this tool session.
func (t *Tools) CurrentRequestID() string {
	return t.currentRequestID
}

// Register adds every tool to the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("lookup_moving_request",
		mcp.WithDescription("Look up a moving request by its 6-digit request ID."),
		mcp.WithString("request_id",
			mcp.Required(),
			mcp.Description("The ID of the moving request to look up"),
		),
	), t.LookupMovingRequest)

	s.AddTool(mcp.NewTool("get_moving_request_details",
		mcp.WithDescription("Get the details of the current session's moving request."),
	), t.GetMovingRequestDetails)

	s.AddTool(recordTool("create_moving_request",
		"Create a new moving request for the current session.", false), t.CreateMovingRequest)

	s.AddTool(recordTool("update_moving_request",
		"Update an existing moving request. Every field must be supplied.", true), t.UpdateMovingRequest)

	s.AddTool(mcp.NewTool("get_additional_details",
		mcp.WithDescription("Get details not shown in the default summary: phone_type, building_type, or car_details."),
		mcp.WithString("request_id",
			mcp.Required(),
			mcp.Description("The ID of the moving request"),
		),
		mcp.WithString("field",
			mcp.Required(),
			mcp.Description("The field to get details for (phone_type, building_type, car_details)"),
		),
	), t.GetAdditionalDetails)
}

// recordTool builds the shared field schema for create and update.
func recordTool(name, description string, withID bool) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(description),
	}
	if withID {
		opts = append(opts, mcp.WithString("request_id",
			mcp.Required(),
			mcp.Description("The ID of the moving request to update"),
		))
	}
	opts = append(opts,
		mcp.WithString("customer_name", mcp.Required(), mcp.Description("The name of the customer")),
		mcp.WithString("email", mcp.Required(), mcp.Description("The email of the customer")),
		mcp.WithString("phone_number", mcp.Required(), mcp.Description("The phone number of the customer")),
		mcp.WithString("phone_type", mcp.Required(), mcp.Description("The type of phone (cell, home, or work)")),
		mcp.WithString("from_address", mcp.Required(), mcp.Description("The address to move from")),
		mcp.WithString("from_building_type", mcp.Required(), mcp.Description("The type of building (house or apartment)")),
		mcp.WithNumber("from_bedrooms", mcp.Required(), mcp.Description("The number of bedrooms")),
		mcp.WithString("to_address", mcp.Required(), mcp.Description("The address to move to")),
		mcp.WithString("move_date", mcp.Required(), mcp.Description("The date of the move")),
		mcp.WithBoolean("flexible_date", mcp.Required(), mcp.Description("Whether the move date is flexible")),
		mcp.WithBoolean("assist_car", mcp.Required(), mcp.Description("Whether car transportation is needed")),
		mcp.WithString("car_year", mcp.Description("The year of the car (if car transportation is needed)")),
		mcp.WithString("car_make", mcp.Description("The make of the car (if car transportation is needed)")),
		mcp.WithString("car_model", mcp.Description("The model of the car (if car transportation is needed)")),
	)
	return mcp.NewTool(name, opts...)
}

func (t *Tools) LookupMovingRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID, err := req.RequireString("request_id")
	if err != nil {
		return mcp.NewToolResultError("request_id is required"), nil
	}
	t.logger.Info("lookup moving request", slog.String("request_id", requestID))
	return mcp.NewToolResultText(t.summary(requestID)), nil
}

func (t *Tools) GetMovingRequestDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.logger.Info("get moving request details", slog.String("request_id", t.currentRequestID))
	return mcp.NewToolResultText(t.summary(t.currentRequestID)), nil
}

func (t *Tools) CreateMovingRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, msg := recordFromArgs(req)
	if msg != "" {
		return mcp.NewToolResultError(msg), nil
	}
	rec.RequestID = t.currentRequestID

	created, err := t.store.Create(rec)
	if err != nil {
		return mcp.NewToolResultText(writeFailureMessage("creating", err)), nil
	}
	t.logger.Info("created moving request", slog.String("request_id", created.RequestID))
	return mcp.NewToolResultText(fmt.Sprintf(
		"Moving request created! Your request ID is: %s. Please save this ID for future reference.",
		created.RequestID)), nil
}

func (t *Tools) UpdateMovingRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID, err := req.RequireString("request_id")
	if err != nil {
		return mcp.NewToolResultError("request_id is required"), nil
	}
	rec, msg := recordFromArgs(req)
	if msg != "" {
		return mcp.NewToolResultError(msg), nil
	}

	updated, err := t.store.Update(requestID, rec)
	if err != nil {
		return mcp.NewToolResultText(writeFailureMessage("updating", err)), nil
	}
	if updated == nil {
		return mcp.NewToolResultText(fmt.Sprintf("Moving request with ID %s not found.", requestID)), nil
	}
	t.logger.Info("updated moving request", slog.String("request_id", requestID))
	return mcp.NewToolResultText(fmt.Sprintf("Moving request %s has been updated successfully!", requestID)), nil
}

func (t *Tools) GetAdditionalDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID, err := req.RequireString("request_id")
	if err != nil {
		return mcp.NewToolResultError("request_id is required"), nil
	}
	field, err := req.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError("field is required"), nil
	}

	rec, err := t.store.Get(requestID)
	if err != nil {
		return mcp.NewToolResultText(writeFailureMessage("retrieving", err)), nil
	}
	return mcp.NewToolResultText(request.AdditionalDetail(rec, field)), nil
}

// summary renders the full read-back for a request id, or the not-found /
// retry message when the record is missing or the store is down.
func (t *Tools) summary(requestID string) string {
	rec, err := t.store.Get(requestID)
	if err != nil {
		t.logger.Error("lookup failed", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return "I encountered an error retrieving your moving request details. Please try again."
	}
	if rec == nil {
		return request.NotFoundMessage
	}
	return request.FormatSummary(rec)
}

// recordFromArgs parses the shared record fields. The second return value is
// a non-empty corrective message when a required argument is missing.
func recordFromArgs(req mcp.CallToolRequest) (*store.MovingRequest, string) {
	rec := &store.MovingRequest{}

	var err error
	if rec.CustomerName, err = req.RequireString("customer_name"); err != nil {
		return nil, "customer_name is required"
	}
	if rec.Email, err = req.RequireString("email"); err != nil {
		return nil, "email is required"
	}
	if rec.PhoneNumber, err = req.RequireString("phone_number"); err != nil {
		return nil, "phone_number is required"
	}
	if rec.PhoneType, err = req.RequireString("phone_type"); err != nil {
		return nil, "phone_type is required"
	}
	if rec.FromAddress, err = req.RequireString("from_address"); err != nil {
		return nil, "from_address is required"
	}
	if rec.FromBuildingType, err = req.RequireString("from_building_type"); err != nil {
		return nil, "from_building_type is required"
	}
	if rec.FromBedrooms, err = req.RequireInt("from_bedrooms"); err != nil {
		return nil, "from_bedrooms is required"
	}
	if rec.ToAddress, err = req.RequireString("to_address"); err != nil {
		return nil, "to_address is required"
	}
	if rec.MoveDate, err = req.RequireString("move_date"); err != nil {
		return nil, "move_date is required"
	}
	if rec.FlexibleDate, err = req.RequireBool("flexible_date"); err != nil {
		return nil, "flexible_date is required"
	}
	if rec.AssistCar, err = req.RequireBool("assist_car"); err != nil {
		return nil, "assist_car is required"
	}
	rec.CarYear = req.GetString("car_year", "")
	rec.CarMake = req.GetString("car_make", "")
	rec.CarModel = req.GetString("car_model", "")

	return rec, ""
}

// writeFailureMessage converts a store failure into the corrective message
// the model relays to the customer.
func writeFailureMessage(verb string, err error) string {
	var vErr *store.ValidationError
	if errors.As(err, &vErr) {
		switch vErr.Field {
		case "phone_type":
			return fmt.Sprintf("Invalid phone type %q. Please specify 'cell', 'home', or 'work'.", vErr.Value)
		case "from_building_type":
			return fmt.Sprintf("Invalid building type %q. Please specify 'house' or 'apartment'.", vErr.Value)
		case "from_bedrooms":
			return "The number of bedrooms must be greater than zero."
		case "car_year", "car_make", "car_model":
			return "Car transportation details are incomplete. Please provide the car year, make, and model."
		}
		return fmt.Sprintf("Invalid value for %s. Please provide it again.", vErr.Field)
	}
	return fmt.Sprintf("I encountered an error %s your moving request. Please try again.", verb)
}
