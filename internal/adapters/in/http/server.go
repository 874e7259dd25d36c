// Package http exposes the production ledger over HTTP.
// It coordinates between HTTP handlers and application use cases,
// translating wire shapes to commands and domain errors to status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP API for handling ledger requests.
type Server struct {
	// Command handlers
	submitActionHandler       commands.SubmitActionCommandHandler
	amendActionHandler        commands.AmendActionCommandHandler
	deleteActionHandler       commands.DeleteActionCommandHandler
	createOrderHandler        commands.CreateOrderCommandHandler
	changeOrderStatusHandler  commands.ChangeOrderStatusCommandHandler
	addLineHandler            commands.AddLineCommandHandler
	changeLineQuantityHandler commands.ChangeLineQuantityCommandHandler
	removeLineHandler         commands.RemoveLineCommandHandler
	updateCostConfigHandler   commands.UpdateCostConfigCommandHandler
	syncOrdersHandler         commands.SyncOrdersCommandHandler

	// Query handlers
	getLineWithActionsHandler queries.GetLineWithActionsQueryHandler
	getOrdersBoardHandler     queries.GetOrdersBoardQueryHandler
	getWorkerActionsHandler   queries.GetWorkerActionsQueryHandler
	getWorkerByCodeHandler    queries.GetWorkerByCodeQueryHandler
	listWorkersHandler        queries.ListWorkersQueryHandler
	getCostConfigHandler      queries.GetCostConfigQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	submitActionHandler commands.SubmitActionCommandHandler,
	amendActionHandler commands.AmendActionCommandHandler,
	deleteActionHandler commands.DeleteActionCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	addLineHandler commands.AddLineCommandHandler,
	changeLineQuantityHandler commands.ChangeLineQuantityCommandHandler,
	removeLineHandler commands.RemoveLineCommandHandler,
	updateCostConfigHandler commands.UpdateCostConfigCommandHandler,
	syncOrdersHandler commands.SyncOrdersCommandHandler,
	getLineWithActionsHandler queries.GetLineWithActionsQueryHandler,
	getOrdersBoardHandler queries.GetOrdersBoardQueryHandler,
	getWorkerActionsHandler queries.GetWorkerActionsQueryHandler,
	getWorkerByCodeHandler queries.GetWorkerByCodeQueryHandler,
	listWorkersHandler queries.ListWorkersQueryHandler,
	getCostConfigHandler queries.GetCostConfigQueryHandler,
) *Server {
	return &Server{
		submitActionHandler:       submitActionHandler,
		amendActionHandler:        amendActionHandler,
		deleteActionHandler:       deleteActionHandler,
		createOrderHandler:        createOrderHandler,
		changeOrderStatusHandler:  changeOrderStatusHandler,
		addLineHandler:            addLineHandler,
		changeLineQuantityHandler: changeLineQuantityHandler,
		removeLineHandler:         removeLineHandler,
		updateCostConfigHandler:   updateCostConfigHandler,
		syncOrdersHandler:         syncOrdersHandler,
		getLineWithActionsHandler: getLineWithActionsHandler,
		getOrdersBoardHandler:     getOrdersBoardHandler,
		getWorkerActionsHandler:   getWorkerActionsHandler,
		getWorkerByCodeHandler:    getWorkerByCodeHandler,
		listWorkersHandler:        listWorkersHandler,
		getCostConfigHandler:      getCostConfigHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/actions", s.SubmitAction)
	api.PUT("/actions/:actionID", s.AmendAction)
	api.DELETE("/actions/:actionID", s.DeleteAction)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/board", s.GetOrdersBoard)
	api.POST("/orders/:orderID/status", s.ChangeOrderStatus)
	api.POST("/orders/:orderID/lines", s.AddLine)

	api.GET("/lines/:lineID", s.GetLine)
	api.PUT("/lines/:lineID/quantity", s.ChangeLineQuantity)
	api.DELETE("/lines/:lineID", s.RemoveLine)

	api.GET("/cost-config", s.GetCostConfig)
	api.PUT("/cost-config", s.UpdateCostConfig)

	api.GET("/workers", s.ListWorkers)
	api.POST("/workers/login", s.WorkerLogin)
	api.GET("/workers/:workerID/actions", s.GetWorkerActions)

	api.POST("/sync", s.TriggerSync)
}

// SubmitAction handles POST /api/v1/actions - records completed stage work.
func (s *Server) SubmitAction(ctx echo.Context) error {
	var body struct {
		LineID   string `json:"line_id"`
		Stage    string `json:"stage"`
		Quantity int    `json:"quantity"`
		ActorID  string `json:"actor_id"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lineID, err := kernel.UUIDFromString(body.LineID)
	if err != nil {
		return badRequest(ctx, "Invalid line_id: "+err.Error())
	}
	actorID, err := kernel.UUIDFromString(body.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor_id: "+err.Error())
	}
	stage, err := order.StageFromString(body.Stage)
	if err != nil {
		return badRequest(ctx, "Invalid stage: "+err.Error())
	}

	cmd, err := commands.NewSubmitActionCommand(lineID, stage, body.Quantity, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid submission: "+err.Error())
	}

	result, err := s.submitActionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, actionResultPayload(result))
}

// AmendAction handles PUT /api/v1/actions/:actionID - changes a recorded quantity.
func (s *Server) AmendAction(ctx echo.Context) error {
	actionID, err := kernel.UUIDFromString(ctx.Param("actionID"))
	if err != nil {
		return badRequest(ctx, "Invalid action id: "+err.Error())
	}

	var body struct {
		Quantity int    `json:"quantity"`
		ActorID  string `json:"actor_id"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(body.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewAmendActionCommand(actionID, body.Quantity, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid amendment: "+err.Error())
	}

	result, err := s.amendActionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, actionResultPayload(result))
}

// DeleteAction handles DELETE /api/v1/actions/:actionID - retracts an action.
// The acting worker is passed as the actor_id query parameter.
func (s *Server) DeleteAction(ctx echo.Context) error {
	actionID, err := kernel.UUIDFromString(ctx.Param("actionID"))
	if err != nil {
		return badRequest(ctx, "Invalid action id: "+err.Error())
	}
	actorID, err := kernel.UUIDFromString(ctx.QueryParam("actor_id"))
	if err != nil {
		return badRequest(ctx, "Invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewDeleteActionCommand(actionID, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid deletion: "+err.Error())
	}

	if err = s.deleteActionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateOrder handles POST /api/v1/orders - registers an order manually.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body struct {
		Source               string     `json:"source"`
		ExpectedShipmentDate *time.Time `json:"expected_shipment_date"`
		CustomerName         string     `json:"customer_name"`
		Company              string     `json:"company"`
		ActorID              string     `json:"actor_id"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(body.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor_id: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, body.Source, body.ExpectedShipmentDate,
		body.CustomerName, body.Company, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// ChangeOrderStatus handles POST /api/v1/orders/:orderID/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var body struct {
		Status  string `json:"status"`
		ActorID string `json:"actor_id"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.StatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}
	actorID, err := kernel.UUIDFromString(body.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid transition: "+err.Error())
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddLine handles POST /api/v1/orders/:orderID/lines.
func (s *Server) AddLine(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var body struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
		ActorID   string `json:"actor_id"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(body.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product_id: "+err.Error())
	}
	actorID, err := kernel.UUIDFromString(body.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor_id: "+err.Error())
	}

	lineID := kernel.NewUUID()
	cmd, err := commands.NewAddLineCommand(orderID, lineID, productID, body.Quantity, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid line data: "+err.Error())
	}

	if err = s.addLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": lineID.String()})
}

// ChangeLineQuantity handles PUT /api/v1/lines/:lineID/quantity.
func (s *Server) ChangeLineQuantity(ctx echo.Context) error {
	lineID, err := kernel.UUIDFromString(ctx.Param("lineID"))
	if err != nil {
		return badRequest(ctx, "Invalid line id: "+err.Error())
	}

	var body struct {
		Quantity int    `json:"quantity"`
		ActorID  string `json:"actor_id"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(body.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewChangeLineQuantityCommand(lineID, body.Quantity, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid quantity change: "+err.Error())
	}

	if err = s.changeLineQuantityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveLine handles DELETE /api/v1/lines/:lineID.
// The acting worker is passed as the actor_id query parameter.
func (s *Server) RemoveLine(ctx echo.Context) error {
	lineID, err := kernel.UUIDFromString(ctx.Param("lineID"))
	if err != nil {
		return badRequest(ctx, "Invalid line id: "+err.Error())
	}
	actorID, err := kernel.UUIDFromString(ctx.QueryParam("actor_id"))
	if err != nil {
		return badRequest(ctx, "Invalid actor_id: "+err.Error())
	}

	cmd, err := commands.NewRemoveLineCommand(lineID, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid removal: "+err.Error())
	}

	if err = s.removeLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetLine handles GET /api/v1/lines/:lineID - the line with its recorded actions.
func (s *Server) GetLine(ctx echo.Context) error {
	lineID, err := kernel.UUIDFromString(ctx.Param("lineID"))
	if err != nil {
		return badRequest(ctx, "Invalid line id: "+err.Error())
	}

	query, err := queries.NewGetLineWithActionsQuery(lineID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	line, err := s.getLineWithActionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	actions := make([]actionView, 0, len(line.Actions))
	for _, a := range line.Actions {
		actions = append(actions, actionView{
			ID:        a.ID.String(),
			Stage:     a.Stage,
			Quantity:  a.Quantity,
			Cost:      a.Cost,
			ActorID:   a.ActorID.String(),
			ActorName: a.ActorName,
			Timestamp: a.Timestamp,
		})
	}

	return ctx.JSON(http.StatusOK, lineView{
		LineID:           line.LineID.String(),
		OrderID:          line.OrderID.String(),
		OrderStatus:      line.OrderStatus,
		SKU:              line.SKU,
		Fabric:           line.Fabric,
		Pattern:          line.Pattern,
		RequiredQuantity: line.RequiredQuantity,
		StageTotals:      line.StageTotals,
		Actions:          actions,
	})
}

// GetOrdersBoard handles GET /api/v1/orders/board - the production board,
// optionally filtered by the status query parameter.
func (s *Server) GetOrdersBoard(ctx echo.Context) error {
	query := queries.NewGetOrdersBoardQuery()
	if statusParam := ctx.QueryParam("status"); statusParam != "" {
		status, err := order.StatusFromString(statusParam)
		if err != nil {
			return badRequest(ctx, "Invalid status: "+err.Error())
		}
		query, err = queries.NewGetOrdersBoardQueryWithStatus(status)
		if err != nil {
			return badRequest(ctx, "Invalid status: "+err.Error())
		}
	}

	rows, err := s.getOrdersBoardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]boardRow, 0, len(rows))
	for _, row := range rows {
		response = append(response, boardRow{
			ID:                   row.ID.String(),
			ExternalRef:          row.ExternalRef,
			Source:               row.Source,
			CustomerName:         row.CustomerName,
			Company:              row.Company,
			ExpectedShipmentDate: row.ExpectedShipmentDate,
			Status:               row.Status,
			LineCount:            row.LineCount,
			RequiredTotal:        row.RequiredTotal,
			RecordedTotal:        row.RecordedTotal,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetWorkerActions handles GET /api/v1/workers/:workerID/actions - the
// worker's journal since the optional RFC 3339 since query parameter.
func (s *Server) GetWorkerActions(ctx echo.Context) error {
	workerID, err := kernel.UUIDFromString(ctx.Param("workerID"))
	if err != nil {
		return badRequest(ctx, "Invalid worker id: "+err.Error())
	}

	var since time.Time
	if sinceParam := ctx.QueryParam("since"); sinceParam != "" {
		since, err = time.Parse(time.RFC3339, sinceParam)
		if err != nil {
			return badRequest(ctx, "Invalid since: "+err.Error())
		}
	}

	var query queries.GetWorkerActionsQuery
	if stageParam := ctx.QueryParam("stage"); stageParam != "" {
		stage, stageErr := order.StageFromString(stageParam)
		if stageErr != nil {
			return badRequest(ctx, "Invalid stage: "+stageErr.Error())
		}
		query, err = queries.NewGetWorkerActionsQueryWithStage(workerID, since, stage)
	} else {
		query, err = queries.NewGetWorkerActionsQuery(workerID, since)
	}
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	journal, err := s.getWorkerActionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	actions := make([]journalEntry, 0, len(journal.Actions))
	for _, a := range journal.Actions {
		actions = append(actions, journalEntry{
			ID:        a.ID.String(),
			OrderID:   a.OrderID.String(),
			LineID:    a.LineID.String(),
			SKU:       a.SKU,
			Stage:     a.Stage,
			Quantity:  a.Quantity,
			Cost:      a.Cost,
			Timestamp: a.Timestamp,
		})
	}

	return ctx.JSON(http.StatusOK, journalView{
		Actions:   actions,
		TotalCost: journal.TotalCost,
	})
}

// UpdateCostConfig handles PUT /api/v1/cost-config - replaces the cost-model
// factors. Per-edge-class maps are keyed by the edge class wire name.
func (s *Server) UpdateCostConfig(ctx echo.Context) error {
	var body costConfigPayload
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(body.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor_id: "+err.Error())
	}

	cfg, err := body.toConfig()
	if err != nil {
		return badRequest(ctx, "Invalid configuration: "+err.Error())
	}

	cmd, err := commands.NewUpdateCostConfigCommand(cfg, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid configuration: "+err.Error())
	}

	if err = s.updateCostConfigHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCostConfig handles GET /api/v1/cost-config - the active cost-model
// factors, built-in defaults when none have been saved.
func (s *Server) GetCostConfig(ctx echo.Context) error {
	cfg, err := s.getCostConfigHandler.Handle(ctx.Request().Context(), queries.NewGetCostConfigQuery())
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, costConfigViewPayload(cfg))
}

// WorkerLogin handles POST /api/v1/workers/login - resolves a shop-floor
// login code to the worker's identity and stage permissions.
func (s *Server) WorkerLogin(ctx echo.Context) error {
	var body struct {
		Code string `json:"code"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	query, err := queries.NewGetWorkerByCodeQuery(body.Code)
	if err != nil {
		return badRequest(ctx, "Invalid code: "+err.Error())
	}

	view, err := s.getWorkerByCodeHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, workerViewPayload(view))
}

// ListWorkers handles GET /api/v1/workers - the roster ordered by code.
func (s *Server) ListWorkers(ctx echo.Context) error {
	views, err := s.listWorkersHandler.Handle(ctx.Request().Context(), queries.NewListWorkersQuery())
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]workerView, 0, len(views))
	for _, v := range views {
		response = append(response, workerViewPayload(v))
	}

	return ctx.JSON(http.StatusOK, response)
}

// TriggerSync handles POST /api/v1/sync - pulls the external order feed on
// demand. The optional RFC 3339 since query parameter bounds the pull; when
// omitted the full backlog is requested.
func (s *Server) TriggerSync(ctx echo.Context) error {
	var since time.Time
	if sinceParam := ctx.QueryParam("since"); sinceParam != "" {
		parsed, err := time.Parse(time.RFC3339, sinceParam)
		if err != nil {
			return badRequest(ctx, "Invalid since: "+err.Error())
		}
		since = parsed
	}

	cmd := commands.NewSyncOrdersCommand(since)
	if err := s.syncOrdersHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, apiError{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps application errors to HTTP status codes.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrQuotaExceeded):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrContention):
		code = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, apiError{
		Code:    code,
		Message: err.Error(),
	})
}
