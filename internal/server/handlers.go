package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/alnah/go-runstatus/internal/apierr"
	"github.com/alnah/go-runstatus/internal/status"
)

type classifyRequest struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
}

type presentRequest struct {
	Status       string               `json:"status" binding:"required"`
	Error        string               `json:"error"`
	StopReason   string               `json:"stop_reason"`
	InputRequest *status.InputRequest `json:"input_request"`
}

type runErrorRequest struct {
	Error string `json:"error" binding:"required"`
}

// runErrorResponse reports what the notification did.
type runErrorResponse struct {
	RunID       string `json:"run_id"`
	APIError    bool   `json:"api_error"`
	Delivered   bool   `json:"delivered"`
	Subscribers int    `json:"subscribers"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleClassify handles POST /api/classify.
func (s *Server) handleClassify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.StatusCode < 0 {
		badRequest(c, errors.New("status_code must not be negative"))
		return
	}
	c.JSON(http.StatusOK, apierr.NewReport(req.Error, req.StatusCode, s.now()))
}

// handlePresent handles POST /api/present. Statuses that render nothing
// answer 204.
func (s *Server) handlePresent(c *gin.Context) {
	var req presentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, ok := status.Present(status.RunStatus(req.Status), status.Input{
		ErrorText:    req.Error,
		StopReason:   req.StopReason,
		InputRequest: req.InputRequest,
	})
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, p)
}

// handleRunError handles POST /api/runs/:run_id/errors: the run's stream
// failed and its subscribers must be told.
func (s *Server) handleRunError(c *gin.Context) {
	runID := c.Param("run_id")

	var req runErrorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	runErr := errors.New(req.Error)
	resp := runErrorResponse{
		RunID:       runID,
		APIError:    apierr.IsAPIError(runErr),
		Delivered:   true,
		Subscribers: s.hub.Subscribers(runID),
	}

	if err := s.middleware.HandleStreamError(c.Request.Context(), runID, runErr); err != nil {
		s.logger.Warn("run error notification not delivered",
			zap.String("run_id", runID),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		resp.Delivered = false
	}

	c.JSON(http.StatusAccepted, resp)
}

// handleSubscribe handles GET /api/runs/:run_id/ws. The connection stays
// subscribed until the client closes it or the server shuts down.
func (s *Server) handleSubscribe(c *gin.Context) {
	runID := c.Param("run_id")

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Debug("websocket upgrade failed", zap.String("run_id", runID), zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	unsubscribe, err := s.hub.Subscribe(runID, conn)
	if err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, err.Error()))
		return
	}
	defer unsubscribe()

	s.logger.Debug("websocket subscribed", zap.String("run_id", runID))

	// Clients only listen; reading drives ping/close handling.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket closed", zap.String("run_id", runID), zap.Error(err))
			}
			return
		}
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
