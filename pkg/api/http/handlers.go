package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aescanero/shortcast/internal/application/trigger"
	"github.com/aescanero/shortcast/pkg/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RunResponse is the body of a run trigger response
type RunResponse struct {
	OK     bool              `json:"ok"`
	Error  string            `json:"error,omitempty"`
	Result *domain.RunRecord `json:"result,omitempty"`
}

// HistoryResponse is the body of a run history response
type HistoryResponse struct {
	Latest  *domain.RunRecord   `json:"latest"`
	History []*domain.RunRecord `json:"history"`
}

// ConfigResponse is the body of a brand config response
type ConfigResponse struct {
	Config *domain.BrandConfig `json:"config"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	checks := gin.H{"orchestrator": "ok", "store": "ok"}
	status := http.StatusOK
	health := "healthy"

	if _, err := s.configs.Get(c.Request.Context()); err != nil {
		checks["store"] = err.Error()
		status = http.StatusServiceUnavailable
		health = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":          health,
		"timestamp":       time.Now().UTC(),
		"run_in_progress": s.trigger.GetStatus().InProgress,
		"checks":          checks,
	})
}

// handleTriggerRun executes one run and responds with its record.
// The run is detached from the request so a client disconnect cannot cut it short.
func (s *Server) handleTriggerRun(c *gin.Context) {
	ctx := context.WithoutCancel(c.Request.Context())

	record, err := s.trigger.Trigger(ctx, trigger.SourceHTTP)
	switch {
	case errors.Is(err, domain.ErrRunInProgress):
		abortWithError(c, http.StatusConflict, "RUN_IN_PROGRESS", err.Error())
	case err != nil:
		s.logger.Error("run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, RunResponse{OK: false, Error: err.Error(), Result: record})
	default:
		c.JSON(http.StatusOK, RunResponse{OK: true, Result: record})
	}
}

// handleListRuns returns the latest record and the bounded history
func (s *Server) handleListRuns(c *gin.Context) {
	latest, err := s.runs.Latest(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to read latest run", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read run history")
		return
	}

	history, err := s.runs.History(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to read run history", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read run history")
		return
	}
	if history == nil {
		history = []*domain.RunRecord{}
	}

	c.JSON(http.StatusOK, HistoryResponse{Latest: latest, History: history})
}

// handleLatestRun returns the most recent record
func (s *Server) handleLatestRun(c *gin.Context) {
	latest, err := s.runs.Latest(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to read latest run", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read latest run")
		return
	}
	if latest == nil {
		abortWithError(c, http.StatusNotFound, "NOT_FOUND", "No runs recorded yet")
		return
	}

	c.JSON(http.StatusOK, latest)
}

// handleRunStatus reports whether a run is in flight
func (s *Server) handleRunStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.trigger.GetStatus())
}

// handleGetConfig returns the saved brand config, null when none was saved
func (s *Server) handleGetConfig(c *gin.Context) {
	cfg, err := s.configs.Get(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to read brand config", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read brand config")
		return
	}

	c.JSON(http.StatusOK, ConfigResponse{Config: cfg})
}

// handleSaveConfig merges a partial brand config into the saved one
func (s *Server) handleSaveConfig(c *gin.Context) {
	var patch domain.BrandConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		s.logger.Error("invalid request", zap.Error(err))
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	existing, err := s.configs.Get(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to read brand config", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read brand config")
		return
	}

	merged := domain.MergeBrandConfig(existing, patch)
	if err := s.validator.Validate(&merged); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_CONFIG", err.Error())
		return
	}

	saved, err := s.configs.Upsert(c.Request.Context(), patch)
	if err != nil {
		s.logger.Error("failed to save brand config", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save brand config")
		return
	}

	s.logger.Info("brand config saved",
		zap.String("channel", saved.ChannelName),
		zap.String("video_style", string(saved.VideoStyle)))
	c.JSON(http.StatusOK, ConfigResponse{Config: saved})
}
