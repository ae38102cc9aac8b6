package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amr-9/btcvanity/internal/job"
)

func (s *Server) handleStart(c *gin.Context) {
	var req job.Request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			c.JSON(http.StatusBadRequest, errorResponse{
				Error: fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type),
				Field: typeErr.Field,
			})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed JSON body", Field: "body"})
		return
	}

	id, err := s.jobs.Start(req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, okResponse{OK: true, JobID: id})
}

func (s *Server) handleStop(c *gin.Context) {
	if err := s.jobs.Stop(); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse{OK: true})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, newStatusResponse(s.jobs.Status()))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, okResponse{OK: true})
}

// writeError maps controller errors onto status codes.
func (s *Server) writeError(c *gin.Context, err error) {
	var verr *job.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, job.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", zap.String("request_id", c.GetString(requestIDKey)), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
