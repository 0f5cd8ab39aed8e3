package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dkellner/blockmatch/pkg/core/services"
	"github.com/dkellner/blockmatch/pkg/core/strategy"
)

// matchRequest is the optional body for the match endpoint
type matchRequest struct {
	Strategy  string `json:"strategy"`
	Threshold *int   `json:"threshold"`
}

// matchedBlock is the wire form of one recommendation
type matchedBlock struct {
	OccurrenceID string  `json:"occurrenceId"`
	BlockID      string  `json:"blockId"`
	ServiceDate  string  `json:"serviceDate"`
	StartTime    string  `json:"startTime"`
	ContractType string  `json:"contractType,omitempty"`
	MatchScore   float64 `json:"matchScore"`
}

func (s *Server) handleMatchDriver(c *gin.Context) {
	driverID := c.Param("driverID")

	var req matchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
	}

	result, err := services.MatchDriver(c.Request.Context(), s.database, s.logger, services.MatchDriverInput{
		DriverID:  driverID,
		Strategy:  req.Strategy,
		Threshold: req.Threshold,
	})
	if err != nil {
		s.renderServiceError(c, err)
		return
	}

	blocks := make([]matchedBlock, len(result.Blocks))
	for i, b := range result.Blocks {
		blocks[i] = matchedBlock{
			OccurrenceID: b.Occurrence.OccurrenceID,
			BlockID:      b.Occurrence.BlockID,
			ServiceDate:  b.Occurrence.ServiceDate,
			StartTime:    b.Occurrence.StartTime,
			ContractType: b.Occurrence.ContractType,
			MatchScore:   b.MatchScore,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"driverId":   result.DriverID,
		"strictness": result.Strictness,
		"threshold":  result.Threshold,
		"blocks":     blocks,
	})
}

func (s *Server) handleCoverage(c *gin.Context) {
	input := services.CoverageReportInput{Strategy: c.Query("strategy")}

	if raw := c.Query("threshold"); raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be an integer"})
			return
		}
		input.Threshold = &threshold
	}

	result, err := services.CoverageReport(c.Request.Context(), s.database, s.logger, input)
	if err != nil {
		s.renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"strictness": result.Strictness,
		"threshold":  result.Threshold,
		"total":      result.Report.Total,
		"coverage":   result.Report.Coverage,
	})
}

func (s *Server) handleStrategies(c *gin.Context) {
	type presetView struct {
		Name           string `json:"name"`
		Threshold      int    `json:"threshold"`
		Prioritization string `json:"prioritization"`
		Strictness     string `json:"strictness"`
	}

	presets := strategy.Presets()
	views := make([]presetView, len(presets))
	for i, p := range presets {
		views[i] = presetView{
			Name:           p.Name,
			Threshold:      p.Threshold,
			Prioritization: string(p.Prioritization),
			Strictness:     string(p.Strictness()),
		}
	}

	c.JSON(http.StatusOK, gin.H{"strategies": views})
}

// renderServiceError maps service errors to HTTP statuses: missing profiles
// are 404, bad arguments 400, everything else 500
func (s *Server) renderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoOccurrences):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		s.logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
