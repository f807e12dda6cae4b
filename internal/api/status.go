package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sandwatch/sandwatch/internal/metrics"
)

// mountStatus recomputes the storage mount verdict from the sandbox's live
// state. It never returns a non-200: failure modes are part of the body.
func (s *Server) mountStatus(c echo.Context) error {
	start := time.Now()
	status := s.detector.Check(c.Request().Context())
	elapsed := time.Since(start)

	result := "mounted"
	if !status.Mounted {
		result = status.Error
	}
	metrics.MountChecksTotal.WithLabelValues(result).Inc()
	metrics.MountCheckDuration.Observe(elapsed.Seconds())

	if s.history != nil {
		_ = s.history.RecordMountCheck(status, int(elapsed.Milliseconds()))
	}

	return c.JSON(http.StatusOK, status)
}

func (s *Server) bucketStatus(c echo.Context) error {
	if s.bucketProbe == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "no bucket configured",
		})
	}
	return c.JSON(http.StatusOK, s.bucketProbe.Check(c.Request().Context()))
}

func (s *Server) recentChecks(c echo.Context) error {
	if s.history == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "check history not available",
		})
	}
	entries, err := s.history.RecentMountChecks(20)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"checks": entries})
}
