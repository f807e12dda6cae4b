package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sandwatch/sandwatch/internal/metrics"
)

func (s *Server) listProcesses(c echo.Context) error {
	includeLogs := c.QueryParam("logs") == "true"

	start := time.Now()
	records, err := s.registry.List(c.Request().Context(), includeLogs)
	withLogs := "false"
	if includeLogs {
		withLogs = "true"
	}
	metrics.ProcessListDuration.WithLabelValues(withLogs).Observe(time.Since(start).Seconds())

	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"count":     len(records),
		"processes": records,
	})
}

func (s *Server) gatewayProcess(c echo.Context) error {
	handle, err := s.locator.Find(c.Request().Context())
	if err != nil {
		metrics.GatewayLookupsTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": err.Error(),
		})
	}

	if s.history != nil {
		id := ""
		if handle != nil {
			id = handle.ID
		}
		_ = s.history.RecordGatewayLookup(id)
	}
	if handle == nil {
		metrics.GatewayLookupsTotal.WithLabelValues("none").Inc()
		return c.JSON(http.StatusOK, map[string]any{
			"found":  false,
			"detail": "no gateway process",
		})
	}

	metrics.GatewayLookupsTotal.WithLabelValues("found").Inc()
	return c.JSON(http.StatusOK, map[string]any{
		"found":   true,
		"process": handle,
	})
}

// gatewayLogs returns the log snapshot for the located gateway process.
// No gateway process is a distinct answer, not a failure.
func (s *Server) gatewayLogs(c echo.Context) error {
	handle, err := s.locator.Find(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": err.Error(),
		})
	}
	if handle == nil {
		return c.JSON(http.StatusOK, map[string]any{
			"found":  false,
			"detail": "no gateway process",
		})
	}

	logs, err := s.registry.Logs(c.Request().Context(), handle.ID)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]any{
			"found":      true,
			"process":    handle,
			"logs_error": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"found":   true,
		"process": handle,
		"stdout":  logs.Stdout,
		"stderr":  logs.Stderr,
	})
}

func (s *Server) gatewayVersion(c echo.Context) error {
	version, err := s.prober.Value(c.Request().Context(), s.gatewayVersionCmd)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"version": version,
	})
}

func (s *Server) gatewayConfig(c echo.Context) error {
	verdict, err := s.prober.JSON(c.Request().Context(), s.gatewayConfigCmd)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, verdict)
}
