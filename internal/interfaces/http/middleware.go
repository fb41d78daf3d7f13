package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-inteligente/internal/infrastructure/metrics"
)

// LocalLogger clave en c.Locals del logger con el request id ya cargado.
const LocalLogger = "logger"

// RequestLogger escribe una línea estructurada por petición. Debe ir después de requestid.
func RequestLogger(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := base.With().Str("request_id", GetRequestID(c)).Logger()
		c.Locals(LocalLogger, reqLog)

		err := c.Next()
		if err != nil {
			// el ErrorHandler escribe la respuesta; aquí solo se registra el status final
			_ = c.App().ErrorHandler(c, err)
		}

		status := c.Response().StatusCode()
		ev := reqLog.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = reqLog.Error()
		case status >= fiber.StatusBadRequest:
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("http")
		return nil
	}
}

// Metrics cuenta peticiones y latencia por ruta registrada (no por path crudo).
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status, _ = errorResponse(err)
		}
		// las etiquetas viven en el registro; no pueden apuntar al buffer que fasthttp reutiliza
		method := utils.CopyString(c.Method())
		route := utils.CopyString(c.Route().Path)
		if status == fiber.StatusNotFound && route == "/" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// GetRequestID devuelve el X-Request-ID asignado por el middleware requestid.
func GetRequestID(c *fiber.Ctx) string {
	if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}
