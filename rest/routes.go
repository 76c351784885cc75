package rest

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) SetupRoutes(engine *echo.Echo) {
	engine.GET("/health", h.echoHandler(h.HealthCheck))
	engine.GET("/version", h.echoHandler(h.Version))
	engine.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))

	api := engine.Group("/api", echo.WrapMiddleware(LoggerMiddleware))
	// v1 routes
	{
		apiV1 := api.Group("/v1")
		auth := h.mutationMiddlewares()

		// auth routes
		apiV1.POST("/auth/token", h.echoHandler(h.GenTokenHandler))

		// usage routes
		apiV1.GET("/usage", h.echoHandler(h.GetUsage))
		apiV1.GET("/usage/history/:channel", h.echoHandlerWithParams(h.GetUsageHistory))

		// device routes
		apiV1.GET("/device", h.echoHandler(h.GetDeviceStatus))
		apiV1.PUT("/device/cores/:core", h.echoHandlerWithParams(h.SetCoreEnabled), auth...)
		apiV1.PUT("/device/frequency", h.echoHandler(h.SetScalingFrequency), auth...)
		apiV1.PUT("/device/governor", h.echoHandler(h.SetGovernor), auth...)

		// governor routes
		apiV1.GET("/governors/:governor/specs", h.echoHandlerWithParams(h.GetGovernorSpecs))
		apiV1.POST("/governor/session", h.echoHandler(h.OpenGovernorSession), auth...)
		apiV1.GET("/governor/session", h.echoHandler(h.GetGovernorSession))
		apiV1.PUT("/governor/session/fields", h.echoHandler(h.SetGovernorSessionField), auth...)
		apiV1.POST("/governor/session/commit", h.echoHandler(h.CommitGovernorSession), auth...)
		apiV1.DELETE("/governor/session", h.echoHandler(h.CancelGovernorSession), auth...)

		// workload routes
		apiV1.GET("/workload/pi", h.echoHandler(h.GetPiWorkload))
		apiV1.GET("/workload/pi/events", h.echoHandler(h.StreamPiWorkloadEvents))
		apiV1.POST("/workload/pi", h.echoHandler(h.StartPiWorkload), auth...)
		apiV1.DELETE("/workload/pi", h.echoHandler(h.CancelPiWorkload), auth...)
	}
}

// mutationMiddlewares guards routes that change device state when token auth is enabled.
func (h *Handler) mutationMiddlewares() []echo.MiddlewareFunc {
	if !h.tokenConfig.Enable {
		return nil
	}
	return []echo.MiddlewareFunc{echo.WrapMiddleware(h.GetAuthMiddleware())}
}

func (h *Handler) echoHandler(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return echo.WrapHandler(http.HandlerFunc(handlerFunc))
}

// echoHandlerWithParams wraps a handler function and injects path parameters into request context
func (h *Handler) echoHandlerWithParams(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := c.Request()
		for _, name := range c.ParamNames() {
			r = r.WithContext(context.WithValue(r.Context(), pathParamKey(name), c.Param(name)))
		}
		handlerFunc(c.Response().Writer, r)
		return nil
	}
}

// pathParamKey is a type for path parameter context keys
type pathParamKey string

// GetPathParam retrieves a path parameter from request context
func (h *Handler) GetPathParam(r *http.Request, name string) string {
	if val, ok := r.Context().Value(pathParamKey(name)).(string); ok {
		return val
	}
	return ""
}
