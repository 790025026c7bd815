package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobboard/infrastructure"
)

type RouterOptions struct {
	DB     *gorm.DB
	Logger *zap.Logger
	// Metrics is optional; a nil value disables /metrics.
	Metrics *infrastructure.Metrics
}

// NewRouter wires the middleware, templates and every route onto a fresh
// gin engine.
func NewRouter(opts RouterOptions) (*gin.Engine, error) {
	if err := setupValidation(); err != nil {
		return nil, err
	}
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	logger := opts.Logger.Named("http")
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	if opts.Metrics != nil {
		router.Use(instrument(opts.Metrics))
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{})))
	}
	router.SetHTMLTemplate(tmpl)
	router.NoRoute(notFound)

	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := infrastructure.Ping(ctx, opts.DB); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	NewHTTPHandler(router,
		infrastructure.NewCompanyRepository(opts.DB),
		infrastructure.NewJobRepository(opts.DB),
		logger)
	return router, nil
}
