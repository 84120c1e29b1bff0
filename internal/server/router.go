package server

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/voyplan/go-tripui/internal/app/handlers"
	"github.com/voyplan/go-tripui/internal/app/middleware"
	"github.com/voyplan/go-tripui/internal/views"
)

// SetupRouter configures and returns the Gin router with all middleware and
// routes.
func SetupRouter(s *Server) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(ginzap.GinzapWithConfig(s.logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		Context:    zapContextFunc(),
	}))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))
	r.Use(otelgin.Middleware("go-tripui"))
	r.Use(middleware.SecurityMiddleware())
	r.Use(middleware.SessionMiddleware(s.sessions))

	tmpl, err := views.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	h := handlers.New(s.client, s.sessions, s.maps, s.logger)
	h.Register(r)

	return r, nil
}

// zapContextFunc adds trace correlation fields to request logs.
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		fields := []zapcore.Field{}

		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}

		return fields
	}
}
