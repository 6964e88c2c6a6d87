package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rankscore-ai/rankscore/analyzer"
	"github.com/rankscore-ai/rankscore/api/handler"
	"github.com/rankscore-ai/rankscore/api/middleware"
	"github.com/rankscore-ai/rankscore/cache"
	"github.com/rankscore-ai/rankscore/config"
	"github.com/rankscore-ai/rankscore/leads"
	"github.com/rankscore-ai/rankscore/llm"
	"github.com/rankscore-ai/rankscore/mailer"
	"github.com/rankscore-ai/rankscore/payment"
	"github.com/rankscore-ai/rankscore/store"
)

// Deps carries the wired services the routes need.
type Deps struct {
	Analyzer *analyzer.Analyzer
	Store    *store.Store
	Cache    *cache.Cache
	Sessions *middleware.Sessions
	Payment  *payment.Client
	Mailer   *mailer.Mailer
	Leads    *leads.Sink
	LLM      *llm.Client
}

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	Open:    RateLimit (keyed by client IP)
//	Pro:     ProAuth → RateLimit (keyed by session token)
//
// Health and the Stripe webhook sit outside rate limiting: monitoring probes
// must always answer, and a throttled webhook would make Stripe retry a
// purchase that already minted a code.
func NewRouter(d Deps, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	v1.GET("/health", handler.Health(d.Store, startTime))
	v1.POST("/stripe/webhook", handler.StripeWebhook(d.Store, d.Mailer, d.Leads, cfg.Stripe.WebhookSecret))

	// Open group — free tier, rate limited per client IP.
	open := v1.Group("")
	open.Use(middleware.RateLimit(cfg.RateLimit))

	open.POST("/score", handler.FreeScore(d.Analyzer, d.Leads, cfg))
	open.POST("/checkout", handler.Checkout(d.Payment))
	open.POST("/access/redeem", handler.Redeem(d.Store, d.Sessions))
	open.POST("/reports/quick-wins", handler.QuickWinsReport(d.Analyzer, d.Leads, cfg))

	// Pro group — session token required, rate limited per token.
	pro := v1.Group("")
	pro.Use(middleware.ProAuth(d.Sessions))
	pro.Use(middleware.RateLimit(cfg.RateLimit))

	pro.POST("/analyze", handler.Analyze(d.Analyzer, d.Store, d.Cache, cfg))
	pro.GET("/history", handler.History(d.Store))
	pro.GET("/progress", handler.Progress(d.Store))
	pro.PATCH("/recommendations/:id", handler.UpdateRecommendation(d.Store))

	pro.POST("/reports/detailed", handler.DetailedReport(d.Analyzer, d.LLM, cfg))
	pro.POST("/reports/progress", handler.ProgressReport(d.Store))

	pro.POST("/batch/analyze", handler.PostBatch(d.Analyzer, d.Store, cfg))
	pro.GET("/batch/:id", handler.GetBatch())

	return r
}
