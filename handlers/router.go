package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fund-insights/middleware"
	"fund-insights/models"
)

// NewRouter wires every route. Metrics are registered on reg and exposed
// from gatherer at /metrics.
func NewRouter(h *Handler, reg prometheus.Registerer, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(h.log), middleware.Metrics(reg))

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")

	// Public routes
	v1.GET("/health", HealthCheck)
	v1.POST("/login", h.Login)
	v1.POST("/refresh", h.Refresh)

	// Any signed-in role
	auth := v1.Group("/")
	auth.Use(middleware.JWTAuth(h.secret, h.sessions))
	{
		auth.POST("/logout", h.Logout)
		auth.GET("/profile", h.GetProfile)
		auth.PUT("/profile", h.UpdateProfile)
		auth.PUT("/role", h.SwitchRole)
		auth.GET("/funds", h.ListFunds)
		auth.GET("/funds/houses", h.FundHouses)
		auth.GET("/funds/:id", h.GetFund)
		auth.GET("/posts", h.ListPosts)
	}

	investor := auth.Group("/")
	investor.Use(middleware.RequireRole(models.RoleInvestor))
	{
		investor.POST("/risk-quiz", h.RiskQuiz)
		investor.GET("/compare", h.GetCompare)
		investor.PUT("/compare/:id", h.ToggleCompare)
		investor.PUT("/enroll/:id", h.ToggleEnroll)
		investor.GET("/portfolio", h.GetPortfolio)
		investor.GET("/sip", h.GetSIP)
		investor.PUT("/sip", h.UpdateSIP)
		investor.POST("/sip/start", h.StartSIP)
		investor.POST("/sip/pause", h.PauseSIP)
		investor.POST("/sip/step-up", h.StepUpSIP)
		investor.POST("/goals/plan", h.PlanGoal)
		investor.POST("/tax/estimate", h.EstimateTax)
		investor.POST("/behavior/analyze", h.AnalyzeBehavior)
		investor.GET("/alerts", h.GetAlerts)
		investor.PUT("/alerts/:type/toggle", h.ToggleAlert)
		investor.POST("/alerts/read", h.MarkAlertsRead)
		investor.POST("/posts/:id/like", h.LikePost)
		investor.POST("/posts/:id/comments", h.CommentPost)
	}

	advisor := auth.Group("/advisor")
	advisor.Use(middleware.RequireRole(models.RoleAdvisor))
	{
		advisor.GET("/recommendations", h.AdvisorRecommendations)
		advisor.POST("/recommendations", h.SendRecommendation)
		advisor.POST("/posts", h.CreatePost)
	}

	analyst := auth.Group("/analyst")
	analyst.Use(middleware.RequireRole(models.RoleAnalyst))
	{
		analyst.GET("/lab", h.AnalystLab)
	}

	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/funds", h.AddFund)
		admin.GET("/moderation", h.ModerationQueue)
		admin.PUT("/advisors/:id/approve", h.ApproveAdvisor)
		admin.PUT("/complaints/:id/close", h.CloseComplaint)
		admin.PUT("/users/:id/remove", h.RemoveUser)
	}

	return router
}
