package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/priya-tenac/Ai-Study-Buddy/docs"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/middleware"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware())
	{
		a.registerStudyRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/contact", c.contact.Submit)

		otp := public.Group("/auth/otp")
		{
			otp.POST("/request", c.auth.RequestOTP)
			otp.POST("/verify", c.auth.VerifyOTP)
		}
	}
}

func (a *App) registerStudyRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)

	// study packs and flashcard review
	rg.POST("/summarize", c.studyPack.Summarize)
	decks := rg.Group("/flashcards/decks")
	{
		decks.POST("", c.studyPack.StartDeck)
		decks.GET("/:id", c.studyPack.GetDeck)
		decks.POST("/:id/reveal", c.studyPack.Reveal)
		decks.POST("/:id/grade", c.studyPack.Grade)
		decks.DELETE("/:id", c.studyPack.DiscardDeck)
	}

	// quiz generation and battle sessions
	rg.POST("/quiz/generate", c.quiz.Generate)
	quiz := rg.Group("/quiz/sessions")
	{
		quiz.POST("", c.quiz.CreateSession)
		quiz.GET("/:id", c.quiz.GetSession)
		quiz.POST("/:id/configure", c.quiz.Configure)
		quiz.POST("/:id/start", c.quiz.StartRound)
		quiz.POST("/:id/select", c.quiz.SelectOption)
		quiz.POST("/:id/next", c.quiz.NextQuestion)
		quiz.POST("/:id/finish", c.quiz.Finish)
		quiz.DELETE("/:id", c.quiz.DiscardSession)
	}

	// exam prediction and tutoring
	rg.POST("/exam-predictor", c.exam.Predict)
	rg.POST("/chat", c.chat.Chat)

	// study planner
	rg.POST("/study-plan", c.planner.GeneratePlan)
	plans := rg.Group("/plans")
	{
		plans.GET("", c.planner.ListPlans)
		plans.POST("", c.planner.AddPlan)
		plans.PATCH("/:id/toggle", c.planner.TogglePlan)
		plans.DELETE("/:id", c.planner.DeletePlan)
	}

	// document, image and audio extraction
	extract := rg.Group("/extract")
	{
		extract.POST("/pdf", c.extract.ExtractPDF)
		extract.POST("/image", c.extract.ExtractImage)
		extract.POST("/audio", c.extract.ExtractAudio)
	}

	// dashboard
	rg.GET("/dashboard", c.dashboard.Snapshot)
	rg.GET("/sessions", c.dashboard.ListSessions)
	rg.GET("/quiz-results", c.dashboard.ListResults)
	rg.GET("/leaderboard", c.dashboard.Leaderboard)
}
