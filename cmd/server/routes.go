package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"payday.backend/internal/interfaces/http/handlers"
	"payday.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	scheduleHandler *handlers.ScheduleHandler
	limitHandler    *handlers.SpendingLimitHandler
	employeeHandler *handlers.EmployeeHandler
	payoutHandler   *handlers.PayoutHandler
	authMiddleware  gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Idempotency-Key, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "payday-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/nonce", d.authHandler.Nonce)
			auth.POST("/verify", d.authHandler.Verify)
			auth.POST("/refresh", d.authHandler.Refresh)
		}

		// Schedule routes (protected)
		schedules := v1.Group("/schedules")
		schedules.Use(d.authMiddleware)
		{
			schedules.POST("", middleware.IdempotencyMiddleware(), d.scheduleHandler.Create)
			schedules.GET("", d.scheduleHandler.List)
			schedules.GET("/due", d.scheduleHandler.Due)
			schedules.POST("/process-due", middleware.IdempotencyMiddleware(), d.scheduleHandler.ProcessDue)
			schedules.GET("/:id", d.scheduleHandler.Get)
			schedules.PATCH("/:id", d.scheduleHandler.Update)
			schedules.POST("/:id/toggle", d.scheduleHandler.Toggle)
			schedules.DELETE("/:id", d.scheduleHandler.Delete)
		}

		// Spending limit routes (protected)
		limit := v1.Group("/spending-limit")
		limit.Use(d.authMiddleware)
		{
			limit.GET("", d.limitHandler.Get)
			limit.PUT("", d.limitHandler.Set)
		}

		// Employee routes (protected)
		employees := v1.Group("/employees")
		employees.Use(d.authMiddleware)
		{
			employees.POST("", d.employeeHandler.Create)
			employees.GET("", d.employeeHandler.List)
			employees.GET("/:id", d.employeeHandler.Get)
			employees.PATCH("/:id", d.employeeHandler.Update)
			employees.DELETE("/:id", d.employeeHandler.Delete)
		}

		// Payout history (protected)
		payouts := v1.Group("/payouts")
		payouts.Use(d.authMiddleware)
		{
			payouts.GET("", d.payoutHandler.List)
		}
	}
}
