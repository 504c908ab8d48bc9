// Package router assembles the HTTP routes of the service.
package router

import (
	"github.com/gin-gonic/gin"

	analysishandler "ashare_analyst/internal/feature/analysis/transport/handler"
	authhandler "ashare_analyst/internal/feature/auth/transport/handler"
	reportshandler "ashare_analyst/internal/feature/reports/transport/handler"
	"ashare_analyst/internal/platform/http/handler"
	jwtmw "ashare_analyst/internal/platform/jwt"
)

// NewRouter builds the Gin engine. The health check and login are
// public; every analysis tool and the report archive require a JWT.
func NewRouter(authH *authhandler.AuthHandler, analysisH *analysishandler.AnalysisHandler,
	reportsH *reportshandler.ReportsHandler) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", handler.Health)
	r.POST("/login", authH.LoginHandler)

	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/analysis/financial/:symbol", analysisH.FinancialHandler)
		auth.GET("/analysis/trend/:symbol", analysisH.TrendHandler)
		auth.GET("/analysis/news/:symbol", analysisH.NewsHandler)
		auth.GET("/analysis/comprehensive/:symbol", analysisH.ComprehensiveHandler)
		auth.GET("/reports/:symbol", reportsH.ListHandler)
	}

	return r
}
