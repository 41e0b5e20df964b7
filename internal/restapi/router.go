package restapi

import (
	"net/http"
	"net/http/pprof"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/oakencore/gringotts/internal/pkg/utils"
)

// SetupRouter builds the gin router with the dashboard endpoints, metrics
// and pprof.
func SetupRouter(portfolioHandler *PortfolioHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(utils.ZapLoggerMiddleware(logger))
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/portfolio", portfolioHandler.GetPortfolioHandler)
		v1.GET("/accounts", portfolioHandler.GetAccountsHandler)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}

	return router
}
