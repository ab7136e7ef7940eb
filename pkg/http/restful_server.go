package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"naftwatch.dz/fuel-monitor-service/pkg/auth"
	"naftwatch.dz/fuel-monitor-service/pkg/fuel"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
)

type RestfulServer struct {
	Server           *gin.Engine
	Monitor          *fuel.Monitor
	RateLimiterStore *fuel.RateLimiterStore
	Live             *LiveHub
}

func (rs *RestfulServer) GetLimiter(stationID uint) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(stationID)
	}
}

func (rs *RestfulServer) CheckStationLimiter(stationID uint) bool {
	limiter := rs.GetLimiter(stationID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(stationID uint, stationRate float64, stationBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(stationID, rate.Limit(stationRate), stationBurst)
}

func (rs *RestfulServer) Setup() {
	if rs.Live == nil {
		rs.Live = NewLiveHub(rs.Monitor)
	}

	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.POST("/auth/login", rs.Login)

	authorized := rs.Server.Group("", auth.JWTAuth())
	{
		authorized.GET("/stations", rs.ListStations)

		stations := authorized.Group("/stations/:station_id")
		{
			stations.POST("/stock", rs.PostStock)
			stations.GET("/alerts", rs.GetStationAlerts)
			stations.POST("/limiter", auth.RequireRole(models.RoleNationalAdmin), rs.PostLimiter)
		}

		authorized.GET("/alerts", rs.ListAlerts)
		authorized.POST("/alerts/:alert_id/resolve", rs.ResolveAlert)
		authorized.POST("/alerts/:alert_id/reopen", rs.ReopenAlert)

		authorized.GET("/summary", rs.GetSummary)
		authorized.GET("/live", rs.LiveStream)

		authorized.POST("/users", rs.CreateUser)
	}
}
