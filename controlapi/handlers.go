package controlapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// statusResponse is the GET /status body: the clock-contract fields
// (§6) plus this server's pause/stop flags.
type statusResponse struct {
	Frame       int64   `json:"frame"`
	SimTimeSecs float64 `json:"sim_time_secs"`
	RealFPS     float64 `json:"real_fps"`
	Paused      bool    `json:"paused"`
	Stopped     bool    `json:"stopped"`
}

func (s *Server) registerRoutes() {
	s.router.POST("/pause", s.handlePause)
	s.router.POST("/resume", s.handleResume)
	s.router.POST("/stop", s.handleStop)
	s.router.GET("/status", s.handleStatus)
}

func (s *Server) handlePause(c *gin.Context) {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"paused": true})
}

func (s *Server) handleResume(c *gin.Context) {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"paused": false})
}

func (s *Server) handleStop(c *gin.Context) {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"stopped": true})
}

func (s *Server) handleStatus(c *gin.Context) {
	stats := s.eng.Stats()

	s.mu.Lock()
	resp := statusResponse{
		Frame:       stats.Frame,
		SimTimeSecs: stats.SimTime.Seconds(),
		RealFPS:     stats.RealFPS,
		Paused:      s.paused,
		Stopped:     s.stopped,
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, resp)
}
