package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := s.getSystemStats()

	response := map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "horizon",
		"system": map[string]interface{}{
			"uptime_hours": time.Since(s.startedAt).Hours(),
			"cpu_percent":  cpuPercent,
			"ram_percent":  ramPercent,
		},
	}

	s.writeJSON(w, http.StatusOK, response)
}

// getSystemStats returns CPU usage since the previous call and RAM usage, in percent
func (s *Server) getSystemStats() (float64, float64) {
	// A zero interval compares against the previous call instead of blocking
	cpuPercent, err := cpu.Percent(0, false)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
