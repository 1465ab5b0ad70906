package server

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/arcadia-advisors/intake/internal/database"
)

// SystemHandlers handles system monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	dataDir     string
	startupTime time.Time
	db          *database.DB
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(db *database.DB, dataDir string, log zerolog.Logger) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		dataDir:     dataDir,
		startupTime: time.Now(),
		db:          db,
	}
}

// SystemStatusResponse represents the system status response
type SystemStatusResponse struct {
	Status      string  `json:"status"` // "healthy" or "unhealthy"
	UptimeHours float64 `json:"uptime_hours"`
	CPUPercent  float64 `json:"cpu_percent"`
	RAMPercent  float64 `json:"ram_percent"`
	LastSaved   string  `json:"last_saved,omitempty"`
}

// DatabaseStatsResponse represents database statistics
type DatabaseStatsResponse struct {
	Name          string  `json:"name"`
	Path          string  `json:"path"`
	SizeMB        float64 `json:"size_mb"`
	SnapshotCount int     `json:"snapshot_count"`
	LastChecked   string  `json:"last_checked"`
}

// HandleSystemStatus returns process health plus host CPU and RAM usage
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	status := "healthy"
	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("Database health check failed")
		status = "unhealthy"
	}

	cpuPercent, ramPercent := h.getSystemStats()

	var lastSaved string
	var savedAt sql.NullString
	err := h.db.Conn().QueryRow(`SELECT updated_at FROM household_snapshot WHERE id = 1`).Scan(&savedAt)
	if err != nil && err != sql.ErrNoRows {
		h.log.Warn().Err(err).Msg("Failed to query last snapshot time")
	}
	if savedAt.Valid {
		lastSaved = savedAt.String
	}

	response := SystemStatusResponse{
		Status:      status,
		UptimeHours: time.Since(h.startupTime).Hours(),
		CPUPercent:  cpuPercent,
		RAMPercent:  ramPercent,
		LastSaved:   lastSaved,
	}

	writeJSON(h.log, w, http.StatusOK, response)
}

// HandleDatabaseStats returns snapshot store statistics
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting database stats")

	sizeMB := 0.0
	if info, err := os.Stat(h.db.Path()); err == nil {
		sizeMB = float64(info.Size()) / 1024 / 1024
	}

	var snapshotCount int
	err := h.db.Conn().QueryRow(`SELECT COUNT(*) FROM snapshot_history`).Scan(&snapshotCount)
	if err != nil && err != sql.ErrNoRows {
		h.log.Warn().Err(err).Msg("Failed to count snapshot history")
	}

	response := DatabaseStatsResponse{
		Name:          h.db.Name(),
		Path:          h.db.Path(),
		SizeMB:        sizeMB,
		SnapshotCount: snapshotCount,
		LastChecked:   time.Now().Format(time.RFC3339),
	}

	writeJSON(h.log, w, http.StatusOK, response)
}

// getSystemStats calculates CPU and RAM usage percentages.
// Uses a 100ms sampling interval to avoid blocking the API call.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
