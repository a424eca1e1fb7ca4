package seriesmanager

import (
	"encoding/json"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

var BuildVersion string

var LaunchTime = time.Now()

type HealthCheck struct {
	store Store
}

func NewHealthCheck(store Store) *HealthCheck {
	return &HealthCheck{
		store: store,
	}
}

type HealthCheckResponse struct {
	OK      bool
	Version string

	OS            string
	NumCPU        int
	NumGoroutines int
	Uptime        string
	GoVersion     string

	StoreSize string

	NumDrivers       int
	NumTracks        int
	NumChampionships int
	NumRounds        int
}

func (h *HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	drivers, _ := h.store.ListDrivers()
	tracks, _ := h.store.ListTracks()
	championships, _ := h.store.ListChampionships()
	rounds, _ := h.store.ListRounds()

	var storeSize string

	if config != nil {
		if stat, err := os.Stat(config.Store.Path); err == nil {
			storeSize = humanize.Bytes(uint64(stat.Size()))
		}
	}

	w.Header().Set("Content-Type", "application/json")

	_ = json.NewEncoder(w).Encode(HealthCheckResponse{
		OK:            true,
		Version:       BuildVersion,
		OS:            runtime.GOOS + "/" + runtime.GOARCH,
		NumCPU:        runtime.NumCPU(),
		NumGoroutines: runtime.NumGoroutine(),
		Uptime:        durafmt.Parse(time.Since(LaunchTime)).LimitFirstN(2).String(),
		GoVersion:     runtime.Version(),

		StoreSize: storeSize,

		NumDrivers:       len(drivers),
		NumTracks:        len(tracks),
		NumChampionships: len(championships),
		NumRounds:        len(rounds),
	})
}
