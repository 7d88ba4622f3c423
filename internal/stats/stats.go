package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dooshek/scriptvoice/internal/logger"
	"github.com/dustin/go-humanize"
)

// ProviderStats holds statistics for a specific synthesis provider
type ProviderStats struct {
	TotalSeconds   float64 `json:"total_seconds"`
	NarrationCount int     `json:"narration_count"`
	TotalSegments  int     `json:"total_segments"`
	OutputBytes    int64   `json:"output_bytes"`
}

// Stats holds all narration statistics
type Stats struct {
	Providers map[string]*ProviderStats `json:"providers"`
}

// Narration describes one finished run
type Narration struct {
	Provider    string
	Seconds     float64
	Segments    int
	OutputBytes int64
}

// StatsManager manages narration statistics persistence
type StatsManager struct {
	stats    Stats
	filePath string
	mu       sync.Mutex
}

// NewStatsManager creates a stats manager backed by filePath and loads existing data
func NewStatsManager(filePath string) *StatsManager {
	sm := &StatsManager{
		filePath: filePath,
		stats: Stats{
			Providers: make(map[string]*ProviderStats),
		},
	}

	if err := sm.load(); err != nil {
		logger.Debugf("Could not load stats (will start fresh): %v", err)
	}

	return sm
}

// AddNarration adds a finished narration to statistics and persists immediately
func (sm *StatsManager) AddNarration(n Narration) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ps, exists := sm.stats.Providers[n.Provider]
	if !exists {
		ps = &ProviderStats{}
		sm.stats.Providers[n.Provider] = ps
	}

	ps.TotalSeconds += n.Seconds
	ps.NarrationCount++
	ps.TotalSegments += n.Segments
	ps.OutputBytes += n.OutputBytes

	return sm.save()
}

// GetStats returns a deep copy of current statistics
func (sm *StatsManager) GetStats() Stats {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	statsCopy := Stats{
		Providers: make(map[string]*ProviderStats),
	}
	for provider, ps := range sm.stats.Providers {
		c := *ps
		statsCopy.Providers[provider] = &c
	}
	return statsCopy
}

// Print writes a human readable summary, one provider per line
func (sm *StatsManager) Print(w io.Writer) {
	st := sm.GetStats()
	if len(st.Providers) == 0 {
		fmt.Fprintln(w, "No narrations recorded yet.")
		return
	}

	names := make([]string, 0, len(st.Providers))
	for name := range st.Providers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ps := st.Providers[name]
		fmt.Fprintf(w, "%s: %d narrations, %d segments, %.1f s audio, %s written\n",
			name, ps.NarrationCount, ps.TotalSegments, ps.TotalSeconds, humanize.Bytes(uint64(ps.OutputBytes)))
	}
}

// Reset clears all statistics and persists empty state
func (sm *StatsManager) Reset() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.stats = Stats{
		Providers: make(map[string]*ProviderStats),
	}

	if err := sm.save(); err != nil {
		return fmt.Errorf("failed to save reset stats: %w", err)
	}

	return nil
}

// load reads statistics from disk (internal use)
func (sm *StatsManager) load() error {
	data, err := os.ReadFile(sm.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debugf("Stats file not found, starting fresh: %s", sm.filePath)
			return nil
		}
		return fmt.Errorf("failed to read stats file: %w", err)
	}

	if err := json.Unmarshal(data, &sm.stats); err != nil {
		return fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	if sm.stats.Providers == nil {
		sm.stats.Providers = make(map[string]*ProviderStats)
	}

	logger.Debugf("Loaded stats from %s", sm.filePath)
	return nil
}

// save writes statistics to disk (internal use)
func (sm *StatsManager) save() error {
	dir := filepath.Dir(sm.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create stats directory: %w", err)
	}

	data, err := json.MarshalIndent(sm.stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	// Write atomically by writing to temp file and renaming
	tempFile := sm.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp stats file: %w", err)
	}

	if err := os.Rename(tempFile, sm.filePath); err != nil {
		return fmt.Errorf("failed to rename temp stats file: %w", err)
	}

	logger.Debugf("Saved stats to %s", sm.filePath)
	return nil
}
