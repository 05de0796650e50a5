// Package export serialises pipeline results for the persistence layer.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"gps_route_stats/internal/pipeline"
	"gps_route_stats/internal/stats"
	"gps_route_stats/internal/track"
)

// Record is the persisted shape of one processed track.
type Record struct {
	ID         string                      `json:"id"`
	Source     string                      `json:"source"`
	Name       string                      `json:"name,omitempty"`
	Format     track.Format                `json:"format"`
	CreatedAt  time.Time                   `json:"created_at"`
	Telemetry  pipeline.Telemetry          `json:"telemetry"`
	Statistics *pipeline.RouteStatistics   `json:"statistics,omitempty"`
	Gradients  *stats.GradientDistribution `json:"gradients,omitempty"`
	Warnings   []pipeline.Warning          `json:"warnings,omitempty"`
	Points     []pipeline.DisplayPoint     `json:"points,omitempty"`
}

// NewRecord wraps res with a fresh id. The simplified points are left out;
// set Points to embed them.
func NewRecord(source string, res *pipeline.Result) Record {
	return Record{
		ID:         uuid.NewString(),
		Source:     source,
		Name:       res.Name,
		Format:     res.Format,
		CreatedAt:  time.Now().UTC(),
		Telemetry:  res.Telemetry,
		Statistics: res.Statistics,
		Gradients:  res.Gradients,
		Warnings:   res.Warnings,
	}
}

func WriteJSON(w io.Writer, rec Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode record %s: %w", rec.ID, err)
	}
	return nil
}

// WriteJSONFile writes rec to path, replacing any existing file.
func WriteJSONFile(path string, rec Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, rec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
