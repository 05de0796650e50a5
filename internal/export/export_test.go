package export

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/reader"

	"gps_route_stats/internal/pipeline"
	"gps_route_stats/internal/stats"
	"gps_route_stats/internal/track"
)

func sampleResult() *pipeline.Result {
	avg := 24.5
	return &pipeline.Result{
		Name:   "Lunch Loop",
		Format: track.FormatGPX,
		Telemetry: pipeline.Telemetry{
			DistanceKm:           42.2,
			ElevationGainM:       640,
			HasElevation:         true,
			HasTimestamps:        true,
			PointCount:           1200,
			SimplifiedPointCount: 80,
			Difficulty:           stats.Moderate,
		},
		Statistics: &pipeline.RouteStatistics{
			AvgSpeedKmh: &avg,
			Climbs: []stats.ClimbSegment{
				{StartKm: 3, EndKm: 5, GainM: 120, AvgGradient: 6, Score: 720, Description: "2.0 km at 6.0% (+120 m), km 3.0–5.0"},
			},
		},
		Warnings: []pipeline.Warning{pipeline.WarnNoElevationData},
	}
}

func TestWriteJSON(t *testing.T) {
	rec := NewRecord("rides/lunch.gpx", sampleResult())
	if _, err := uuid.Parse(rec.ID); err != nil {
		t.Fatalf("Expected a uuid id, got %q", rec.ID)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, rec); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if decoded["source"] != "rides/lunch.gpx" || decoded["format"] != "gpx" {
		t.Errorf("Unexpected header fields: %v", decoded)
	}
	tel := decoded["telemetry"].(map[string]any)
	if tel["difficulty"] != "moderate" {
		t.Errorf("Expected textual difficulty, got %v", tel["difficulty"])
	}
	if _, ok := tel["max_elevation_m"]; ok {
		t.Errorf("Nil elevation must be omitted")
	}
	st := decoded["statistics"].(map[string]any)
	if _, ok := st["moving_time_min"]; ok {
		t.Errorf("Nil moving time must be omitted")
	}
	climb := st["climbs"].([]any)[0].(map[string]any)
	if _, ok := climb["Score"]; ok {
		t.Errorf("Climb score must not be persisted")
	}
	if _, ok := decoded["points"]; ok {
		t.Errorf("Points must be omitted unless set")
	}
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lunch.json")
	rec := NewRecord("rides/lunch.gpx", sampleResult())
	if err := WriteJSONFile(path, rec); err != nil {
		t.Fatalf("WriteJSONFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Invalid JSON on disk: %v", err)
	}
	if decoded.ID != rec.ID {
		t.Errorf("Expected id %q, got %q", rec.ID, decoded.ID)
	}

	if err := WriteJSONFile(filepath.Join(t.TempDir(), "missing", "x.json"), rec); err == nil {
		t.Errorf("Expected error for a missing directory")
	}
}

func TestNewRecordUniqueIDs(t *testing.T) {
	res := sampleResult()
	if NewRecord("a", res).ID == NewRecord("a", res).ID {
		t.Errorf("Expected distinct ids")
	}
}

func TestMarshalPointsParquet(t *testing.T) {
	ele := 812.5
	points := []pipeline.DisplayPoint{
		{Index: 0, Lat: 46.0, Lon: 7.0, Elevation: &ele, DistanceKm: 0},
		{Index: 57, Lat: 46.1, Lon: 7.1, DistanceKm: 13.4},
	}

	data, err := MarshalPointsParquet(points)
	if err != nil {
		t.Fatalf("MarshalPointsParquet failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PAR1")) || !bytes.HasSuffix(data, []byte("PAR1")) {
		t.Fatalf("Output is not a parquet file")
	}

	pr, err := reader.NewParquetReader(parquetbuffer.NewBufferFileFromBytes(data), new(pointRow), 1)
	if err != nil {
		t.Fatalf("NewParquetReader failed: %v", err)
	}
	defer pr.ReadStop()

	if n := pr.GetNumRows(); n != 2 {
		t.Fatalf("Expected 2 rows, got %d", n)
	}
	rows := make([]pointRow, 2)
	if err := pr.Read(&rows); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if rows[0].ElevationM != 812.5 || rows[0].Lat != 46.0 {
		t.Errorf("Unexpected first row %+v", rows[0])
	}
	if !math.IsNaN(rows[1].ElevationM) {
		t.Errorf("Expected NaN for missing elevation, got %v", rows[1].ElevationM)
	}
	if rows[1].Index != 57 || rows[1].DistanceKm != 13.4 {
		t.Errorf("Unexpected second row %+v", rows[1])
	}
}
