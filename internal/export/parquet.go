package export

import (
	"math"
	"os"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"gps_route_stats/internal/pipeline"
)

type pointRow struct {
	Index      int64   `parquet:"name=index, type=INT64"`
	Lat        float64 `parquet:"name=lat, type=DOUBLE"`
	Lon        float64 `parquet:"name=lon, type=DOUBLE"`
	ElevationM float64 `parquet:"name=elevation_m, type=DOUBLE"`
	DistanceKm float64 `parquet:"name=distance_km, type=DOUBLE"`
}

// MarshalPointsParquet encodes the display points as a SNAPPY-compressed
// Parquet file. The index column holds each point's original track index and
// missing elevation is written as NaN.
func MarshalPointsParquet(points []pipeline.DisplayPoint) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(pointRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, p := range points {
		row := pointRow{
			Index:      int64(p.Index),
			Lat:        p.Lat,
			Lon:        p.Lon,
			ElevationM: valueOrNaN(p.Elevation),
			DistanceKm: p.DistanceKm,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

func WritePointsParquetFile(path string, points []pipeline.DisplayPoint) error {
	data, err := MarshalPointsParquet(points)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
