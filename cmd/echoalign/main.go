package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marbio/echoalign/internal/align"
	"github.com/marbio/echoalign/internal/config"
	"github.com/marbio/echoalign/internal/logging"
	"github.com/marbio/echoalign/internal/merge"
	"github.com/marbio/echoalign/internal/survey"
	"github.com/marbio/echoalign/internal/track"
)

type pipelineStats struct {
	RunID        string             `json:"run_id"`
	TrackIngest  track.IngestStats  `json:"track_ingest"`
	Clean        track.Stats        `json:"clean"`
	SurveyIngest survey.IngestStats `json:"survey_ingest"`
	LayerRecords int                `json:"layer_records"`
	Align        align.Stats        `json:"align"`
	Merge        merge.Stats        `json:"merge"`
	Duration     time.Duration      `json:"processing_time_ms"`
}

func main() {
	cfg := config.Load()

	var (
		trackFile  = flag.String("track", "", "Input track fix CSV (schema A)")
		surveyFile = flag.String("survey", "", "Input acoustic survey CSV (schema B)")
		outputFile = flag.String("o", "", "Output enriched CSV (default: <survey>_enriched.csv)")
		trackOut   = flag.String("track-out", "", "Optional cleaned-track CSV with along-track distances")
		layer      = flag.Int("layer", cfg.Layer, "Acoustic layer (depth stratum) to align")
		clamp      = flag.Float64("clamp", cfg.DepthClamp, "Display depth ceiling in meters")
		workers    = flag.Int("workers", cfg.Workers, "Alignment worker goroutines (0 = one per CPU)")
		dryRun     = flag.Bool("dry-run", false, "Show statistics without writing output files")
		showStats  = flag.Bool("stats", false, "Show detailed statistics")
		statsJSON  = flag.Bool("stats-json", false, "Output statistics as JSON")
		version    = flag.Bool("version", false, "Show version information")
	)

	flag.Usage = func() {
		fmt.Printf("echoalign - align a ship trackline against an acoustic survey\n\n")
		fmt.Printf("usage: echoalign -track track.csv -survey survey.csv\n\n")
		fmt.Printf("examples:\n")
		fmt.Printf("  echoalign -track cruise_track.csv -survey sv_export.csv\n")
		fmt.Printf("  echoalign -track track.csv -survey survey.csv -o aligned.csv -clamp 200\n\n")
		fmt.Printf("options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Println("echoalign v1.0.0 - trackline-to-survey alignment")
		os.Exit(0)
	}

	if *trackFile == "" || *surveyFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *outputFile == "" {
		ext := filepath.Ext(*surveyFile)
		base := strings.TrimSuffix(*surveyFile, ext)
		*outputFile = base + "_enriched" + ext
	}

	logger, logFile := logging.New(cfg.LogFile)
	if logFile != nil {
		defer logFile.Close()
	}

	stats := pipelineStats{RunID: uuid.NewString()}
	started := time.Now()
	logger.Info("starting alignment run", "run_id", stats.RunID, "track", *trackFile, "survey", *surveyFile)

	fixes, trackIngest, err := track.ReadFixes(*trackFile)
	if err != nil {
		logger.Error("track ingest failed", "error", err)
		os.Exit(1)
	}
	stats.TrackIngest = trackIngest
	logger.Info("track ingested", "rows", trackIngest.Rows, "malformed", trackIngest.Malformed)

	cleaned := track.Clean(fixes, track.DefaultConfig())
	stats.Clean = cleaned.Stats
	logger.Info("track cleaned",
		"points", cleaned.Stats.CleanPoints,
		"dropped_status", cleaned.Stats.DroppedStatus,
		"dropped_coords", cleaned.Stats.DroppedCoords,
		"track_km", cleaned.Stats.TotalDistanceM/1000)

	records, surveyIngest, err := survey.ReadRecords(*surveyFile)
	if err != nil {
		logger.Error("survey ingest failed", "error", err)
		os.Exit(1)
	}
	stats.SurveyIngest = surveyIngest
	logger.Info("survey ingested", "rows", surveyIngest.Rows, "no_fix", surveyIngest.NoFix, "malformed", surveyIngest.Malformed)

	layerRecords := survey.FilterLayer(records, *layer)
	stats.LayerRecords = len(layerRecords)

	index, err := survey.NewIndex(layerRecords)
	if err != nil {
		logger.Error("interval index failed", "layer", *layer, "error", err)
		os.Exit(1)
	}
	logger.Info("interval index built", "layer", *layer, "intervals", index.Len())

	aggregates, alignStats := align.Align(cleaned.Points, index, align.Config{Workers: *workers})
	stats.Align = alignStats
	logger.Info("track aligned",
		"matched", alignStats.MatchedPoints,
		"unmatched", alignStats.UnmatchedPoints,
		"intervals", alignStats.Intervals)

	enriched, mergeStats, err := merge.Merge(layerRecords, aggregates, merge.Config{DepthCeiling: *clamp})
	if err != nil {
		logger.Error("merge failed", "error", err)
		os.Exit(1)
	}
	stats.Merge = mergeStats
	stats.Duration = time.Since(started)

	if *showStats || *statsJSON || *dryRun {
		if *statsJSON {
			data, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling stats: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
		} else {
			printStats(stats)
		}
	}

	if *dryRun {
		logger.Info("dry run completed, no files written")
		os.Exit(0)
	}

	if *trackOut != "" {
		if err := track.WriteTrack(*trackOut, cleaned.Points); err != nil {
			logger.Error("writing cleaned track failed", "error", err)
			os.Exit(1)
		}
		logger.Info("cleaned track written", "path", *trackOut)
	}

	if err := merge.WriteEnriched(*outputFile, enriched); err != nil {
		logger.Error("writing enriched table failed", "error", err)
		os.Exit(1)
	}

	logger.Info("alignment run completed",
		"run_id", stats.RunID,
		"output", *outputFile,
		"records", mergeStats.Records,
		"matched", mergeStats.Matched,
		"took", stats.Duration)
}

func printStats(stats pipelineStats) {
	fmt.Printf("\nAlignment statistics (run %s)\n", stats.RunID)
	fmt.Printf("  Track:  %d rows, %d malformed, %d clean points, %.2f km\n",
		stats.TrackIngest.Rows, stats.TrackIngest.Malformed,
		stats.Clean.CleanPoints, stats.Clean.TotalDistanceM/1000)
	fmt.Printf("  Survey: %d rows, %d no-fix, %d malformed, %d in layer\n",
		stats.SurveyIngest.Rows, stats.SurveyIngest.NoFix,
		stats.SurveyIngest.Malformed, stats.LayerRecords)
	fmt.Printf("  Align:  %d matched, %d unmatched, %d intervals with depth\n",
		stats.Align.MatchedPoints, stats.Align.UnmatchedPoints, stats.Align.Intervals)
	fmt.Printf("  Merge:  %d records, %d with mean depth\n",
		stats.Merge.Records, stats.Merge.Matched)
	fmt.Printf("  Time:   %v\n", stats.Duration)
}
