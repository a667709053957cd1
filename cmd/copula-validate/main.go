// Command copula-validate runs Monte-Carlo validation of the family
// selector: datasets sampled from a known copula at a known tau are
// classified, and the selection breakdown is stored in sqlite and
// rendered as charts.
//
// A single run checks one (family, tau) point; -sweep walks the
// family's whole tau grid and additionally writes selection-rate
// curves (HTML and PNG).
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/banshee-data/copula.report/internal/config"
	"github.com/banshee-data/copula.report/internal/copula"
	"github.com/banshee-data/copula.report/internal/db"
	"github.com/banshee-data/copula.report/internal/report"
	"github.com/banshee-data/copula.report/internal/validate"
)

var (
	familyName    = flag.String("family", "Gaussian", "Reference copula family to sample from")
	tau           = flag.Float64("tau", 0.4, "Kendall's tau of the reference copula (single run)")
	sweep         = flag.Bool("sweep", false, "Sweep the family's whole tau grid instead of a single run")
	seed          = flag.Uint64("seed", 1, "PRNG seed")
	configPath    = flag.String("config", "", "Optional JSON config file")
	dbPath        = flag.String("db", "validation_runs.db", "Path to the results database (empty to skip persistence)")
	migrationsDir = flag.String("migrations", "internal/db/migrations", "Path to the migrations directory")
	outDir        = flag.String("out", "reports", "Directory for chart output")
)

func main() {
	flag.Parse()

	family, err := copula.ParseFamily(*familyName)
	if err != nil {
		log.Fatalf("Invalid family: %v", err)
	}

	var cfg *config.Config
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	selector, err := cfg.BuildSelector()
	if err != nil {
		log.Fatalf("Invalid selector config: %v", err)
	}
	trials, sampleSize, dims, tauStep := cfg.HarnessValues()

	trialCfg := validate.TrialConfig{
		Family:     family,
		Tau:        *tau,
		SampleSize: sampleSize,
		Dims:       dims,
		Trials:     trials,
		Selector:   selector,
	}
	src := rand.NewPCG(*seed, *seed)

	var store *db.DB
	if *dbPath != "" {
		store, err = db.NewDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer store.Close()
		if err := store.MigrateUp(*migrationsDir); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}

	if *sweep {
		runSweep(trialCfg, tauStep, src, store)
		return
	}
	runOnce(trialCfg, src, store)
}

func runOnce(cfg validate.TrialConfig, src rand.Source, store *db.DB) {
	b, err := validate.Run(cfg, src)
	if err != nil {
		log.Fatalf("Validation run failed: %v", err)
	}

	for _, f := range cfg.Selector.Families {
		log.Printf("%v: %d/%d (%.1f%%)", f, b.Counts[f], cfg.Trials, 100*b.Rate(f))
	}

	persist(store, b)

	piePath := filepath.Join(*outDir, fmt.Sprintf("breakdown_%v_tau%.2f.html", cfg.Family, cfg.Tau))
	f, err := os.Create(piePath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", piePath, err)
	}
	defer f.Close()
	if err := report.WriteBreakdownPie(f, b); err != nil {
		log.Fatalf("Failed to render breakdown chart: %v", err)
	}
	log.Printf("Wrote %s", piePath)
}

func runSweep(cfg validate.TrialConfig, tauStep float64, src rand.Source, store *db.DB) {
	points, err := validate.Sweep(cfg, tauStep, src)
	if err != nil {
		log.Fatalf("Validation sweep failed: %v", err)
	}
	for _, p := range points {
		persist(store, p.Breakdown)
	}

	htmlPath := filepath.Join(*outDir, fmt.Sprintf("sweep_%v.html", cfg.Family))
	f, err := os.Create(htmlPath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", htmlPath, err)
	}
	defer f.Close()
	if err := report.WriteSweepLine(f, cfg.Family, points, cfg.Selector.Families); err != nil {
		log.Fatalf("Failed to render sweep chart: %v", err)
	}

	pngPath := filepath.Join(*outDir, fmt.Sprintf("sweep_%v.png", cfg.Family))
	if err := report.SaveSweepPNG(pngPath, cfg.Family, points, cfg.Selector.Families); err != nil {
		log.Fatalf("Failed to render sweep plot: %v", err)
	}
	log.Printf("Wrote %s and %s", htmlPath, pngPath)
}

func persist(store *db.DB, b *validate.Breakdown) {
	if store == nil {
		return
	}
	run := db.ValidationRun{
		RunID:      b.RunID.String(),
		Family:     b.Config.Family.String(),
		Tau:        b.Config.Tau,
		SampleSize: b.Config.SampleSize,
		Dims:       b.Config.Dims,
		GridK:      b.Config.Selector.K,
		Trials:     b.Config.Trials,
	}
	results := make([]db.ValidationResult, 0, len(b.Counts))
	for f, c := range b.Counts {
		results = append(results, db.ValidationResult{
			RunID:          run.RunID,
			SelectedFamily: f.String(),
			Count:          c,
		})
	}
	if err := store.RecordRun(run, results); err != nil {
		log.Printf("Failed to persist run %s: %v", run.RunID, err)
	}
}
