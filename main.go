// Command copula.report serves the copula family-selection engine over
// HTTP, backed by a sqlite database of Monte-Carlo validation runs.
//
// The -sanity flag runs a signature self-check instead: the Gumbel
// signature at Kendall's tau 0.4 on the default 4x4 grid must carry
// total probability mass 1.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"

	"github.com/banshee-data/copula.report/api"
	"github.com/banshee-data/copula.report/internal/copula"
	"github.com/banshee-data/copula.report/internal/db"
	"github.com/banshee-data/copula.report/internal/mnsig"
)

const dbFile = "validation_runs.db"

var (
	listen        = flag.String("listen", ":8080", "Listen address")
	dbPath        = flag.String("db", dbFile, "Path to the results database")
	migrationsDir = flag.String("migrations", "internal/db/migrations", "Path to the migrations directory")
	sanity        = flag.Bool("sanity", false, "Run the signature mass self-check and exit")
)

func main() {
	flag.Parse()

	if *sanity {
		if err := sanityCheck(); err != nil {
			log.Fatalf("Sanity check failed: %v", err)
		}
		fmt.Println("CopulaMNSig total probability check passed!")
		os.Exit(0)
	}

	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if err := database.MigrateUp(*migrationsDir); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	server := api.NewServer(database)
	log.Printf("Listening on %s", *listen)
	if err := http.ListenAndServe(*listen, server.ServeMux()); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}

func sanityCheck() error {
	sig, err := mnsig.Signature(copula.Gumbel, copula.Kendall(0.4), mnsig.DefaultK)
	if err != nil {
		return err
	}
	total := 0.0
	for _, v := range sig {
		total += v
	}
	if math.Abs(total-1) > 1e-6 {
		return fmt.Errorf("signature mass %v, want 1", total)
	}
	return nil
}
