package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/swimtab/internal/testmeets"
	"github.com/okian/swimtab/pkg/logger"
)

const defaultTimeout = 10 * time.Minute

func main() {
	var (
		files    = flag.Int("files", 100, "Number of meet files to generate")
		athletes = flag.Int("athletes", 2000, "Number of athletes shared by the meets")
		clubs    = flag.Int("clubs", 40, "Number of clubs")
		seed     = flag.Int64("seed", testmeets.DefaultSeed, "Random seed")
		archive  = flag.Int("archive-every", 5, "Write every Nth file as a .lxf archive")
		workers  = flag.Int("workers", runtime.NumCPU(), "Number of concurrent parse workers")
		sqlite   = flag.Bool("sqlite", false, "Also write a SQLite database")
		dir      = flag.String("dir", "", "Work directory (default: a temporary directory)")
		keep     = flag.Bool("keep", false, "Keep the temporary work directory")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	_, err := testmeets.Run(ctx, testmeets.RunConfig{
		Fixtures: testmeets.Config{
			Files:        *files,
			Athletes:     *athletes,
			Clubs:        *clubs,
			Seed:         *seed,
			ArchiveEvery: *archive,
		},
		WorkDir: *dir,
		Workers: *workers,
		SQLite:  *sqlite,
		Keep:    *keep,
	})
	if err != nil {
		os.Stderr.WriteString("check failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
