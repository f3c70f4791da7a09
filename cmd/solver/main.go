// Command solver finds a packing of the twelve-piece pentbox puzzle from
// the command line and prints both layers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lmittmann/tint"

	"github.com/pentbox/pentbox/internal/pent"
)

var (
	width    = flag.Int("width", 6, "box width in cells")
	height   = flag.Int("height", 5, "box height in cells")
	shuffle  = flag.Bool("shuffle", false, "randomize the order pieces are tried in")
	seed     = flag.Uint64("seed", 0, "seed for -shuffle, for reproducible runs")
	parallel = flag.Int("parallel", 1, "search top-level splits concurrently")
)

func main() {
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, nil))
	pent.Log = logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	grid := pent.GridParams{Width: *width, Height: *height}
	pieces, err := pent.DefaultPieces(grid)
	if err != nil {
		logger.Error("invalid puzzle", slog.Any("error", err))
		os.Exit(2)
	}

	options := &pent.Options{
		Shuffle:  *shuffle,
		Seed:     *seed,
		Parallel: *parallel,
	}

	start := time.Now()
	solution, err := pent.NewSolver(grid, pieces, options).Solve(ctx)
	elapsed := time.Since(start)

	if errors.Is(err, pent.ErrNoSolution) {
		logger.Error("no solution", slog.String("grid", grid.Seed()),
			slog.Duration("elapsed", elapsed))
		os.Exit(1)
	}
	if err != nil {
		logger.Error("solve aborted", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("solved", slog.String("grid", grid.Seed()),
		slog.Duration("elapsed", elapsed))

	fmt.Println("Layer 1:")
	fmt.Println(solution.LayerArt(0))
	fmt.Println("Layer 2:")
	fmt.Println(solution.LayerArt(1))
}
