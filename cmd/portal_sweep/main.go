// Command portal_sweep checks the portal transform and matrix properties over many random
// portal pairs, spreading the cases over a worker pool.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a JSON portal config; defaults are used when empty")
		cases      = flag.Int("cases", 10000, "number of random cases")
		workers    = flag.Int("workers", 8, "worker pool size")
		seed       = flag.Uint64("seed", 1, "random seed")
		tol        = flag.Float64("tol", 1e-5, "round trip tolerance")
		verbose    = flag.Bool("v", false, "log each failure")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	start := time.Now()
	failures := sweep(cfg, *cases, *workers, *seed, *tol)
	common.Logger().Info("portal sweep finished",
		"cases", *cases,
		"failures", len(failures),
		"elapsed", time.Since(start),
	)
	for _, err := range failures {
		common.Logger().Debug("case failed", "err", err)
	}
	if len(failures) > 0 {
		os.Exit(1)
	}
}

// sweep runs n cases on a pool of workers and returns every failure.
func sweep(cfg config.Config, n, workers int, seed uint64, tol float64) []error {
	pool := worker.NewDynamicWorkerPool(max(workers, 1), 256, 1*time.Second)

	var (
		mu       sync.Mutex
		failures []error
		wg       sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		id := i
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				err := newSweepCase(id, seed, cfg).run(cfg, tol)
				if err != nil {
					mu.Lock()
					failures = append(failures, err)
					mu.Unlock()
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
	return failures
}
