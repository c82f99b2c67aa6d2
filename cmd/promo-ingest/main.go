// Command promo-ingest loads gzip-compressed promo code lists into the
// promo_codes table. Files are streamed concurrently; a bloom filter keeps
// memory bounded while skipping duplicate codes (the upsert is idempotent,
// so a rare false positive only costs one skipped rewrite).
package main

import (
	"bufio"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/XVaheBabayanX/OnlineStore/internal/promo"
	"github.com/XVaheBabayanX/OnlineStore/internal/storage/postgres"
)

const (
	bloomCapacity = 10_000_000
	bloomFPR      = 0.001
	minCodeLen    = 8
	maxCodeLen    = 10
	progressEvery = 1_000_000
)

// namedRule maps well-known promo codes onto their rules; every other code
// gets defaultRule.
type namedRule struct {
	ruleType    promo.Type
	value       string
	description string
}

var namedRules = map[string]namedRule{
	"HAPPYHRS": {ruleType: promo.TypePercentage, value: "18", description: "Happy Hours: 18% off"},
	"FIFTYOFF": {ruleType: promo.TypePercentage, value: "50", description: "50% off entire order"},
	"GNULINUX": {ruleType: promo.TypePercentage, value: "15", description: "Open source discount: 15% off"},
	"OVER9000": {ruleType: promo.TypeFixed, value: "9", description: "$9 off your order"},
}

var defaultRule = namedRule{
	ruleType:    promo.TypePercentage,
	value:       "10",
	description: "Valid promo code: 10% off",
}

func main() {
	var (
		dataDir     string
		databaseURL string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing *.gz promo code files")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataDir, databaseURL); err != nil {
		slog.Error("promo ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("promo ingest completed successfully")
}

func run(ctx context.Context, dataDir, databaseURL string) error {
	files, err := filepath.Glob(filepath.Join(dataDir, "*.gz"))
	if err != nil {
		return errors.Wrap(err, "glob data dir")
	}
	if len(files) == 0 {
		return errors.Errorf("no *.gz files in %s", dataDir)
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	repo := postgres.NewPromoRepository(pool)

	// Producers stream the files concurrently; the single consumer owns the
	// bloom filter and the database writes.
	codes := make(chan string, 1024)

	g, ctx := errgroup.WithContext(ctx)
	for _, f := range files {
		g.Go(streamFile(ctx, f, codes))
	}
	go func() {
		_ = g.Wait()
		close(codes)
	}()

	seen := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
	var written uint64
	for code := range codes {
		if seen.TestOrAddString(code) {
			continue
		}

		if err := repo.Upsert(ctx, ruleFor(code)); err != nil {
			return errors.Wrapf(err, "upsert promo code %s", code)
		}

		written++
		if written%progressEvery == 0 {
			slog.Info("ingest progress", slog.Uint64("written", written))
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("ingest complete", slog.Uint64("written", written))
	return nil
}

// streamFile reads one gzip file line by line and sends length-valid codes
// to out.
func streamFile(ctx context.Context, path string, out chan<- string) func() error {
	return func() error {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, "open %s", path)
		}
		defer func() { _ = f.Close() }()

		gz, err := pgzip.NewReader(f)
		if err != nil {
			return errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()

		scanner := bufio.NewScanner(gz)
		for scanner.Scan() {
			code := scanner.Text()
			if len(code) < minCodeLen || len(code) > maxCodeLen {
				continue
			}
			select {
			case out <- code:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := scanner.Err(); err != nil {
			return errors.Wrapf(err, "scan %s", path)
		}
		return nil
	}
}

// ruleFor builds the promo rule for a code.
func ruleFor(code string) promo.Rule {
	r, ok := namedRules[code]
	if !ok {
		r = defaultRule
	}
	return promo.Rule{
		Code:        code,
		Type:        r.ruleType,
		Value:       decimal.RequireFromString(r.value),
		Description: r.description,
		Active:      true,
	}
}
