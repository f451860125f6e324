package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cecil-earth/cecil-go/pkg/fileutil"
	"github.com/cecil-earth/cecil-go/pkg/humanfmt"
	"github.com/cecil-earth/cecil-go/pkg/s3fetch"
)

// runLoad fetches a subscription's files and writes the concatenated frame
// as CSV to --out, or to stdout.
func runLoad(ctx context.Context, cfg Config, args []string) error {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	subscriptionID := fs.String("subscription", "", "subscription id")
	outPath := fs.String("out", "", "output CSV path (default stdout)")
	concurrency := fs.Int("concurrency", 0, "parallel fragment downloads")
	attempts := fs.Int("attempts", 0, "download attempts per fragment")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *subscriptionID == "" {
		return errors.New("--subscription is required")
	}

	loaderCfg := s3fetch.DefaultLoaderConfig()
	if *concurrency > 0 {
		loaderCfg.Concurrency = *concurrency
	}
	if *attempts > 0 {
		loaderCfg.MaxAttempts = *attempts
	}

	client, err := cfg.newClient()
	if err != nil {
		return err
	}

	start := time.Now()
	df, err := client.LoadDataframeWithConfig(ctx, *subscriptionID, loaderCfg)
	if err != nil {
		return err
	}

	var written int64
	if *outPath == "" {
		cw := &countingWriter{w: os.Stdout}
		if err := df.WriteCSV(cw); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		written = cw.n
	} else {
		// Temp file in the output directory so the final rename is atomic.
		err := fileutil.WriteTmpThenMove(filepath.Dir(*outPath), *outPath, func(tmpPath string) error {
			f, err := os.Create(tmpPath)
			if err != nil {
				return err
			}
			cw := &countingWriter{w: f}
			if err := df.WriteCSV(cw); err != nil {
				f.Close()
				return err
			}
			written = cw.n
			return f.Close()
		})
		if err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	elapsed := time.Since(start)
	fmt.Fprintf(os.Stderr, "loaded %s rows (%s) in %s, %s\n",
		humanfmt.Count(int64(df.NumRows())), humanfmt.Bytes(written),
		humanfmt.Duration(elapsed), humanfmt.Throughput(written, elapsed))
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
