// Command reportctl renders a stored state file as a CSV export or a
// PDF hydration report without running the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/bellsbalance/backend/internal/pdf"
	"github.com/bellsbalance/backend/internal/repository"
	"github.com/bellsbalance/backend/internal/security"
	"github.com/bellsbalance/backend/internal/service"
)

func main() {
	var (
		statePath     = flag.String("state", "bellsbalance_state.json", "path to the state file")
		format        = flag.String("format", "csv", "output format: csv or pdf")
		output        = flag.String("out", "", "output file (default stdout for csv, report.pdf for pdf)")
		encryptionKey = flag.String("key", os.Getenv("STATE_ENCRYPTION_KEY"), "32-byte state encryption key, if the state is sealed")
	)
	flag.Parse()

	logger := zap.NewNop()

	var sealer *security.BlobSealer
	if *encryptionKey != "" {
		var err error
		sealer, err = security.NewBlobSealer([]byte(*encryptionKey))
		if err != nil {
			fail("invalid encryption key: %v", err)
		}
	}

	ctx := context.Background()
	store := repository.NewFileStateStore(*statePath, sealer, logger)
	tracker, err := service.NewTrackerService(ctx, store, logger)
	if err != nil {
		fail("failed to load state: %v", err)
	}

	switch *format {
	case "csv":
		csv := tracker.ExportCSV()
		if *output == "" {
			fmt.Print(csv)
			return
		}
		if err := os.WriteFile(*output, []byte(csv), 0o600); err != nil {
			fail("failed to write %s: %v", *output, err)
		}
	case "pdf":
		reports := service.NewReportService(tracker, pdf.NewGenerator(logger), logger)
		data, err := reports.GenerateReport()
		if err != nil {
			fail("failed to generate report: %v", err)
		}
		path := *output
		if path == "" {
			path = "report.pdf"
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			fail("failed to write %s: %v", path, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	default:
		fail("unknown format %q, expected csv or pdf", *format)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
