package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"caseledger/internal/amqp"
	"caseledger/internal/cli"
	"caseledger/internal/config"
	"caseledger/internal/dbmodel"
	"caseledger/internal/domain"
	"caseledger/internal/log"
	"caseledger/internal/merge"
)

// caseOutput is the default report: the rebuilt domain graph plus its
// aggregated totals. A single case prints as one object, multiple cases as a
// list with a case-count wrapper.
type caseOutput struct {
	Case    *domain.Case       `json:"case"`
	Summary domain.CaseSummary `json:"summary"`
}

type multiCaseOutput struct {
	Cases   []*domain.Case   `json:"cases"`
	Summary multiCaseSummary `json:"summary"`
}

type multiCaseSummary struct {
	CaseCount     int                  `json:"caseCount"`
	CaseSummaries []domain.CaseSummary `json:"caseSummaries"`
}

func main() {
	ccd := flag.String("ccd", "", "CCD case number to fetch (required)")
	summaryOnly := flag.Bool("summary", false, "print the cross-source merge report instead of the case graph")
	publish := flag.Bool("publish", false, "publish each case summary to AMQP")
	flag.Parse()

	logger := cli.SetupLogger(log.ComponentApp)
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	if *ccd == "" {
		fmt.Fprintln(os.Stderr, "usage: caseledger -ccd <case number> [-summary] [-publish]")
		os.Exit(1)
	}

	logger.Info("Starting case ledger run",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.StorageBackend,
		log.FieldCCDCaseNumber, *ccd)

	stores := cli.OpenStores(logger, cfg)
	defer stores.Close()

	ctx := context.Background()

	// The two stores are independent; fetch them in parallel.
	start := time.Now()
	var (
		paymentData *dbmodel.PaymentData
		refundData  *dbmodel.RefundData
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		paymentData, err = stores.Payments.FetchCaseData(gctx, *ccd)
		return err
	})
	g.Go(func() error {
		var err error
		refundData, err = stores.Refunds.FetchCaseData(gctx, *ccd)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to fetch case data",
			log.NewFields().WithOperation(log.OpFetch).WithCase(*ccd).WithError(err).ToSlice()...)
		os.Exit(1)
	}

	fetched := log.NewFields().
		WithOperation(log.OpFetch).
		WithCase(*ccd).
		WithRowCounts(len(paymentData.PaymentFeeLinks), len(paymentData.Fees),
			len(paymentData.Payments), len(refundData.Refunds))
	fetched[log.FieldDuration] = time.Since(start).Milliseconds()
	logger.Info("Fetched case data", fetched.ToSlice()...)

	if *summaryOnly {
		report := merge.MergeAll(paymentData, refundData)
		logger.Info("Merged cross-source report",
			log.FieldOperation, log.OpMerge,
			log.FieldCaseCount, len(report.CCDCaseNumbers))
		printJSON(logger, report)
		return
	}

	mapped := merge.TransformToCase(paymentData, refundData)
	if dropped := mapped.Dropped.Total(); dropped > 0 {
		logger.Warn("Dropped rows with unresolvable parents",
			log.FieldOperation, log.OpTransform,
			log.FieldCCDCaseNumber, *ccd, log.FieldDroppedRows, dropped)
	}

	if len(mapped.Cases) == 0 {
		logger.Error("No case found",
			log.FieldOperation, log.OpTransform, log.FieldCCDCaseNumber, *ccd)
		os.Exit(1)
	}

	var publisher *amqp.Client
	if *publish {
		publisher = newPublisher(logger, cfg)
		defer publisher.Close()
	}

	if c, ok := mapped.Single(); ok {
		printJSON(logger, caseOutput{Case: c, Summary: c.Summary()})
		publishSummary(ctx, logger, publisher, c)
		return
	}

	out := multiCaseOutput{Cases: mapped.Cases}
	out.Summary.CaseCount = len(mapped.Cases)
	for _, c := range mapped.Cases {
		out.Summary.CaseSummaries = append(out.Summary.CaseSummaries, c.Summary())
	}
	printJSON(logger, out)
	for _, c := range mapped.Cases {
		publishSummary(ctx, logger, publisher, c)
	}
}

func newPublisher(logger *log.Logger, cfg *config.Config) *amqp.Client {
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL must be set to publish case summaries")
		os.Exit(1)
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", log.FieldError, err)
		os.Exit(1)
	}
	return client
}

func publishSummary(ctx context.Context, logger *log.Logger, publisher *amqp.Client, c *domain.Case) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishCaseSummary(ctx, c.CCDCaseNumber, c.Summary()); err != nil {
		logger.Error("Failed to publish case summary",
			log.NewFields().WithOperation(log.OpPublish).WithCase(c.CCDCaseNumber).WithError(err).ToSlice()...)
		os.Exit(1)
	}
}

func printJSON(logger *log.Logger, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Error("Failed to marshal output", log.FieldError, err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
