// caseledger-seed migrates both stores and loads a worked example case, so a
// local caseledger run has data to fetch without pointing at a live
// environment.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"caseledger/internal/cli"
	"caseledger/internal/domain"
	"caseledger/internal/log"
	"caseledger/internal/mapper"
	"caseledger/internal/storage"
)

func main() {
	ccd := flag.String("ccd", "1111222233334444", "CCD case number to seed")
	flag.Parse()

	logger := cli.SetupLogger(log.ComponentSeed)
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	opts := cli.StorageOptions(cfg)
	if err := storage.RunMigrations(opts); err != nil {
		logger.Error("Failed to run migrations",
			log.FieldOperation, log.OpMigrate, log.FieldError, err)
		os.Exit(1)
	}

	set := mapper.ToDatabase(sampleCase(*ccd))

	validation := mapper.ValidateEntitySet(set)
	if !validation.Valid {
		flat := validation.Flatten()
		logger.Error("Seed data failed validation",
			log.FieldOperation, log.OpValidate,
			log.FieldErrorCount, len(flat.Errors),
			log.FieldWarningCount, len(flat.Warnings),
			"validation", validation)
		os.Exit(1)
	}

	stores := cli.OpenStores(logger, cfg)
	defer stores.Close()

	ctx := context.Background()
	if err := stores.Payments.SeedEntitySet(ctx, set); err != nil {
		logger.Error("Failed to seed payments store", log.FieldError, err)
		os.Exit(1)
	}
	if err := stores.Refunds.SeedRefunds(ctx, set.Refunds); err != nil {
		logger.Error("Failed to seed refunds store", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Seeded stores",
		log.FieldOperation, log.OpSeed,
		log.FieldCCDCaseNumber, *ccd,
		log.FieldLinkCount, len(set.PaymentFeeLinks),
		log.FieldFeeCount, len(set.Fees),
		log.FieldPaymentCount, len(set.Payments),
		log.FieldRefundCount, len(set.Refunds))
}

// sampleCase builds a case with two service requests: one fully paid with a
// partial refund, one with a remission and an outstanding balance.
func sampleCase(ccd string) *domain.Case {
	now := time.Now().UTC().Truncate(time.Second)

	c := domain.NewCase(ccd)

	sr1 := domain.NewServiceRequest("RC-1111-2222-3333-4444", ccd)
	sr1.ServiceName = "Divorce"
	sr1.CreatedAt = &now

	fee1 := domain.NewFee("FEE0002", "4", 593)
	sr1.AddFee(fee1)

	payment := domain.NewPayment("RC-1111-2222-3333-4445", 593)
	payment.Status = "success"
	payment.Method = "payment by account"
	payment.Channel = "online"
	payment.PBANumber = "PBA0066752"
	payment.AddFeeAllocation("FEE0002", 593)

	refund := domain.NewRefund("RF-1627-5070-9329-4405", 100, "Amended claim")
	refund.Status = "Accepted"
	refund.PaymentReference = payment.Reference
	payment.AddRefund(refund)

	sr1.AddPayment(payment)
	c.AddServiceRequest(sr1)

	sr2 := domain.NewServiceRequest("RC-5555-6666-7777-8888", ccd)
	sr2.ServiceName = "Divorce"
	sr2.CreatedAt = &now

	fee2 := domain.NewFee("FEE0226", "1", 232)
	fee2.AddRemission(domain.NewRemission("HWF-A1B-23C", 50))
	sr2.AddFee(fee2)
	c.AddServiceRequest(sr2)

	return c
}
