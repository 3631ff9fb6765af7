package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/jobwbs/internal/db"
	"github.com/alexanderramin/jobwbs/internal/domain"
	"github.com/alexanderramin/jobwbs/internal/repository"
)

type sampleItem struct {
	serviceLine, task, subtask string
	qty                        float64
	uom                        string
	contract                   domain.ContractType
	fpaType                    domain.FPAType
	fpaSubtype                 domain.FPASubtype
	revenue, hours, cost       float64
}

var sampleJobs = []domain.Job{
	{JobNumber: "20725", BranchNumber: "0508", JobName: "SCVWA Filters", SalesforceID: "100000"},
	{JobNumber: "20726", BranchNumber: "0508", JobName: "SCVWA Filters", SalesforceID: "100001"},
	{JobNumber: "20727", BranchNumber: "0509", JobName: "Industrial Coating", SalesforceID: "100002"},
	{JobNumber: "20728", BranchNumber: "0510", JobName: "Pipeline Protection", SalesforceID: "100003"},
	{JobNumber: "20729", BranchNumber: "0511", JobName: "Tank Coating", SalesforceID: "100004"},
}

var sampleItems = map[string][]sampleItem{
	"20725": {
		{"Coatings", "1st Fl Coating", "1st Fl Small Pipe", 5000, "Linear Ft", domain.ContractOriginal, domain.FPAServices, domain.FPALabor, 20000, 100, 10000},
		{"Coatings", "2nd Fl Coating", "2nd Fl Storm Pipe", 300, "Linear Ft", domain.ContractChangeOrder, domain.FPAServices, domain.FPALabor, 10000, 65, 6500},
		{"Coatings", "3rd Fl Coating", "3rd Fl Large Pipe", 800, "Linear Ft", domain.ContractOriginal, domain.FPAServices, domain.FPALabor, 15000, 80, 8000},
		{"Materials", "Surface Prep", "Cleaning", 1, "Lot", domain.ContractOriginal, domain.FPAMaterials, domain.FPAOther, 5000, 20, 3000},
		{"Equipment", "Scaffolding", "Setup", 1, "Lot", domain.ContractOriginal, domain.FPAEquipment, domain.FPAOther, 8000, 40, 4000},
	},
	"20726": {
		{"Coatings", "Primary Coating", "Main Structure", 2000, "Sq Ft", domain.ContractOriginal, domain.FPAServices, domain.FPALabor, 25000, 120, 12000},
		{"Coatings", "Secondary Coating", "Support Beams", 500, "Sq Ft", domain.ContractChangeOrder, domain.FPAServices, domain.FPALabor, 12000, 60, 6000},
		{"Materials", "Primer", "Application", 1, "Lot", domain.ContractOriginal, domain.FPAMaterials, domain.FPAOther, 3000, 15, 2000},
	},
}

type seedService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewSeedService writes the sample jobs and their WBS in one transaction.
func NewSeedService(uow db.UnitOfWork, observers ...UseCaseObserver) SeedService {
	return &seedService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Seed registers the sample jobs. A job that already exists is skipped
// together with its sample items, so seeding twice changes nothing.
func (s *seedService) Seed(ctx context.Context) (result *SeedResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if result != nil {
			fields["jobs_created"] = result.JobsCreated
			fields["items_written"] = result.ItemsWritten
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "seed",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	res := &SeedResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txJobs := repository.NewSQLiteJobRepo(tx)
		txItems := repository.NewSQLiteLineItemRepo(tx, nil)

		for i := range sampleJobs {
			job := sampleJobs[i]
			_, err := txJobs.Get(ctx, job.JobNumber)
			if err == nil {
				res.JobsSkipped = append(res.JobsSkipped, job.JobNumber)
				continue
			}
			if !errors.Is(err, domain.ErrJobNotFound) {
				return err
			}
			if err := txJobs.Create(ctx, &job); err != nil {
				return fmt.Errorf("creating sample job %s: %w", job.JobNumber, err)
			}
			res.JobsCreated++

			samples := sampleItems[job.JobNumber]
			if len(samples) == 0 {
				continue
			}
			items := make([]*domain.LineItem, 0, len(samples))
			for _, si := range samples {
				items = append(items, &domain.LineItem{
					JobNumber:       job.JobNumber,
					ServiceLine:     si.serviceLine,
					WBSTask:         si.task,
					WBSSubtask:      si.subtask,
					Qty:             si.qty,
					UnitOfMeasure:   si.uom,
					ContractVsCO:    si.contract,
					FPAType:         si.fpaType,
					FPASubtype:      si.fpaSubtype,
					BudgetedRevenue: si.revenue,
					BudgetedHours:   si.hours,
					BudgetedCost:    si.cost,
				})
			}
			n, err := txItems.ReplaceForJob(ctx, job.JobNumber, items)
			if err != nil {
				return fmt.Errorf("writing sample wbs for %s: %w", job.JobNumber, err)
			}
			res.ItemsWritten += n
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seeding sample data: %w", err)
	}
	return res, nil
}
