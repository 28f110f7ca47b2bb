package services

import (
	"context"
	"time"

	"github.com/courtdesk/courtdesk/modules/litigation/importing"
	"github.com/courtdesk/courtdesk/pkg/composables"
	"github.com/courtdesk/courtdesk/pkg/eventbus"
)

type ImportService struct {
	importer  *importing.Importer
	publisher eventbus.EventBus
}

func NewImportService(importer *importing.Importer, publisher eventbus.EventBus) *ImportService {
	return &ImportService{
		importer:  importer,
		publisher: publisher,
	}
}

// Import runs a whole batch inside one transaction. Row failures roll back
// their own savepoints inside the importer; the commit here lands every
// successful row even when others failed.
func (s *ImportService) Import(ctx context.Context, data []byte, strict bool) (*importing.Outcome, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return nil, err
	}

	outcome, err := composables.InTxResult(ctx, func(txCtx context.Context) (*importing.Outcome, error) {
		return s.importer.ImportBytes(txCtx, data, actor, strict), nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(&importing.CompletedEvent{
		BatchID:   outcome.BatchID,
		Actor:     actor,
		Strict:    strict,
		Success:   outcome.Success,
		Failed:    outcome.Failed,
		Timestamp: time.Now(),
	})
	return outcome, nil
}

// Template returns the downloadable sample workbook.
func (s *ImportService) Template() ([]byte, error) {
	return importing.SampleTemplate()
}
