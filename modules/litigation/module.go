package litigation

import (
	"embed"

	"github.com/courtdesk/courtdesk/modules/litigation/importing"
	"github.com/courtdesk/courtdesk/modules/litigation/infrastructure/persistence"
	"github.com/courtdesk/courtdesk/modules/litigation/presentation/controllers"
	"github.com/courtdesk/courtdesk/modules/litigation/services"
	"github.com/courtdesk/courtdesk/pkg/application"
	"github.com/courtdesk/courtdesk/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/litigation-schema.sql
var migrationFiles embed.FS

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "litigation"
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	caseRepo := persistence.NewCaseRepository()
	hearingRepo := persistence.NewHearingRepository()

	importer := importing.NewImporter(
		caseRepo,
		importing.WithLogger(app.Logger()),
		importing.WithMaxRows(conf.Import.MaxRows),
	)

	app.RegisterServices(
		services.NewCaseService(caseRepo, app.EventPublisher()),
		services.NewHearingService(hearingRepo, caseRepo, app.EventPublisher()),
		services.NewImportService(importer, app.EventPublisher()),
		services.NewStatsService(caseRepo),
	)

	app.RegisterControllers(
		controllers.NewCaseAPIController(app),
		controllers.NewImportAPIController(app),
	)

	app.Migrations().RegisterSchema(&migrationFiles)
	return nil
}
