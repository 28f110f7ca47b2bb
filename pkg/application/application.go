// Package application holds the module registry that wires services,
// controllers, and schema migrations together at process start.
package application

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/courtdesk/courtdesk/pkg/eventbus"
)

// Controller registers a set of routes on the shared router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module contributes services, controllers, and schema to the application.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	RegisterControllers(controllers ...Controller)
	Controllers() []Controller
	Migrations() *MigrationRegistry
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	Pool() *pgxpool.Pool
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:       opts.Pool,
		eventBus:   opts.EventBus,
		logger:     opts.Logger,
		services:   map[reflect.Type]interface{}{},
		migrations: &MigrationRegistry{},
	}
}

type application struct {
	pool        *pgxpool.Pool
	eventBus    eventbus.EventBus
	logger      *logrus.Logger
	services    map[reflect.Type]interface{}
	controllers []Controller
	migrations  *MigrationRegistry
}

func (a *application) RegisterServices(services ...interface{}) {
	for _, svc := range services {
		a.services[reflect.TypeOf(svc).Elem()] = svc
	}
}

// Service returns the registered instance whose type matches the given
// zero-value sample, e.g. app.Service(services.CaseService{}).
func (a *application) Service(service interface{}) interface{} {
	svc, ok := a.services[reflect.TypeOf(service)]
	if !ok {
		panic(fmt.Sprintf("service %T not registered", service))
	}
	return svc
}

func (a *application) RegisterControllers(controllers ...Controller) {
	a.controllers = append(a.controllers, controllers...)
}

func (a *application) Controllers() []Controller {
	return a.controllers
}

func (a *application) Migrations() *MigrationRegistry  { return a.migrations }
func (a *application) EventPublisher() eventbus.EventBus { return a.eventBus }
func (a *application) Logger() *logrus.Logger            { return a.logger }
func (a *application) Pool() *pgxpool.Pool               { return a.pool }

// Load registers every module, failing on the first error.
func Load(app Application, modules ...Module) error {
	for _, module := range modules {
		if err := module.Register(app); err != nil {
			return fmt.Errorf("register module %s: %w", module.Name(), err)
		}
	}
	return nil
}

// MigrationRegistry collects embedded schema files; the server applies them
// at boot. Schema files must be idempotent (CREATE ... IF NOT EXISTS).
type MigrationRegistry struct {
	schemas []*embed.FS
}

func (m *MigrationRegistry) RegisterSchema(files *embed.FS) {
	m.schemas = append(m.schemas, files)
}

func (m *MigrationRegistry) Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, schema := range m.schemas {
		err := fs.WalkDir(schema, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			sql, err := schema.ReadFile(path)
			if err != nil {
				return err
			}
			if _, err := pool.Exec(ctx, string(sql)); err != nil {
				return fmt.Errorf("apply schema %s: %w", path, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
