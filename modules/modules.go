package modules

import (
	"github.com/courtdesk/courtdesk/modules/litigation"
	"github.com/courtdesk/courtdesk/pkg/application"
)

// BuiltInModules lists every module the server loads at boot.
var BuiltInModules = []application.Module{
	litigation.NewModule(),
}

func Load(app application.Application) error {
	return application.Load(app, BuiltInModules...)
}
