// Package autoload initializes the global logger from LOGGER_* environment
// configuration on import. Blank-import it from main.
package autoload

import (
	configx "github.com/fiberlux/odoo-assistant/pkg/config"
	logx "github.com/fiberlux/odoo-assistant/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOGGER"))
}
