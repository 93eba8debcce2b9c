package deps

import (
	"os"

	"github.com/olebedev/config"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("storefront")

// Everything except the message has a custom color which is dependent
// on the log level.
var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000}  %{pid} %{module}	%{shortfile}	▶ %{level:.4s} %{id:03x}%{color:reset} %{message}`,
)

func IgniteLogger(container Deps) (Deps, error) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatter)
	leveled.SetLevel(level(container.Config()), "")
	logging.SetBackend(leveled)

	if s := container.Settings(); s != nil {
		go func() {
			for range s.Reload {
				leveled.SetLevel(level(s.Typed()), "")
			}
		}()
	}
	return container, nil
}

func level(c *config.Config) logging.Level {
	if c == nil {
		return logging.INFO
	}
	name := c.UString("log.level", "INFO")
	lvl, err := logging.LogLevel(name)
	if err != nil {
		log.Warningf("unknown log level %q, using INFO", name)
		return logging.INFO
	}
	return lvl
}
