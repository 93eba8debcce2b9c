package deps

import (
	settings "github.com/tryanzu/storefront/core/config"
)

var (
	// ConfigFile is the user config merged over the bundled defaults.
	ConfigFile = "./config.hjson"

	// Watch reloads ConfigFile when it changes.
	Watch = false
)

func IgniteConfig(d Deps) (container Deps, err error) {
	s, err := settings.Bootstrap(ConfigFile)
	if err != nil {
		return d, err
	}

	if Watch {
		stop, err := s.WatchFile()
		if err != nil {
			log.Warningf("not watching %s: %v", ConfigFile, err)
		} else {
			d.onClose(func() error {
				stop()
				return nil
			})
		}
	}

	d.SettingsProvider = s
	d.ConfigProvider = s.Typed()
	container = d
	return
}
