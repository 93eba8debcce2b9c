package deps

import (
	lediscfg "github.com/siddontang/ledisdb/config"
	"github.com/siddontang/ledisdb/ledis"
)

func IgniteLedisDB(container Deps) (Deps, error) {
	conf := lediscfg.NewConfigDefault()
	conf.DataDir = container.Config().UString("ledis.path", conf.DataDir)
	conn, err := ledis.Open(conf)
	if err != nil {
		return container, err
	}

	db, err := conn.Select(0)
	if err != nil {
		conn.Close()
		return container, err
	}

	container.LedisProvider = db
	container.onClose(func() error {
		conn.Close()
		return nil
	})
	return container, nil
}
