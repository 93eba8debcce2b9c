package config

import (
	_ "embed"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/hjson/hjson-go/v4"
	"github.com/imdario/mergo"
	"github.com/olebedev/config"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("config")

//go:embed defaults.hjson
var defaults []byte

// Bootstrap loads the bundled defaults and merges the user file over
// them. A missing user file is not an error.
func Bootstrap(file string) (*Config, error) {
	c := &Config{
		Reload:  make(chan bool, 1),
		current: map[string]interface{}{},
		file:    file,
	}
	if err := c.Merge(defaults); err != nil {
		return nil, err
	}
	if file == "" {
		return c, nil
	}
	if err := c.MergeFile(file); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return c, nil
}

// Defaults gives path access to the bundled defaults alone.
func Defaults() *config.Config {
	var root map[string]interface{}
	if err := hjson.Unmarshal(defaults, &root); err != nil {
		panic(err)
	}
	return &config.Config{Root: root}
}

type Config struct {
	// Reload receives a signal after every successful merge.
	Reload chan bool

	mu      sync.RWMutex
	current map[string]interface{}
	file    string
}

// Copy of the current runtime config.
func (c *Config) Copy() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.current)
}

// Typed gives path access to the current config, with environment
// variables (CART_STORAGE for cart.storage) taking precedence.
func (c *Config) Typed() *config.Config {
	return (&config.Config{Root: c.Copy()}).Env()
}

func (c *Config) MergeFile(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	return c.Merge(data)
}

// Merge overrides the current config with the hjson document in data.
func (c *Config) Merge(data []byte) error {
	var update map[string]interface{}
	if err := hjson.Unmarshal(data, &update); err != nil {
		return err
	}

	c.mu.Lock()
	merged := clone(c.current)
	if err := mergo.Merge(&merged, update, mergo.WithOverride); err != nil {
		c.mu.Unlock()
		return err
	}
	c.current = merged
	c.mu.Unlock()

	// Reload signal if anyone is listening...
	select {
	case c.Reload <- true:
	default:
	}
	return nil
}

// WatchFile merges the user file again whenever it is written, until
// stop is called.
func (c *Config) WatchFile() (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(c.file); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					log.Infof("config file modified: %s", event.Name)
					if err := c.MergeFile(event.Name); err != nil {
						log.Errorf("could not reload config: %v", err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error(err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}

func clone(m map[string]interface{}) map[string]interface{} {
	copied := make(map[string]interface{}, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]interface{}); ok {
			v = clone(nested)
		}
		copied[k] = v
	}
	return copied
}
