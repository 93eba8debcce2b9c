package deps

// An ignitor takes a Container and injects bootstraped dependencies.
type Ignitor func(Deps) (Deps, error)

// Default ignitors for the storefront, in dependency order.
var Default = []Ignitor{
	IgniteConfig,
	IgniteLogger,
	IgniteStorage,
	IgniteCatalog,
	IgniteEvents,
	IgniteCarts,
}

// Bootstrap runs ignitors to fulfill the deps container. On failure the
// dependencies opened so far are released.
func Bootstrap(ignitors ...Ignitor) (container Deps, err error) {
	if len(ignitors) == 0 {
		ignitors = Default
	}
	for _, fn := range ignitors {
		next, err := fn(container)
		if err != nil {
			container.Close()
			return Deps{}, err
		}
		container = next
	}
	return container, nil
}
