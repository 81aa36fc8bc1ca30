// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface and registers its own routes.
// The Manager keeps the registry and loads the enabled features in order.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
