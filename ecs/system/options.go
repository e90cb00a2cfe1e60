package system

import (
	"github.com/charmbracelet/log"
)

// SpatialMode selects whether distances and steering use all three axes or
// only the XY plane.
type SpatialMode int

const (
	Spatial3D SpatialMode = iota
	Spatial2D
)

func (m SpatialMode) String() string {
	if m == Spatial2D {
		return "2d"
	}
	return "3d"
}

type options struct {
	mode        SpatialMode
	rigidBodies bool
	logger      *log.Logger
}

// Option configures a movement system at construction.
type Option func(*options)

func WithSpatialMode(mode SpatialMode) Option {
	return func(o *options) { o.mode = mode }
}

// WithRigidBodies makes kinematic movers that carry a RigidBody drive its
// velocity instead of writing the transform.
func WithRigidBodies(enabled bool) Option {
	return func(o *options) { o.rigidBodies = enabled }
}

func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func buildOptions(prefix string, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	o.logger = o.logger.WithPrefix(prefix)
	return o
}
