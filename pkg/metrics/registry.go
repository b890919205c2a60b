package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry manages Prometheus metric registration
type Registry struct {
	registry      *prometheus.Registry
	chronyMetrics *ChronyMetrics
}

// NewRegistry creates a new metrics registry with chrony metrics
// Uses default namespace "chrony" and empty subsystem
func NewRegistry() *Registry {
	return NewRegistryWithConfig("chrony", "")
}

// NewRegistryWithConfig creates a new metrics registry with custom namespace and subsystem
func NewRegistryWithConfig(namespace, subsystem string) *Registry {
	return &Registry{
		registry:      prometheus.NewRegistry(),
		chronyMetrics: NewChronyMetricsWithConfig(namespace, subsystem),
	}
}

// Register registers all chrony exporter metrics
func (r *Registry) Register() error {
	// Register the chrony metrics collector
	if err := r.registry.Register(r.chronyMetrics); err != nil {
		return err
	}

	// Register Go runtime metrics
	r.registry.MustRegister(collectors.NewGoCollector())
	r.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return nil
}

// GetRegistry returns the underlying Prometheus registry
func (r *Registry) GetRegistry() *prometheus.Registry {
	return r.registry
}

// GetMetrics returns the chrony metrics instance
func (r *Registry) GetMetrics() *ChronyMetrics {
	return r.chronyMetrics
}

// MustRegister registers all metrics and panics on error
func (r *Registry) MustRegister() {
	if err := r.Register(); err != nil {
		panic(err)
	}
}
