// Package factory instantiates pluggable modules, such as metrics sinks, from
// configuration. A module is declared by a type string plus a map of raw
// settings; the registered factory decodes the map into its own typed struct.
//
//	reg := factory.NewRegistry[metrics.Sink]()
//	_ = reg.Register("prometheus", func(conf map[string]any) (metrics.Sink, error) {
//	    var c struct{ Namespace string `json:"namespace"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newPromSink(c.Namespace)
//	})
//	sink, err := reg.Create(factory.ModuleConfig{Type: "prometheus"})
package factory
