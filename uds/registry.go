package uds

import "fmt"

// Registry holds the set of declared services and resolves them by request
// or response identifier. It replaces any runtime type discovery with an
// explicit registration step; register everything before concurrent use.
type Registry struct {
	services []*Service
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a service. A request id collision is a configuration error.
func (r *Registry) Register(s *Service) error {
	if s == nil {
		return NewSchemaError("cannot register a nil service")
	}
	for _, existing := range r.services {
		if existing.SID == s.SID {
			return NewSchemaError(fmt.Sprintf(
				"service id 0x%02X already registered by %q", s.SID, existing.Name))
		}
	}
	r.services = append(r.services, s)
	return nil
}

// MustRegister is Register for startup declarations; it panics on a schema
// error.
func (r *Registry) MustRegister(services ...*Service) *Registry {
	for _, s := range services {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

// ByRequestID resolves a service by its request identifier.
func (r *Registry) ByRequestID(id byte) (*Service, bool) {
	for _, s := range r.services {
		if s.RequestID() == id {
			return s, true
		}
	}
	return nil, false
}

// ByResponseID resolves a service by its positive response identifier.
func (r *Registry) ByResponseID(id byte) (*Service, bool) {
	for _, s := range r.services {
		if s.ResponseID() == id {
			return s, true
		}
	}
	return nil, false
}

// Services returns the registered services in registration order.
func (r *Registry) Services() []*Service {
	return r.services
}
