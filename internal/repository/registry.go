package repository

import (
	"github.com/vvka-141/repofs/internal/config"
	"github.com/vvka-141/repofs/internal/handler"
)

// NewRegistry registers a handler.Document handler for every kind in cfg.
func NewRegistry(cfg *config.RepositoryConfig) (*handler.Registry, error) {
	registry := handler.NewRegistry()
	for _, kind := range cfg.KindNames() {
		kc := cfg.Kinds[kind]
		h, err := handler.NewDefaults[handler.Document](handler.Spec{
			Kind:      kind,
			Defaults:  kc.Defaults,
			NameField: kc.NameField,
		})
		if err != nil {
			return nil, err
		}
		if err := registry.Register(kind, h); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
