// Package handler provides content handlers and the registry that selects
// one per domain-object kind.
//
// Defaults is the general-purpose handler: it knows a kind's default field
// values (addressed by JSONPath), optionally derives a name field from the
// document's file name, and inflates documents into a Go type with
// mapstructure decoding and validator struct tags.
//
// # Example Usage
//
//	roles, err := handler.NewDefaults[Role](handler.Spec{
//	    Kind:      "roles",
//	    NameField: "name",
//	    Defaults:  map[string]any{"$.json_class": "Chef::Role"},
//	})
//	registry := handler.NewRegistry()
//	err = registry.Register("roles", roles)
package handler
