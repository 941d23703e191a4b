// Package validation provides input validation utilities for speakerkit.
//
// It supports struct tag validation (using the validator library) for
// configuration and payload structs, plus programmatic validation with
// error collection.
//
// # Struct Tag Validation
//
//	type BatchConfig struct {
//	    Workers int `mapstructure:"workers" validate:"min=1,max=64"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Check(end >= start, "end", "end must not precede start")
//	err := v.Error()
package validation
