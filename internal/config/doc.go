// Package config loads the external default settings that sit behind
// "${default}" entries in c_cpp_properties.json.
//
// Settings come from the workspace settings.json (comments allowed), a
// YAML or TOML file, or CCPROPS_* environment variables, read through a
// fresh viper instance per load. Every value is nullable: a nil field in
// [Snapshot] means the user did not set it, which is different from an
// empty list.
//
//	s, err := config.Load(fs, config.Discover(fs, root))
//	if s.CompilerPath == nil {
//		// fall back to the probed compiler
//	}
//
// [Settings.Lookup] serves ${config:NAME} placeholders from the same source.
package config
