// Package validator checks resolved configurations against the
// filesystem and reports the findings.
//
// A [Validator] resolves each path the way the language server would:
// placeholders are substituted, ${workspaceFolder} and ${vcpkgRoot} are
// replaced, glob stars are dropped and, on a Windows host, WSL style
// paths are remapped. It then checks existence and kind, retrying
// relative paths against the workspace root and, for compilers on
// Windows, with an ".exe" suffix.
//
// Findings are plain data. [Validator.ValidateConfiguration] returns a
// [ConfigurationErrors] with one message per field, which converts to a
// [Result] of [Issue] values for the [Reporter].
//
// # Basic Usage
//
//	v := validator.New(fs, host, "/src/app")
//	errs := v.ValidateConfiguration(resolved)
//	result := errs.Result()
//	_ = validator.NewReporter(os.Stdout, validator.FormatText).Report(result)
package validator
