package config

import (
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrInvalidSetting is the sentinel behind every SettingError.
var ErrInvalidSetting = errors.New("invalid setting")

var (
	validModes      = []string{"msvc-x64", "msvc-x86", "msvc-arm", "msvc-arm64", "gcc-x64", "gcc-x86", "gcc-arm", "gcc-arm64", "clang-x64", "clang-x86", "clang-arm", "clang-arm64"}
	validCStandards = []string{"c89", "c99", "c11", "c17", "gnu89", "gnu99", "gnu11", "gnu17"}
	validCppStds    = []string{"c++98", "c++03", "c++11", "c++14", "c++17", "c++20", "gnu++98", "gnu++03", "gnu++11", "gnu++14", "gnu++17", "gnu++20"}
	validSeparators = []string{SeparatorForwardSlash, SeparatorBackslash}
)

// SettingError reports one invalid setting value.
type SettingError struct {
	Key   string
	Value string
	Err   error
}

func (e *SettingError) Error() string {
	return fmt.Sprintf("setting %s: %q: %v", e.Key, e.Value, e.Err)
}

func (e *SettingError) Unwrap() error { return e.Err }

// Validate checks enumerated settings. It returns every problem found;
// a nil slice means the snapshot is usable as is.
func Validate(s *Snapshot) []error {
	var errs []error

	check := func(key string, value *string, allowed []string) {
		if value == nil || *value == "" || slices.Contains(allowed, *value) {
			return
		}
		errs = append(errs, &SettingError{Key: key, Value: *value, Err: ErrInvalidSetting})
	}

	check(KeyIntelliSenseMode, s.IntelliSenseMode, validModes)
	check(KeyCStandard, s.CStandard, validCStandards)
	check(KeyCppStandard, s.CppStandard, validCppStds)
	sep := s.PreferredPathSeparator
	check(KeyPreferredPathSeparator, &sep, validSeparators)

	return errs
}
