package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ccprops/internal/errors"
)

func TestDescriptor_DefaultConfigurationName(t *testing.T) {
	tests := []struct {
		os   string
		want string
	}{
		{OSWindows, ConfigWin32},
		{OSDarwin, ConfigMac},
		{OSLinux, ConfigLinux},
		{"freebsd", ConfigLinux},
	}
	for _, tt := range tests {
		t.Run(tt.os, func(t *testing.T) {
			assert.Equal(t, tt.want, Descriptor{OS: tt.os}.DefaultConfigurationName())
		})
	}
}

func TestDescriptor_IntelliSenseModeFor(t *testing.T) {
	tests := []struct {
		name   string
		os     string
		config string
		want   string
	}{
		{"builtin linux on windows", OSWindows, ConfigLinux, ModeGCC},
		{"builtin mac on linux", OSLinux, ConfigMac, ModeClang},
		{"builtin win32 on mac", OSDarwin, ConfigWin32, ModeMSVC},
		{"custom on windows", OSWindows, "Debug", ModeMSVC},
		{"custom on mac", OSDarwin, "Debug", ModeClang},
		{"custom on linux", OSLinux, "Debug", ModeGCC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Descriptor{OS: tt.os}.IntelliSenseModeFor(tt.config))
		})
	}
}

func TestDescriptor_DefaultDefines(t *testing.T) {
	assert.Equal(t, []string{"_DEBUG", "UNICODE", "_UNICODE"}, Descriptor{OS: OSWindows}.DefaultDefines())
	assert.Empty(t, Descriptor{OS: OSLinux}.DefaultDefines())
	assert.NotNil(t, Descriptor{OS: OSDarwin}.DefaultDefines())
}

func TestDescriptor_PreferredIndex(t *testing.T) {
	linux := Descriptor{OS: OSLinux}

	assert.Equal(t, 1, linux.PreferredIndex([]string{"Mac", "Linux", "Win32"}))
	assert.Equal(t, 2, linux.PreferredIndex([]string{"Debug", "Release", "Profile"}))
	assert.Equal(t, 0, Descriptor{OS: OSWindows}.PreferredIndex([]string{"Win32"}))
}

func TestDescriptor_Separators(t *testing.T) {
	win := Descriptor{OS: OSWindows}
	linux := Descriptor{OS: OSLinux}

	assert.Equal(t, `C:\src\include`, win.NormalizeSeparators("C:/src/include"))
	assert.Equal(t, "/usr/include/c++", linux.NormalizeSeparators(`/usr\include/c++`))
}

func TestParseHost(t *testing.T) {
	for in, want := range map[string]string{
		"win32":   OSWindows,
		"Windows": OSWindows,
		"mac":     OSDarwin,
		"darwin":  OSDarwin,
		" linux ": OSLinux,
	} {
		d, err := ParseHost(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, d.OS, in)
	}

	_, err := ParseHost("plan9")
	assert.True(t, errors.Is(err, ErrUnknownHost))
}
