// Package compiler knows about C and C++ compiler executables: probing
// the host for defaults, splitting a compilerPath value into executable
// and arguments, and mapping a compiler to its IntelliSense mode.
package compiler
