// Package properties models c_cpp_properties.json.
//
// [Parse] accepts the commented JSON editors write and returns a
// [Document]; [Marshal] writes it back with four-space indentation.
// Absent keys stay absent across a round trip (nil pointers and nil
// slices), keys this package does not know about are preserved, and
// knownCompilers is never written.
package properties
