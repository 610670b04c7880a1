// Package squiggle maps validation findings onto character ranges of the
// raw properties text.
//
// The text is never parsed with positions. Instead [FindWindow] narrows
// it to the block of the selected configuration using textual search,
// [Tokenize] produces string tokens with offsets inside that window,
// and [Engine.Run] looks up every path of interest among the tokens.
// Offsets are relative to the window until the very end, where the
// window start is added back.
//
// The engine replaces the diagnostic set of a document on every run and
// reports per-category counts to telemetry only when they change.
package squiggle
