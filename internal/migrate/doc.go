// Package migrate upgrades properties documents to the current schema
// version.
//
// Steps are kept in a table keyed by source version and applied one at
// a time until the document reaches [properties.CurrentVersion]. Each
// step only fills fields that are unset, so running a step twice
// changes nothing.
package migrate
