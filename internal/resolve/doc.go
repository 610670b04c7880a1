// Package resolve turns a properties document into resolved
// configurations.
//
// [Merge] is the single default-merge: it combines each configuration
// with the external settings snapshot, expands ${default}, substitutes
// placeholders and fills browse.path, producing explicit [Configuration]
// values while leaving the document untouched. [ApplyDefaults] and
// [DefaultDocument] fabricate configurations from platform and compiler
// defaults for workspaces that have no properties file yet.
package resolve
