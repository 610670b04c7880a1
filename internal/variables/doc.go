// Package variables substitutes ${...} placeholders in property values.
//
// Names resolve against the document env first and the process
// environment second; ${config:NAME} goes to the settings source.
// Placeholders nobody knows, such as ${workspaceFolder}, pass through
// untouched so later stages can handle them.
package variables
