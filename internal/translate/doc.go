// Package translate holds the Bash emission layer: translation metadata
// threaded through node Translate calls, the shared arithmetic helper and
// the naming scheme for globals and function instances.
package translate
