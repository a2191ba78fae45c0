// Package syntax defines the expression and statement nodes of Ember.
//
// Every node follows the same lifecycle: it is constructed as a zero value,
// Parse consumes its tokens and type-checks it in one step, and Translate
// renders the already checked node as Bash. A node whose Parse failed is
// discarded and never translated.
package syntax
