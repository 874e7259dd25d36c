// Package kernel provides core domain primitives used throughout the domain
// model, currently the UUID value object with validation and comparison
// capabilities. The primitives are immutable and safe for concurrent use.
package kernel
