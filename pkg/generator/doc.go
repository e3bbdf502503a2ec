// Package generator runs the model input pipeline: parse caller options,
// resolve the model's table, fetch column metadata, pick the HTML input type,
// derive validation rules, merge caller overrides and assemble markup.
//
// A Generator holds no per-invocation state and is safe for concurrent use
// as long as its registry and provider are.
package generator
