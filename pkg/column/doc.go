// Package column describes database column metadata and the fixed mapping from
// canonical column types to HTML input types. It also declares the two
// collaborator contracts the generator depends on: ModelRegistry resolves a
// model identifier to its table and Provider fetches column metadata.
package column
