// Package sanitizer provides input normalization for user-entered search
// criteria before they reach the remote services.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings rather than errors.
//
// Normalization includes:
//   - Free text (model names, location names, typeahead terms): collapse
//     internal whitespace, trim leading/trailing spaces
//   - Labels: additionally lowercase
package sanitizer
