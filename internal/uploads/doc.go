// Package uploads issues short-lived, single-object write credentials so
// browsers can upload receipt images straight to storage.
package uploads
