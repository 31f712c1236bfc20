// Package vectorstore provides interchangeable vector index backends
// behind the domain.Index contract: an in-process flat index and a
// managed remote index.
package vectorstore

import "docqa/internal/domain"

// Factory builds a fresh Index per request so concurrent requests never
// share vector state. The backend is chosen once at startup; the
// factory only stamps out instances of that choice.
type Factory func() domain.Index
