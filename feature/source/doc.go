// Package source implements the catalog providers and asset transports the
// sync pipeline is written against.
//
// Three sources exist, each implementing both Provider and Transport:
//
//   - Remote: the live catalog JSON and cover images over HTTP.
//   - Archive: a local snapshot folder holding maimai_songs.json and the images.
//   - Bucket: the same snapshot layout stored under a prefix in object storage.
//
// The source is picked once by the sync command and injected into the covers
// service; nothing downstream branches on the concrete type.
//
// # Errors
//
// Fetch distinguishes a missing image (ErrNotFound), a non-success HTTP status
// (*StatusError) and an unusable id (ErrInvalidID) from other failures so the
// caller can decide which conditions only skip one cover.
package source
