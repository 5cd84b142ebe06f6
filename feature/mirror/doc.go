// Package mirror publishes the local cover directory and info file to object
// storage.
//
// Covers are stored under "<prefix>/covers/" and the info file as
// "<prefix>/info.json". The local and remote cover names are compared with
// core/reconcile: covers only present locally are uploaded, covers only present
// in storage are reported and left untouched.
package mirror
