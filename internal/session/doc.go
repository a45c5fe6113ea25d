// Package session persists RehydrationMaps under a caller-supplied session
// identifier so a later process or request can rehydrate a downstream
// response (spec §4.6, "Session store").
package session
