// Package hostbridge connects a running process to host-implemented
// functions: the Handler interface the engine calls on CallExtern, a
// reflect-based Registry that turns a Go type implementing Host into a
// Handler,
// and the build-time generator under gen/ that does the same thing
// without reflection, for hosts that want a static dispatcher.
package hostbridge
