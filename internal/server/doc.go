// Package server exposes the engine operations over HTTP as JSON.
//
// Every operation is a POST to /api/<operation> taking a camelCase JSON
// body and answering with the engine's value objects. Failures answer with
// {"error": message, "kind": kind} and a status code derived from the kind.
package server
