// Package kverrors defines the typed error codes the load balancer and its
// components return at public API boundaries. It deliberately covers only
// the handful of codes this system's contract actually needs, unlike the
// broader RPC-status code set it is modeled on.
package kverrors

import "strconv"

// Code classifies why an operation failed. Callers that need to branch on
// failure kind should compare against a Code via ErrorCode, not against a
// formatted message.
type Code int

const (
	// None is not an error; it is the zero value returned by ErrorCode for
	// nil or non-kverrors errors.
	None Code = 0
	// NotFound indicates the operation named a server id that is not
	// currently registered with the load balancer.
	NotFound Code = 1
	// AlreadyExists indicates AddServer was called with an id that is
	// already registered.
	AlreadyExists Code = 2
	// FailedPrecondition indicates the operation required a non-empty ring
	// (Store, Retrieve) and the ring was empty.
	FailedPrecondition Code = 3
	// Internal indicates an invariant the load balancer itself is
	// responsible for upholding was violated. Reaching this code from any
	// sequence of valid public calls indicates a bug in this library.
	Internal Code = 4
)

var codeToString = map[Code]string{
	None:               "None",
	NotFound:           "NotFound",
	AlreadyExists:      "AlreadyExists",
	FailedPrecondition: "FailedPrecondition",
	Internal:           "Internal",
}

func (c Code) String() string {
	if s, ok := codeToString[c]; ok {
		return s
	}
	return strconv.Itoa(int(c))
}
