// Package gate decides what a request may do with a username based on the
// identity bound to its session token.
//
// A binding counts as an identity only when it was minted by the running
// process and its username is still claimed. Anything else is anonymous.
package gate
