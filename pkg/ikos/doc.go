// Package ikos is a client for the IKOS platform REST API.
//
// # Overview
//
// Every platform endpoint answers with the same JSON envelope:
//
//	{
//	  "response": {"code": 200, "time": 3, "error": "...", "errorCode": "..."},
//	  "data":     [...] | {...}
//	}
//
// A call can succeed at the HTTP level and still fail logically, in which
// case the envelope carries an error. Client.Raw is the single place where
// that decision is made; the domain services in the sub-packages only build
// paths and payloads and call it.
//
// # Packages
//
//   - ikos: Client (Raw, Get, Post, Put, Delete), Config, the resolvers and
//     the error types.
//   - ikos/auth: login, logout and session keep-alive under "auth/".
//   - ikos/crud: bucket object storage under "crud/".
//   - ikos/person: user profiles under "user/".
//   - ikos/social/group: data and user groups under "social/group/<type>/".
//
// # Example
//
//	client, err := ikos.New(&ikos.Config{
//		BaseURL: "https://ikos.example.com/api/",
//		Logger:  hclog.Default(),
//	})
//	if err != nil {
//		return err
//	}
//
//	if _, err := auth.New(client).Login(ctx, "admin", "secret", auth.LoginOptions{}); err != nil {
//		return err
//	}
//
//	resp, err := group.New(client, group.Data).GetAll(ctx)
//	if err != nil {
//		return err
//	}
//	data, err := ikos.ResolveWithDataOrArray(resp)
//
// # Error Handling
//
// Errors from Client and the services are *Error values that unwrap to one
// of the sentinel errors:
//
//   - ErrEmptyResponse, ErrMissingField, ErrMissingIdentifier: returned by
//     the resolvers.
//   - ErrAPILogic: the envelope reported an error. Error.Message returns the
//     platform's message, or "No message from API.".
//   - ErrTransport: the transport failed. The transport's error is wrapped
//     too, so errors.As can reach a *StatusError.
//   - ErrValidation: a service refused the call before sending it.
//   - ErrMalformedResponse: the body was not a JSON object.
//
// There are no retries. CallOptions.AlwaysResolve disables ErrAPILogic for
// calls whose envelope error is unreliable, such as group membership
// changes that partially succeed.
package ikos
