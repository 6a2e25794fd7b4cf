// Package services turns domain operations into API calls.
//
// Every operation validates its input locally, calls the API client and
// normalises the outcome into a models.Result. Errors never escape as Go
// errors: a failure carries the server's message when one was sent, else a
// fixed fallback for that operation.
package services
