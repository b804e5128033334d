// Package ecode defines business error codes and the error taxonomy used by
// the listing packages.
//
// # Error Code Convention
//
//   - 0: Success (OK)
//   - -400 to -499: Request errors
//   - -500+: Server errors
//   - -1000 and below: Listing errors
//
// # Error Kinds
//
// Failures raised by the query composer, the paginator and the search
// backends are wrapped in *Error with one of three kinds:
//
//	ecode.KindConfiguration   // malformed template or settings, never retried
//	ecode.KindNetwork         // transport failure, eligible for manual retry
//	ecode.KindInvalidResponse // malformed envelope, retried like network
//
// Classify an error anywhere in a wrapped chain:
//
//	if ecode.KindOf(err) == ecode.KindConfiguration {
//	    panic(err)
//	}
//
//	if errors.Is(err, &ecode.Error{Kind: ecode.KindNetwork}) {
//	    // show "try again"
//	}
//
// # HTTP Status Mapping
//
//	httpStatus := ecode.ToHTTPStatus(ecode.NetworkErr)
//	// Returns: 502
package ecode
