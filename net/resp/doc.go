// Package resp writes JSON responses for the listing API.
//
// Failures share one structure:
//
//	{
//	  "code": -400,            // Business error code
//	  "message": "...",        // Human-readable message
//	  "errors": {...}          // Error details
//	}
//
// Build a failure with one of the helpers and write it with Fail:
//
//	resp.Fail(w, resp.BadRequest("pageSize must be a number"))
//	resp.Fail(w, resp.FromError(err))
package resp
