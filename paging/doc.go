// Package paging provides cursor pagination primitives and a "load more"
// paginator that accumulates pages on the client side.
//
// # Pages
//
// A Page carries the items of one request plus the opaque cursor of the
// next one. A page without a cursor never has a next page:
//
//	page := (&paging.Page[Item]{Items: items, HasNext: true}).Normalize()
//	// page.HasNext == false
//
// # Load More
//
// A Paginator drives a session keyed by its initial URL:
//
//	p := paging.New[Item](fetcher)
//	if err := p.Initialize(ctx, "https://site/api/search?topics=ai", 12); err != nil {
//	    return err
//	}
//	for p.HasMore() {
//	    if _, err := p.LoadMore(ctx); err != nil {
//	        break // items and cursor are kept, LoadMore may be retried
//	    }
//	}
//	items := p.Items()
//
// LoadMore never queues: a call made while another load is in flight is
// dropped. Calling Initialize again starts a new session and discards any
// response still in flight for the old one.
//
// # Cursor Encoding
//
// Backends that page by offset hand out opaque cursors:
//
//	cursor := paging.EncodeCursor(40)
//	offset, err := paging.DecodeCursor(cursor)
package paging
