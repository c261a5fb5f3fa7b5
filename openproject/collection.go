package openproject

import (
	"context"
	"fmt"
)

// maxPages bounds runaway pagination in case the server ever produces a
// next-link cycle. The API guarantees termination, so hitting this is a bug
// on one side or the other.
const maxPages = 10000

// EntryIterator walks a paginated time-entry collection one page at a time.
// It is pull driven: the next page is requested only once every element of
// the current page has been consumed, so memory stays bounded to a single
// page. Iterators are single use and not safe for concurrent use.
type EntryIterator struct {
	client   *HTTPClient
	nextURL  string
	elements []TimeEntry
	index    int
	pages    int
	err      error
}

// TimeEntries returns an iterator over the collection starting at queryURL,
// typically built with TimeEntriesURL.
func (c *HTTPClient) TimeEntries(queryURL string) *EntryIterator {
	return &EntryIterator{client: c, nextURL: queryURL}
}

// Next advances to the next entry, fetching the following page once the
// current one is exhausted. It returns false when the collection ends or a
// page fetch fails; Err distinguishes the two. Entries yielded before a
// failure stay valid — a mid-collection error does not retract them.
func (it *EntryIterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	for it.index >= len(it.elements) {
		if it.nextURL == "" {
			return false
		}
		if it.pages >= maxPages {
			it.err = fmt.Errorf("pagination did not terminate after %d pages", maxPages)
			return false
		}

		var page collectionPage
		if err := it.client.getJSON(ctx, it.nextURL, &page); err != nil {
			it.err = err
			return false
		}
		it.pages++
		it.elements = page.Embedded.Elements
		it.index = 0

		it.nextURL = ""
		if href := page.Links.NextByOffset.Href; href != "" {
			absolute, err := it.client.absoluteURL(href)
			if err != nil {
				it.err = err
				return false
			}
			it.nextURL = absolute
		}
	}
	it.index++
	return true
}

// Entry returns the element produced by the last successful call to Next.
func (it *EntryIterator) Entry() TimeEntry {
	return it.elements[it.index-1]
}

// Err reports the fetch failure that stopped iteration, if any.
func (it *EntryIterator) Err() error {
	return it.err
}
