// Package pagination provides the batch driver for cursor-paginated B2B
// listing endpoints.
//
// The B2B API pages listings with an opaque continuation cursor: each page
// carries the cursor for the next one, and a nil cursor signals the end of
// the listing. Cursor chaining makes page fetches inherently sequential,
// so the driver walks pages one at a time and bounds the walk with a
// maximum page count to guard against a server that never terminates.
//
// Example usage:
//
//	products, err := pagination.FetchAll(ctx, func(ctx context.Context, cursor *string) (models.Page[models.Product], error) {
//		return client.GetProductsPage(ctx, cursor, 100)
//	}, 1000)
//
// The driver:
//   - Starts with a nil cursor and follows NextCursor until exhausted
//   - Appends items in page order
//   - Stops after maxPages pages even if the server keeps returning cursors
//   - Fails the whole walk on any page error; no partial results leak out
//
// A fresh call restarts the walk from the beginning; walks are not
// resumable mid-stream after a failure.
package pagination
