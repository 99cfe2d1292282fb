// Package jokes provides an HTTP client for the public joke API.
//
// # Overview
//
// The client translates four logical requests into GET calls against a
// configured base URL and decodes the JSON responses into explicit schemas:
//
//   - GET {base}/random                  → Joke
//   - GET {base}/random?category={c}     → Joke
//   - GET {base}/search?query={q}        → SearchResponse
//   - GET {base}/categories              → []string
//
// # Usage
//
//	client, err := jokes.NewClient("https://api.chucknorris.io/jokes")
//	if err != nil {
//		return err
//	}
//	text, err := client.FetchRandom(ctx)
//
// # Error Handling
//
// Every operation fails with a *Failure. Transport errors, HTTP statuses
// >= 400, bodies that are not JSON and payloads that do not match the
// endpoint schema are all NetworkOrParse. Search additionally returns
// EmptySearchResult when the query matched nothing; that failure carries the
// user-facing message returned by UserMessage.
//
// # Request Handling
//
// All requests set Accept: application/json, a jester User-Agent and a fresh
// X-Request-ID (UUID) so individual calls can be matched up in the debug log.
package jokes
