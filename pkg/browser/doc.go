// Package browser wraps Playwright page automation behind the narrow
// interfaces the response pipeline consumes.
//
// The package is built around two core concepts:
//
// 1. Context: owns the Playwright browser and the ordered tab registry
// 2. Tab: wraps one page, buffering console messages, downloads, network
// traffic and open dialogs as events arrive
//
// # Tab Lifecycle
//
// Tabs follow this lifecycle:
//
//  1. Create: NewTab (or a page popup) registers a Tab and wires its events
//  2. Use: tools navigate and interact through the active tab
//  3. Snapshot: CaptureSnapshot drains the recent console buffer into an
//     immutable TabSnapshot for rendering
//  4. Close: an explicit CloseTab or a page close event removes the Tab
//
// # Concurrency
//
// Playwright delivers page events on their own goroutines, so every Tab
// buffer is guarded by a mutex. A snapshot capture can race an incoming
// dialog; whatever dialog state the capture observed is what gets reported,
// never refetched.
package browser
