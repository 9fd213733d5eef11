// Package pdf turns an HTML document plus a stylesheet into PDF bytes.
//
// Renderer is the collaborator contract the export pipeline depends on.
// Chrome implements it with a headless browser driven over the Chrome
// DevTools Protocol (chromedp). Every Render call starts its own browser and
// tears it down on every exit path, so one export pays the startup cost once
// and never leaks the process.
package pdf
