// Package ui provides the visual components of the darkchat TUI.
//
// # Layout
//
//	┌─────────────────────────────────────────────┐
//	│ Header: title, message count, account, mode │
//	├─────────────────────────────────────────────┤
//	│ Chat log (viewport)                         │
//	├─────────────────────────────────────────────┤
//	│ Input (textarea)                            │
//	├─────────────────────────────────────────────┤
//	│ Footer: key hints or a flash message        │
//	└─────────────────────────────────────────────┘
//
// While an on-screen keyboard is open the footer is dropped (see
// ViewContext.Compact). When the terminal reports no height at all the log
// takes the whole screen.
//
// # Rendering
//
// Bot replies are markdown. Headings, lists, bold, italic, inline code and
// links are styled inline; fenced code blocks are highlighted with chroma
// using the active theme's code style. Image replies are drawn as a framed
// link to the generated file.
//
// # Animation
//
// A single AnimationTickMsg drives the typing indicator, the greeting
// typewriter and the header counter. The app keeps the tick running only
// while something reports IsAnimating.
//
// # Themes
//
// SetThemeByName switches palettes and regenerates every exported style.
package ui
