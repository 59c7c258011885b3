package pubdesk

import "embed"

// EmbeddedAssets contains the static assets served under /public/:
// admin.css and editor.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
