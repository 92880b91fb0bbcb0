// Package pkg provides the core libraries for svgraster SVG rasterization.
//
// # Overview
//
// Svgraster turns SVG markup into sized PNG previews with optional background
// fills, border framing, and tensor export. The pkg directory is organized
// into three main areas:
//
//  1. [directive], [hexcolor] - Request validation and render directives
//  2. [raster], [tensor] - Rasterization, compositing, and output encoding
//  3. [cache], [pipeline] - Artifact caching and orchestration
//
// # Architecture
//
// The typical data flow through svgraster:
//
//	SVG Source
//	         ↓
//	directive.Resolve (sizing, colors, border)
//	         ↓
//	raster.Render (rasterize onto canvas)
//	         ↓
//	raster.Compose (border framing)
//	         ↓
//	raster.EncodePNG / tensor.FromImage
//
// The pipeline package ties these stages together with content-addressed
// artifact caching, and internal/cli and internal/server expose them as a
// command-line tool and HTTP API.
package pkg
