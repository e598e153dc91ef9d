// Package clientip extracts the client address of an HTTP request for logs.
//
// Headers are checked in this order, first valid address wins:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For, leftmost entry
//  4. X-Real-IP
//  5. RemoteAddr
//
// Headers are client-controlled unless a trusted proxy overwrites them, so the
// result is suitable for logging and never for access decisions.
package clientip
