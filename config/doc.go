// Package config loads client configuration files.
//
// Files may be YAML or JSON; the format is chosen by file extension and
// defaults to YAML. Configuration covers the client-level knobs only:
// default headers, timeout, redirect policy and depth, confidential
// headers, default port. Per-request options belong in code.
package config
