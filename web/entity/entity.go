// Package entity defines the JSON bodies returned by the web layer.
package entity

// Msg is the JSON reply used for XHR callers and health checks.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj,omitempty"`
}
