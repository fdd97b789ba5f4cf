// Package process terminates the browser launched for PDF printing
// together with its helper processes.
package process
