// Package terminal owns the tcell screen: setup, color capability detection,
// key translation into session events and crash-safe restoration.
package terminal
