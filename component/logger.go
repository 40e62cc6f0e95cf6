package component

import "github.com/charmbracelet/log"

var logger = log.Default()

// SetLogger replaces the logger used for animation diagnostics.
func SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	logger = l
}
