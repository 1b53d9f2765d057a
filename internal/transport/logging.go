// SPDX-License-Identifier: MIT
package transport

import (
	applog "dwflag/internal/log"
)

// LoggingTransport implements the Transport interface by logging
// summaries to the application logger. Useful as a default sink and in
// tests.
type LoggingTransport struct{}

// NewLoggingTransport creates a new LoggingTransport instance.
func NewLoggingTransport() *LoggingTransport {
	applog.Debugf("transport: using logging transport")
	return &LoggingTransport{}
}

// Send logs the received summary.
func (lt *LoggingTransport) Send(data any) error {
	applog.Infof("transport: %+v", data)
	return nil
}

// Close is a no-op for LoggingTransport.
func (lt *LoggingTransport) Close() error {
	return nil
}

var _ Transport = (*LoggingTransport)(nil)
