package log

import "github.com/anchore/kubeview-client/pkg/logger"

var _ logger.Logger = (*nopLogger)(nil)

// nopLogger drops everything; it is the default until the host application calls pkg.SetLogger
type nopLogger struct{}

func (l *nopLogger) Errorf(string, ...interface{}) {}
func (l *nopLogger) Warnf(string, ...interface{})  {}
func (l *nopLogger) Infof(string, ...interface{})  {}
func (l *nopLogger) Info(...interface{})           {}
func (l *nopLogger) Debugf(string, ...interface{}) {}
func (l *nopLogger) Debug(...interface{})          {}
