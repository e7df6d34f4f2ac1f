package mayan

/*
fx integration. FXModule provides a Logger (and its untagged root
collector) to an fx application; NewFxEventLogger adapts fx lifecycle
events onto a dedicated "fx" collector so dependency-injection
diagnostics flow through the same pipeline as application logs.
*/

import (
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// FXModule is an fx.Module that provides the logger. The host supplies
// Options (via fx.Supply or a provider); the module provides *Logger and
// the root *Collector.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(mayan.Options{Level: mayan.LVL_DEBUG}),
//	    mayan.FXModule,
//	    fx.WithLogger(mayan.NewFxEventLogger),
//	    // other modules...
//	)
var FXModule = fx.Module("mayan",
	fx.Provide(
		New, // Provides *Logger from Options
		func(l *Logger) *Collector { return l.For() },
	),
)

// FxEventLogger routes fx application lifecycle events through a
// collector.
type FxEventLogger struct {
	log *Collector
}

// NewFxEventLogger builds the adapter handed to fx.WithLogger.
func NewFxEventLogger(l *Logger) fxevent.Logger {
	return &FxEventLogger{log: l.For("fx")}
}

// LogEvent implements fxevent.Logger. Hook and invocation failures log
// as errors, lifecycle progress as verbose, provisioning detail as
// debug.
func (x *FxEventLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		x.log.Debug("OnStart hook executing: " + e.FunctionName + " (" + e.CallerName + ")")
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			x.log.Error("OnStart hook failed: "+e.FunctionName, e.Err)
		} else {
			x.log.Debug("OnStart hook executed: " + e.FunctionName + " in " + e.Runtime.String())
		}
	case *fxevent.OnStopExecuting:
		x.log.Debug("OnStop hook executing: " + e.FunctionName + " (" + e.CallerName + ")")
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			x.log.Error("OnStop hook failed: "+e.FunctionName, e.Err)
		} else {
			x.log.Debug("OnStop hook executed: " + e.FunctionName + " in " + e.Runtime.String())
		}
	case *fxevent.Supplied:
		if e.Err != nil {
			x.log.Error("supply failed: "+e.TypeName, e.Err)
		} else {
			x.log.Debug("supplied: " + e.TypeName)
		}
	case *fxevent.Provided:
		for _, rtype := range e.OutputTypeNames {
			x.log.Debug("provided: " + e.ConstructorName + " => " + rtype)
		}
		if e.Err != nil {
			x.log.Error("provide failed", e.Err)
		}
	case *fxevent.Decorated:
		for _, rtype := range e.OutputTypeNames {
			x.log.Debug("decorated: " + e.DecoratorName + " => " + rtype)
		}
		if e.Err != nil {
			x.log.Error("decorate failed", e.Err)
		}
	case *fxevent.Replaced:
		for _, rtype := range e.OutputTypeNames {
			x.log.Debug("replaced: " + rtype)
		}
		if e.Err != nil {
			x.log.Error("replace failed", e.Err)
		}
	case *fxevent.Invoking:
		x.log.Verbose("invoking: " + e.FunctionName)
	case *fxevent.Invoked:
		if e.Err != nil {
			x.log.Error("invoke failed: "+e.FunctionName, e.Err)
		}
	case *fxevent.Started:
		if e.Err != nil {
			x.log.Error("start failed", e.Err)
		} else {
			x.log.Verbose("started")
		}
	case *fxevent.Stopping:
		x.log.Verbose("received signal: " + strings.ToUpper(e.Signal.String()))
	case *fxevent.Stopped:
		if e.Err != nil {
			x.log.Error("stop failed", e.Err)
		} else {
			x.log.Verbose("stopped")
		}
	case *fxevent.RollingBack:
		x.log.Error("start failed, rolling back", e.StartErr)
	case *fxevent.RolledBack:
		if e.Err != nil {
			x.log.Error("rollback failed", e.Err)
		}
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			x.log.Error("custom logger initialization failed", e.Err)
		} else {
			x.log.Debug("initialized custom fxevent.Logger: " + e.ConstructorName)
		}
	default:
		x.log.Debug(fmt.Sprintf("fx event: %T", event))
	}
}
