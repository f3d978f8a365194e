package utils

import (
	"github.com/sirupsen/logrus"
	"github.com/unlinked-app/unlinked/utils/dotenv"
	"github.com/unlinked-app/unlinked/utils/flag"
	Logger "github.com/unlinked-app/unlinked/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func init() {
	// Datadog tracer. Only started against the production agent, local runs
	// and tests do not emit traces.
	if !dotenv.IsProdEnv() {
		return
	}

	tracer.Start(
		tracer.WithService(flag.ServiceName),
		tracer.WithEnv("production"),
	)

	Logger.Log.WithFields(
		logrus.Fields{"service": flag.ServiceName},
	).Info("tracer initialized")
}

// Stop tracer, OK to be closed multiple times
func CloseTracer() {
	// Datadog tracer
	tracer.Stop()
}
