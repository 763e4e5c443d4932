package metrics

import (
	"go.uber.org/fx"

	"github.com/polkiloo/ecocoleta/internal/usecase"
)

// Module provides the metrics registry and binds it as the transition recorder.
var Module = fx.Options(
	fx.Provide(New),
	fx.Provide(func(m *Metrics) usecase.TransitionRecorder { return m }),
)
