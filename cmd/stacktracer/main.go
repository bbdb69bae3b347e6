package main

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog/log"

	"github.com/TomAston1996/go-stack-tracer/internal/logutil"
	"github.com/TomAston1996/go-stack-tracer/internal/profiling"
)

type config struct {
	SessionName string `env:"TRACE_SESSION_NAME" env-default:"Example Session"`
	OutputPath  string `env:"TRACE_OUTPUT" env-default:"results.json"`
	Iterations  int    `env:"TRACE_ITERATIONS" env-default:"2000000"`
}

func main() {
	logutil.ConfigureLogger()

	var cfg config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatal().Err(err).Msg("error reading configuration")
	}

	if err := profiling.BeginSession(cfg.SessionName, cfg.OutputPath); err != nil {
		log.Fatal().Err(err).Str("path", cfg.OutputPath).Msg("error starting session")
	}

	run(cfg.Iterations)

	profiling.EndSession()
	log.Info().Str("path", cfg.OutputPath).Msg("trace written")
}

func run(iterations int) {
	defer profiling.Scope("main")()

	foo(iterations)
	bar(iterations)
	foo(iterations)
}

func foo(iterations int) {
	defer profiling.Scope("foo")()

	spin(iterations)
}

func bar(iterations int) {
	defer profiling.Scope("bar")()

	foo(iterations)

	func() {
		defer profiling.Scope("bar/inner")()
		spin(iterations / 2)
	}()
}

// spin burns CPU so the scopes above have measurable durations.
func spin(iterations int) {
	x := 0
	for i := 0; i < iterations; i++ {
		x += i
	}
	sink = x
}

var sink int
