package studio

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rana718/synthgen/internal/config"
	"github.com/Rana718/synthgen/internal/generator"
	"github.com/Rana718/synthgen/internal/session"
)

type Service struct {
	cfg       *config.Config
	generator *generator.Generator
	sessions  *session.Store
	log       zerolog.Logger
}

func NewService(cfg *config.Config, gen *generator.Generator, log zerolog.Logger) *Service {
	defaults := func() session.Settings {
		return session.NewSettings(cfg.Generator.Rows, cfg.Generator.Columns)
	}
	return &Service{
		cfg:       cfg,
		generator: gen,
		sessions:  session.NewStore(defaults),
		log:       log,
	}
}

func (s *Service) Session(id string) *session.Session {
	return s.sessions.GetOrCreate(id)
}

// Generate runs the session's current settings and keeps the result.
func (s *Service) Generate(sess *session.Session) (*generator.Table, error) {
	start := time.Now()
	table, err := sess.Generate(s.generator)
	if err != nil {
		s.log.Warn().Err(err).Str("session", sess.ID).Msg("generation rejected")
		return nil, err
	}

	s.log.Info().
		Str("session", sess.ID).
		Int("rows", table.Rows()).
		Int("columns", len(table.Columns)).
		Dur("took", time.Since(start)).
		Msg("table generated")
	return table, nil
}

// GenerateRequest runs an explicit request, e.g. from the JSON API. The
// request must respect the configured bounds.
func (s *Service) GenerateRequest(req generator.Request) (*generator.Table, error) {
	limits := s.cfg.Generator
	if req.Rows > limits.MaxRows {
		return nil, &generator.InvalidParameterError{Param: "rows", Reason: fmt.Sprintf("must be <= %d, got %d", limits.MaxRows, req.Rows)}
	}
	if len(req.Columns) > limits.MaxColumns {
		return nil, &generator.InvalidParameterError{Param: "columns", Reason: fmt.Sprintf("at most %d columns, got %d", limits.MaxColumns, len(req.Columns))}
	}

	table, err := s.generator.Generate(req)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("rows", table.Rows()).Int("columns", len(table.Columns)).Msg("table generated via api")
	return table, nil
}

// Sweep drops idle sessions.
func (s *Service) Sweep() int {
	removed := s.sessions.Sweep(s.cfg.Studio.SessionIdle)
	if removed > 0 {
		s.log.Debug().Int("removed", removed).Int("active", s.sessions.Len()).Msg("idle sessions swept")
	}
	return removed
}

// isClientError reports whether err comes from bad user input.
func isClientError(err error) bool {
	var invalid *generator.InvalidParameterError
	var unsupported *generator.UnsupportedTypeError
	var form *FormError
	return errors.As(err, &invalid) || errors.As(err, &unsupported) || errors.As(err, &form)
}
