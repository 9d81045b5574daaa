package observability

import "github.com/rs/zerolog"

type zerologLogger struct {
	l zerolog.Logger
}

// NewZerolog adapts a zerolog logger to Logger.
func NewZerolog(l zerolog.Logger) Logger { return zerologLogger{l: l} }

func (z zerologLogger) Debug(msg string, fields ...Field) { emit(z.l.Debug(), msg, fields) }
func (z zerologLogger) Info(msg string, fields ...Field)  { emit(z.l.Info(), msg, fields) }
func (z zerologLogger) Warn(msg string, fields ...Field)  { emit(z.l.Warn(), msg, fields) }
func (z zerologLogger) Error(msg string, fields ...Field) { emit(z.l.Error(), msg, fields) }

func (z zerologLogger) With(fields ...Field) Logger {
	ctx := z.l.With()
	for _, f := range fields {
		switch v := f.Value().(type) {
		case string:
			ctx = ctx.Str(f.Key(), v)
		case int:
			ctx = ctx.Int(f.Key(), v)
		case int64:
			ctx = ctx.Int64(f.Key(), v)
		case float64:
			ctx = ctx.Float64(f.Key(), v)
		case bool:
			ctx = ctx.Bool(f.Key(), v)
		case error:
			ctx = ctx.AnErr(f.Key(), v)
		default:
			ctx = ctx.Interface(f.Key(), v)
		}
	}
	return zerologLogger{l: ctx.Logger()}
}

func emit(e *zerolog.Event, msg string, fields []Field) {
	if e == nil {
		return
	}
	for _, f := range fields {
		switch v := f.Value().(type) {
		case string:
			e = e.Str(f.Key(), v)
		case int:
			e = e.Int(f.Key(), v)
		case int64:
			e = e.Int64(f.Key(), v)
		case float64:
			e = e.Float64(f.Key(), v)
		case bool:
			e = e.Bool(f.Key(), v)
		case error:
			e = e.AnErr(f.Key(), v)
		default:
			e = e.Interface(f.Key(), v)
		}
	}
	e.Msg(msg)
}
