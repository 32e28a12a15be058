package pg

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"botdesk/internal/platform/logger"
)

// Tracer is a pgx.QueryTracer writing one zerolog line per statement.
// Argument values are never logged, only their count: they carry bot tokens
type Tracer struct {
	log  logger.Logger
	slow time.Duration
	all  bool
	now  func() time.Time
}

var _ pgx.QueryTracer = (*Tracer)(nil)

// NewTracer logs slow statements at warn, and every statement at info when all is set
func NewTracer(log logger.Logger, slow time.Duration, all bool) *Tracer {
	return &Tracer{
		log:  log.With().Str("component", "pg").Logger(),
		slow: slow,
		all:  all,
		now:  time.Now,
	}
}

type traceKey struct{}

type traceStart struct {
	sql  string
	args int
	at   time.Time
}

// TraceQueryStart stamps the statement on ctx
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: d.SQL, args: len(d.Args), at: t.now()})
}

// TraceQueryEnd logs the statement started on ctx
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(st.at)
	slow := t.slow > 0 && elapsed >= t.slow
	if !slow && !t.all {
		return
	}

	evt := t.log.Info()
	switch {
	case d.Err != nil:
		evt = t.log.Error()
	case slow:
		evt = t.log.Warn()
	}
	evt.Dur("elapsed", elapsed).
		Bool("slow", slow).
		Str("sql", compact(st.sql)).
		Int("args", st.args).
		Int64("rows", d.CommandTag.RowsAffected()).
		Err(d.Err).
		Msg("pg query")
}

// compact folds runs of whitespace so multi line statements log on one line
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
