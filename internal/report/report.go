// Package report keeps the tally of a migration run and renders the
// human-readable console output. The text is for operators, not parsers.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Report is the running tally of the transfer phase.
type Report struct {
	Success  int
	Failure  int
	Failures []string
	Elapsed  time.Duration
}

// Processed is Success + Failure.
func (r *Report) Processed() int { return r.Success + r.Failure }

// AddSuccess counts one transferred resource.
func (r *Report) AddSuccess() { r.Success++ }

// AddFailure counts one failed resource and returns the recorded message.
func (r *Report) AddFailure(publicID string, err error) string {
	r.Failure++
	msg := fmt.Sprintf("%s: %s", publicID, err.Error())
	r.Failures = append(r.Failures, msg)
	return msg
}

// Printer writes progress and summary lines.
type Printer struct {
	Out io.Writer
	Err io.Writer
	// ProgressEvery prints a success line on every n-th item (and on the last one).
	ProgressEvery int
	// ErrorLimit caps the failure lines in the summary.
	ErrorLimit int
}

// ShouldShowProgress is true on 1-based positions that are multiples of
// every, and on the final item.
func ShouldShowProgress(i, n, every int) bool {
	if every <= 0 {
		return i == n-1
	}
	return (i+1)%every == 0 || i == n-1
}

func (p Printer) Start(source, dest string) {
	fmt.Fprintln(p.Out, "🚀 Iniciando migración de Cloudinary...")
	fmt.Fprintln(p.Out)
	fmt.Fprintf(p.Out, "📤 Origen: %s\n", source)
	fmt.Fprintf(p.Out, "📥 Destino: %s\n\n", dest)
}

func (p Printer) Listing() {
	fmt.Fprintln(p.Out, "📥 Obteniendo lista de imágenes de la cuenta origen...")
}

func (p Printer) Page(page, count, total int) {
	fmt.Fprintf(p.Out, "   Página %d: %d imágenes | Total: %d\n", page, count, total)
}

func (p Printer) Found(total int, delay time.Duration) {
	fmt.Fprintf(p.Out, "\n✅ Total de imágenes encontradas: %d\n\n", total)
	fmt.Fprintf(p.Out, "⚠️  Iniciando en %s segundos... (Ctrl+C para cancelar)\n\n", seconds(delay))
}

func (p Printer) Migrating() {
	fmt.Fprintln(p.Out, "🔄 Migrando a cuenta destino...")
	fmt.Fprintln(p.Out)
}

// Progress prints a success line when i is a reporting position.
func (p Printer) Progress(i, n int, publicID string) bool {
	if !ShouldShowProgress(i, n, p.ProgressEvery) {
		return false
	}
	pct := float64(i+1) / float64(n) * 100
	fmt.Fprintf(p.Out, "✅ [%d/%d] %.1f%% - %s\n", i+1, n, pct, publicID)
	return true
}

func (p Printer) Failure(i, n int, msg string) {
	fmt.Fprintf(p.errOut(), "❌ [%d/%d] %s\n", i+1, n, msg)
}

func (p Printer) Pause(d time.Duration, r *Report) {
	fmt.Fprintf(p.Out, "\n⏸️  Pausa de %s segundos (%d exitosas, %d fallidas)...\n\n", seconds(d), r.Success, r.Failure)
}

// Summary prints totals, at most ErrorLimit failures and the credentials reminder.
func (p Printer) Summary(r *Report, total int) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(p.Out, "\n"+rule)
	fmt.Fprintln(p.Out, "🎉 MIGRACIÓN COMPLETADA")
	fmt.Fprintln(p.Out, rule)
	fmt.Fprintf(p.Out, "✅ Exitosas:       %d\n", r.Success)
	fmt.Fprintf(p.Out, "❌ Fallidas:       %d\n", r.Failure)
	fmt.Fprintf(p.Out, "📊 Total:          %d\n", total)
	fmt.Fprintf(p.Out, "⏱️  Tiempo total:   %.2f minutos\n\n", r.Elapsed.Minutes())

	if len(r.Failures) > 0 {
		fmt.Fprintln(p.Out, "❌ Lista de errores:")
		limit := p.ErrorLimit
		if limit < 0 || limit > len(r.Failures) {
			limit = len(r.Failures)
		}
		for _, msg := range r.Failures[:limit] {
			fmt.Fprintf(p.Out, "   - %s\n", msg)
		}
		if rest := len(r.Failures) - limit; rest > 0 {
			fmt.Fprintf(p.Out, "   ... y %d errores más\n", rest)
		}
	}

	fmt.Fprintln(p.Out, "\n⚠️  RECORDATORIO: Rotar las credenciales después de la migración")
}

func (p Printer) errOut() io.Writer {
	if p.Err != nil {
		return p.Err
	}
	return p.Out
}

// seconds renders d without a trailing ".0" for whole seconds.
func seconds(d time.Duration) string {
	return fmt.Sprintf("%g", d.Seconds())
}
