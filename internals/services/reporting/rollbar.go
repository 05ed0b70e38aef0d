// file: internals/services/reporting/rollbar.go
package reporting

import (
	"log"

	"github.com/rollbar/rollbar-go"
)

// Reporter meneruskan error server (5xx, panic, job gagal) ke Rollbar dan
// selalu menulis ke log standar.
type Reporter struct {
	std     *log.Logger
	enabled bool
}

type Options struct {
	Token       string
	Environment string
	ServerHost  string
	CodeVersion string
}

// New: tanpa token Rollbar dimatikan, log tetap jalan.
func New(std *log.Logger, opt Options) *Reporter {
	if std == nil {
		std = log.Default()
	}
	r := &Reporter{std: std, enabled: opt.Token != ""}
	rollbar.SetToken(opt.Token)
	rollbar.SetEnvironment(opt.Environment)
	rollbar.SetServerHost(opt.ServerHost)
	rollbar.SetCodeVersion(opt.CodeVersion)
	rollbar.SetEnabled(r.enabled)
	return r
}

func (r *Reporter) Enabled() bool { return r != nil && r.enabled }

// Error logs err with extra fields and sends it to Rollbar when enabled.
func (r *Reporter) Error(msg string, err error, extras map[string]interface{}) {
	if r == nil {
		log.Printf("[ERROR] %s: %v", msg, err)
		return
	}
	r.std.Printf("[ERROR] %s: %+v %v", msg, err, extras)
	if r.enabled {
		rollbar.Error(err, extras)
	}
}

func (r *Reporter) Warn(msg string, extras map[string]interface{}) {
	if r == nil {
		log.Printf("[WARN] %s", msg)
		return
	}
	r.std.Printf("[WARN] %s %v", msg, extras)
	if r.enabled {
		rollbar.Warning(msg, extras)
	}
}

// Close flushes pending items; call on shutdown.
func (r *Reporter) Close() {
	if r.Enabled() {
		rollbar.Close()
	}
}
