package wire

import (
	"log/slog"

	"github.com/corvid-mail/imapcodec"
	"github.com/corvid-mail/imapcodec/extgate"
)

// Tracer logs decoded commands and responses at debug level. A nil
// *Tracer (or one built with a nil logger) is a no-op, so callers can
// embed it unconditionally.
type Tracer struct {
	logger *slog.Logger
}

// NewTracer returns a Tracer that logs through logger. A nil logger
// disables logging.
func NewTracer(logger *slog.Logger) *Tracer {
	return &Tracer{logger: logger}
}

func (t *Tracer) enabled() bool {
	return t != nil && t.logger != nil
}

// TraceCommand logs a parsed client command.
func (t *Tracer) TraceCommand(tag string, body imap.CommandBody, consumed int, err error) {
	if !t.enabled() {
		return
	}
	if err != nil {
		t.logger.Debug("imap: command parse failed", "tag", tag, "error", err)
		return
	}
	t.logger.Debug("imap: command", "tag", tag, "name", body.Name(), "bytes", consumed)
}

// TraceResponse logs a parsed server response.
func (t *Tracer) TraceResponse(resp imap.Response, consumed int, err error) {
	if !t.enabled() {
		return
	}
	if err != nil {
		t.logger.Debug("imap: response parse failed", "error", err)
		return
	}
	if resp.IsTagged() {
		t.logger.Debug("imap: tagged response", "tag", resp.Tag.String(), "status", resp.Status.Type, "bytes", consumed)
		return
	}
	if resp.Status != nil {
		t.logger.Debug("imap: status response", "status", resp.Status.Type, "bytes", consumed)
		return
	}
	t.logger.Debug("imap: data response", "bytes", consumed)
}

// ParseCommandTraced calls ParseCommand and reports the outcome to t.
func ParseCommandTraced(t *Tracer, buf []byte, fs *extgate.FeatureSet) (int, imap.Command, error) {
	n, cmd, err := ParseCommand(buf, fs)
	tag := ""
	if err == nil {
		tag = cmd.Tag.String()
	}
	t.TraceCommand(tag, cmd.Body, n, err)
	return n, cmd, err
}

// ParseResponseTraced calls ParseResponse and reports the outcome to t.
func ParseResponseTraced(t *Tracer, buf []byte, fs *extgate.FeatureSet) (int, imap.Response, error) {
	n, resp, err := ParseResponse(buf, fs)
	t.TraceResponse(resp, n, err)
	return n, resp, err
}
