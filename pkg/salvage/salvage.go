// Package salvage recovers JSON from text that may be valid JSON, JSON
// embedded in prose, or a JSON document with a few corrupt lines.
//
// Recover never fails on malformed input. It returns the best value it could
// validate together with an ordered log of warnings describing what was wrong
// and how it was handled. The only error it returns is ErrSizeLimitExceeded.
//
// Example:
//
//	res, err := salvage.Recover("Here is data: {\"x\": 5} end.")
//	if err != nil {
//	    return err // input too large
//	}
//	if res.Value != nil {
//	    fmt.Println(salvage.SerializeSafe(res.Value, salvage.DefaultIndent))
//	}
//	for _, w := range res.Warnings {
//	    fmt.Println(w)
//	}
package salvage

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/kaptinlin/jsonrepair"

	internalerrors "github.com/deepankarm/jsonsalvage/pkg/internal/errors"
	"github.com/deepankarm/jsonsalvage/pkg/internal/jsonparse"
	"github.com/deepankarm/jsonsalvage/pkg/jsonvalue"
)

// DefaultIndent is the indentation SerializeSafe callers use unless they need compact output.
const DefaultIndent = 2

// Warning is one entry of the diagnostics log.
type Warning = internalerrors.Diagnostic

// Warnings is the ordered diagnostics log.
type Warnings = internalerrors.Diagnostics

// WarningKind categorizes a Warning.
type WarningKind = internalerrors.ErrorType

// Warning kinds.
const (
	KindParse                 = internalerrors.ErrorTypeParse
	KindStructureUndetermined = internalerrors.ErrorTypeStructureUndetermined
	KindCorruptLine           = internalerrors.ErrorTypeCorruptLine
	KindReconstructionFailed  = internalerrors.ErrorTypeReconstructionFailed
	KindFragmentExtracted     = internalerrors.ErrorTypeFragmentExtracted
	KindRepaired              = internalerrors.ErrorTypeRepaired
	KindNoRecoverableJSON     = internalerrors.ErrorTypeNoRecoverableJSON
)

// ParseError describes a strict parsing failure.
type ParseError = jsonparse.ParseError

// SizeLimitError is returned by Recover for oversize input.
type SizeLimitError = internalerrors.SizeLimitError

// ErrSizeLimitExceeded matches every SizeLimitError via errors.Is.
var ErrSizeLimitExceeded error = internalerrors.ErrSizeLimitExceeded

// Result is the outcome of a recovery attempt.
type Result struct {
	// Value is nil when nothing could be recovered
	Value jsonvalue.Value `json:"value"`

	// Warnings in the order they were produced
	Warnings Warnings `json:"warnings"`
}

// OK reports whether a value was recovered.
func (r *Result) OK() bool {
	return r != nil && r.Value != nil
}

// ParseStrict parses text as exactly one JSON document.
// A failure is always a *ParseError.
func ParseStrict(text string) (jsonvalue.Value, error) {
	return jsonparse.Parse(text)
}

// SerializeSafe renders v as JSON, replacing cyclic references with
// jsonvalue.CircularMarker. indent <= 0 produces compact output.
func SerializeSafe(v any, indent int) string {
	return jsonvalue.Serialize(v, indent)
}

// Recover runs the full recovery pipeline over text: size guard, strict
// parse, line recovery for object or array shaped text, and extraction of the
// largest valid embedded fragment.
//
// Every call uses its own scratch state, so Recover is safe for concurrent use.
func Recover(text string, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)

	if err := checkSize(text, cfg.maxLength); err != nil {
		cfg.logger.Warn("input rejected by size guard", slog.Int("limit", cfg.maxLength), slog.Int("bytes", len(text)))
		return nil, err
	}

	r := &recovery{cfg: cfg, text: text}
	return r.run(), nil
}

// checkSize counts characters only when the byte length already exceeds limit.
func checkSize(text string, limit int) error {
	if len(text) <= limit {
		return nil
	}
	if n := utf8.RuneCountInString(text); n > limit {
		return &SizeLimitError{Length: n, Limit: limit}
	}
	return nil
}

// recovery is the per-call state of the pipeline.
type recovery struct {
	cfg      *config
	text     string
	warnings Warnings
}

func (r *recovery) warn(kind WarningKind, line int, format string, args ...any) {
	r.warnings = append(r.warnings, Warning{Line: line, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func (r *recovery) result(v jsonvalue.Value) *Result {
	warnings := r.warnings
	if warnings == nil {
		warnings = Warnings{}
	}
	return &Result{Value: v, Warnings: warnings}
}

func (r *recovery) run() *Result {
	log := r.cfg.logger

	v, err := jsonparse.Parse(r.text)
	if err == nil {
		log.Debug("strict parse succeeded")
		return r.result(v)
	}

	var perr *ParseError
	if errors.As(err, &perr) {
		r.warn(KindParse, perr.Line, "strict parse failed at column %d: %s", perr.Column, perr.Reason)
	}
	log.Debug("strict parse failed", slog.Any("error", err))

	doc, ok := outerDocument(r.text)
	if !ok {
		r.warn(KindStructureUndetermined, 0, "could not determine JSON structure, falling back to extraction of the largest valid fragment")
		return r.extract()
	}
	return r.recoverLines(doc)
}

// extract is the fallback used when the text is not wrapped in a bracket pair.
func (r *recovery) extract() *Result {
	if f, ok := largestFragment(r.text); ok {
		r.warn(KindFragmentExtracted, f.line, "extracted largest valid JSON fragment (%d characters at offset %d)", f.Len(), f.Start)
		r.cfg.logger.Debug("fragment extracted", slog.Int("offset", f.Start), slog.Int("fragment_len", f.Len()))
		return r.result(f.value)
	}
	if v, ok := r.repair(); ok {
		return r.result(v)
	}
	r.warn(KindNoRecoverableJSON, 0, "no valid JSON found")
	return r.result(nil)
}

// repair is the opt-in last resort. The repaired text still has to pass the
// strict parser, and Recover never panics on malformed input.
func (r *recovery) repair() (v jsonvalue.Value, ok bool) {
	if !r.cfg.repair {
		return nil, false
	}
	defer func() {
		if p := recover(); p != nil {
			r.cfg.logger.Debug("repair panicked", slog.Any("panic", p))
			v, ok = nil, false
		}
	}()

	repaired, err := jsonrepair.JSONRepair(r.text)
	if err != nil {
		r.cfg.logger.Debug("repair failed", slog.Any("error", err))
		return nil, false
	}
	v, err = jsonparse.Parse(repaired)
	if err != nil {
		r.cfg.logger.Debug("repaired text did not parse", slog.Any("error", err))
		return nil, false
	}
	r.warn(KindRepaired, 0, "repaired malformed JSON")
	return v, true
}
