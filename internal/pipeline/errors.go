package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fundex/despesas/internal/source"
)

// UserMessage turns a load error into the one line shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var mce *source.MissingColumnError
	var pe *source.ParseError
	switch {
	case errors.As(err, &mce):
		msg := fmt.Sprintf("Missing column in ledger: %s", strings.Join(mce.Missing, ", "))
		if len(mce.Missing) == 0 {
			msg = fmt.Sprintf("Missing column in ledger: %s", mce.Column)
		}
		if mce.Suggestion != "" {
			msg += fmt.Sprintf(" (found %q, is it misspelled?)", mce.Suggestion)
		}
		return msg

	case errors.As(err, &pe):
		if pe.Line > 0 {
			msg := fmt.Sprintf("Could not read line %d of %s", pe.Line, baseName(pe.Path))
			if pe.Column != "" {
				msg += fmt.Sprintf(": column %s", pe.Column)
				if pe.Value != "" {
					msg += fmt.Sprintf(" has invalid value %q", pe.Value)
				} else {
					msg += " is empty"
				}
			}
			return msg
		}
		if pe.Err != nil {
			return fmt.Sprintf("Could not read %s: %v", baseName(pe.Path), pe.Err)
		}
		return fmt.Sprintf("Could not read %s", baseName(pe.Path))

	case errors.Is(err, source.ErrFileNotFound):
		return "Ledger file not found: " + detail(err, source.ErrFileNotFound)

	case errors.Is(err, source.ErrUnsupportedFormat):
		return "Unsupported ledger format: " + detail(err, source.ErrUnsupportedFormat)
	}
	return err.Error()
}

// detail strips everything up to and including the sentinel's text.
func detail(err, sentinel error) string {
	s := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(s, prefix); i >= 0 {
		return s[i+len(prefix):]
	}
	return s
}

func baseName(path string) string {
	if path == "" {
		return "the ledger"
	}
	return filepath.Base(path)
}
