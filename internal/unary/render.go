package unary

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format selects how a decision is rendered.
type Format string

const (
	// FormatText prints True or False.
	FormatText Format = "text"
	// FormatSentence prints a localized "X > Y is True" sentence.
	FormatSentence Format = "sentence"
	// FormatJSON prints a single JSON object.
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatSentence, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Message keys.
const (
	keyTrue     = "True"
	keyFalse    = "False"
	keySentence = "%d > %d is %s"
)

func init() {
	message.SetString(language.English, keyTrue, "True")
	message.SetString(language.English, keyFalse, "False")
	message.SetString(language.English, keySentence, "%d > %d is %s")

	message.SetString(language.German, keyTrue, "wahr")
	message.SetString(language.German, keyFalse, "falsch")
	message.SetString(language.German, keySentence, "%d > %d ist %s")

	message.SetString(language.French, keyTrue, "vrai")
	message.SetString(language.French, keyFalse, "faux")
	message.SetString(language.French, keySentence, "%d > %d est %s")
}

// Report is the outcome of one comparison.
type Report struct {
	Pair
	Greater bool `json:"greater"`
	Steps   int  `json:"steps"`
}

// Render writes r to w in format f. tag selects the language of the
// sentence format; text and json output are not localized.
func Render(w io.Writer, r Report, f Format, tag language.Tag) error {
	switch f {
	case FormatText:
		word := keyFalse
		if r.Greater {
			word = keyTrue
		}
		_, err := fmt.Fprintln(w, word)
		return err
	case FormatSentence:
		p := message.NewPrinter(tag)
		word := p.Sprintf(keyFalse)
		if r.Greater {
			word = p.Sprintf(keyTrue)
		}
		_, err := fmt.Fprintln(w, p.Sprintf(keySentence, r.X, r.Y, word))
		return err
	case FormatJSON:
		return json.NewEncoder(w).Encode(r)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}
