package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/macatibm/jwtgenerator/internal/issuer"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Record is the structured rendering used by the json and yaml formats.
type Record struct {
	Token     string `json:"token" yaml:"token"`
	Subject   string `json:"sub" yaml:"sub"`
	Issuer    string `json:"iss" yaml:"iss"`
	Exp       int64  `json:"exp" yaml:"exp"`
	ExpiresAt string `json:"expires_at" yaml:"expires_at"`
}

func NewRecord(tok *issuer.Token) Record {
	exp := tok.ExpiresAt()
	return Record{
		Token:     tok.Value,
		Subject:   tok.Claims.Subject,
		Issuer:    tok.Claims.Issuer,
		Exp:       exp.Unix(),
		ExpiresAt: exp.Format(time.RFC3339),
	}
}

// Write renders tok to w. The text format is the bare token and a newline.
func Write(w io.Writer, f Format, tok *issuer.Token) error {
	if tok == nil {
		return fmt.Errorf("nil token")
	}
	switch f {
	case FormatText, "":
		_, err := fmt.Fprintln(w, tok.Value)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewRecord(tok))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewRecord(tok)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}
