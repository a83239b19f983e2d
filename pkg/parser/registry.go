// Package parser detects and dispatches chat export formats to the
// platform-specific sub-parsers, and merges multi-part exports of the same
// platform into one conversation.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/engineerr"
	"github.com/papercomputeco/duet/pkg/parser/messenger"
	"github.com/papercomputeco/duet/pkg/parser/telegram"
	"github.com/papercomputeco/duet/pkg/parser/whatsapp"
)

// Format identifies a supported chat export platform.
type Format string

const (
	FormatMessenger Format = "messenger"
	FormatInstagram Format = "instagram"
	FormatWhatsApp  Format = "whatsapp"
	FormatTelegram  Format = "telegram"
	formatUnknown   Format = ""
)

// Input is one file from a (possibly multi-part) export.
type Input struct {
	Name string
	Data []byte
}

// probeExport is the minimal shape used to distinguish Messenger/Instagram
// JSON from Telegram JSON without committing to either's full raw type.
type probeExport struct {
	Participants []struct{} `json:"participants"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Messages     []struct {
		From         *string `json:"from"`
		DateUnixtime *string `json:"date_unixtime"`
	} `json:"messages"`
}

// Detect infers the export format of a single input file from its
// extension and, for JSON files, its top-level structure.
func Detect(in Input) (Format, error) {
	if strings.HasSuffix(strings.ToLower(in.Name), ".txt") {
		return FormatWhatsApp, nil
	}

	var probe probeExport
	if err := json.Unmarshal(in.Data, &probe); err != nil {
		return formatUnknown, fmt.Errorf("parser: %w: %v", engineerr.ErrInvalidFormat, err)
	}

	switch {
	case len(probe.Participants) > 0:
		return FormatMessenger, nil
	case probe.Name != "" && probe.Type != "" && len(probe.Messages) > 0 &&
		probe.Messages[0].DateUnixtime != nil:
		return FormatTelegram, nil
	default:
		return formatUnknown, fmt.Errorf("parser: %w: unrecognized JSON export structure", engineerr.ErrInvalidFormat)
	}
}

// ParseAll dispatches every input to the matching sub-parser and merges
// same-platform multi-part exports into a single conversation. When
// override is non-empty, it is used instead of per-file Detect, for
// callers that already know the platform (e.g. a CLI flag).
func ParseAll(inputs []Input, override Format) (*chatmodel.ParsedConversation, []engineerr.Warning, error) {
	if len(inputs) == 0 {
		return nil, nil, fmt.Errorf("parser: %w: no input files", engineerr.ErrInvalidFormat)
	}

	byFormat := map[Format][][]byte{}
	for _, in := range inputs {
		format := override
		if format == formatUnknown {
			detected, err := Detect(in)
			if err != nil {
				return nil, nil, err
			}
			format = detected
		}
		byFormat[format] = append(byFormat[format], in.Data)
	}

	if len(byFormat) != 1 {
		return nil, nil, fmt.Errorf("parser: %w: inputs span more than one detected platform", engineerr.ErrInvalidFormat)
	}

	for format, parts := range byFormat {
		switch format {
		case FormatMessenger, FormatInstagram:
			conv, err := messenger.Parse(parts)
			if err != nil {
				return nil, nil, err
			}
			conv.Platform = string(format)
			return conv, nil, nil

		case FormatWhatsApp:
			convs := make([]*chatmodel.ParsedConversation, 0, len(parts))
			var warnings []engineerr.Warning
			for _, data := range parts {
				conv, warn, err := whatsapp.Parse(data)
				if err != nil {
					return nil, nil, err
				}
				convs = append(convs, conv)
				warnings = append(warnings, warn...)
			}
			if len(convs) == 1 {
				return convs[0], warnings, nil
			}
			merged, err := chatmodel.Merge(convs...)
			return merged, warnings, err

		case FormatTelegram:
			convs := make([]*chatmodel.ParsedConversation, 0, len(parts))
			for _, data := range parts {
				conv, err := telegram.Parse(data)
				if err != nil {
					return nil, nil, err
				}
				convs = append(convs, conv)
			}
			if len(convs) == 1 {
				return convs[0], nil, nil
			}
			merged, err := chatmodel.Merge(convs...)
			return merged, nil, err

		default:
			return nil, nil, fmt.Errorf("parser: %w: unsupported format %q", engineerr.ErrInvalidFormat, format)
		}
	}

	// Unreachable: the len(byFormat) != 1 check above guarantees exactly
	// one iteration of the loop above runs and returns.
	return nil, nil, fmt.Errorf("parser: %w", engineerr.ErrInvalidFormat)
}
