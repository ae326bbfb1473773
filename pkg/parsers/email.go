package parsers

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/ccollicutt/chronolog/pkg/event"
	"github.com/ccollicutt/chronolog/pkg/evidence"
)

// EmailParser produces exactly one communication event from an .eml or .msg
// file by scanning every line for Subject/From/Date/To header prefixes.
//
// There is no structural MIME parsing and no header/body boundary: the whole
// file is scanned and the last matching line wins for each field. A quoted
// reply containing a "Subject:" line will therefore overwrite the real
// subject. Known accuracy limitation, kept for compatibility.
type EmailParser struct {
	clock clockwork.Clock
}

// NewEmail creates an email parser.
func NewEmail(clock clockwork.Clock) *EmailParser {
	return &EmailParser{clock: clock}
}

// Name returns the parser name.
func (p *EmailParser) Name() string { return "email" }

// Parse scans header lines and produces a single event.
func (p *EmailParser) Parse(ctx context.Context, f evidence.File) ([]event.Event, error) {
	data, err := f.ReadAll(ctx)
	if err != nil {
		return nil, readError(ctx, f, err)
	}

	subject := "Unknown Subject"
	from := "Unknown Sender"
	to := "Unknown Recipient"
	date := p.clock.Now()

	for _, line := range strings.Split(string(data), "\n") {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "subject:"):
			subject = strings.TrimSpace(line[len("subject:"):])
		case strings.HasPrefix(lower, "from:"):
			from = strings.TrimSpace(line[len("from:"):])
		case strings.HasPrefix(lower, "date:"):
			if parsed, ok := parseLoose(line[len("date:"):]); ok {
				date = parsed
			}
		case strings.HasPrefix(lower, "to:"):
			to = strings.TrimSpace(line[len("to:"):])
		}
	}

	e := event.Event{
		ID:          fmt.Sprintf("email-%s-%d", f.Name, millis(date)),
		Title:       event.TruncateTitle(subject),
		Timestamp:   millis(date),
		Category:    event.CategoryCommunication,
		Description: fmt.Sprintf("Email from %s", from),
		Metadata: map[string]any{
			"from":     from,
			"to":       to,
			"subject":  subject,
			"filename": f.Name,
			"size":     f.Size,
			"type":     f.MIMEType,
		},
	}

	return []event.Event{e}, nil
}
