package history

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"

	"github.com/holocron-cli/holocron/pkg/models"
)

// LegacyLog holds the three series mined from an old free-text search
// log: query tokens after a name= marker, quoted 'name': values from
// printed raw results, and Time: ...s durations. The series are
// independent; nothing ties entry i of one to entry i of another
// beyond line order in the file.
type LegacyLog struct {
	Queries     []string
	ResultNames []string
	ElapsedSecs []float64
}

var (
	queryPattern   = regexp.MustCompile(`name=(\S+)`)
	resultPattern  = regexp.MustCompile(`'name': '([^']+)'`)
	elapsedPattern = regexp.MustCompile(`Time: ([\d.]+)s`)
)

// ParseLegacyLog extracts the three series from r. Lines matching none
// of the patterns are skipped; a log with no matches parses to three
// empty series, not an error.
func ParseLegacyLog(r io.Reader) (LegacyLog, error) {
	var lg LegacyLog

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if m := queryPattern.FindStringSubmatch(line); m != nil {
			lg.Queries = append(lg.Queries, m[1])
		}
		if m := resultPattern.FindStringSubmatch(line); m != nil {
			lg.ResultNames = append(lg.ResultNames, m[1])
		}
		if m := elapsedPattern.FindStringSubmatch(line); m != nil {
			if secs, err := strconv.ParseFloat(m[1], 64); err == nil {
				lg.ElapsedSecs = append(lg.ElapsedSecs, secs)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return LegacyLog{}, fmt.Errorf("scan log: %w", err)
	}
	return lg, nil
}

// Events pairs the series positionally into structured events, the
// same index alignment the legacy reports assumed. Queries drive the
// count; a missing result name or timing at an index becomes a NULL
// field rather than a guess. A misaligned legacy log therefore imports
// misaligned, exactly as its own reports would have read it.
func (l LegacyLog) Events() []models.SearchEvent {
	events := make([]models.SearchEvent, 0, len(l.Queries))
	for i, q := range l.Queries {
		ev := models.SearchEvent{
			Query:     q,
			ElapsedMS: models.ElapsedUnknown,
		}
		if i < len(l.ResultNames) {
			ev.ResultName = l.ResultNames[i]
			ev.ResultCount = 1
		}
		if i < len(l.ElapsedSecs) {
			ev.ElapsedMS = int64(math.Round(l.ElapsedSecs[i] * 1000))
		}
		events = append(events, ev)
	}
	return events
}
