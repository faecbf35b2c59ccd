// Package flagfile assembles an application's launch arguments from
// flag-configuration files without ever evaluating their content.
//
// A flag-configuration file is plain text: blank lines and #-comments are
// ignored, every other line contributes whitespace-delimited arguments.
// Quoting follows POSIX word-splitting rules ('single', "double", and
// backslash escapes group whitespace into one token), but nothing is ever
// expanded or executed. Lines that carry command substitution ($(...) or
// backticks) are dropped whole with a warning; the quote-aware splitter
// would not execute them either, but refusing them outright keeps such text
// from even reaching an argument.
package flagfile

import (
	"bufio"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
)

// Loader reads flag-configuration files and builds launch argument lists.
// Files are re-read on every Load call, never cached, so edits take effect
// on the next launch.
type Loader struct {
	log zerolog.Logger
}

func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{log: log}
}

// Load builds the final argument list: tokens from each readable file in
// paths (in order), then tokens from envValue, then cliArgs verbatim and
// unfiltered. Missing or unreadable files contribute nothing and are not an
// error; optional config files are expected to be absent.
func (l *Loader) Load(paths []string, envValue string, cliArgs []string) []string {
	args := []string{}
	for _, path := range paths {
		args = append(args, l.loadFile(path)...)
	}
	if envValue != "" {
		args = append(args, l.splitLine("environment", 0, envValue)...)
	}
	args = append(args, cliArgs...)
	return args
}

func (l *Loader) loadFile(path string) []string {
	f, err := os.Open(path) // #nosec G304 -- path is an operator-chosen flag file
	if err != nil {
		l.log.Debug().Str("file", path).Msg("flag file not readable, skipping")
		return nil
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		tokens = append(tokens, l.splitLine(path, lineNo, line)...)
	}
	if err := scanner.Err(); err != nil {
		l.log.Warn().Err(err).Str("file", path).Msg("stopped reading flag file")
	}
	return tokens
}

// splitLine tokenizes one candidate line. A rejected line contributes zero
// tokens; it is never partially parsed.
func (l *Loader) splitLine(source string, lineNo int, line string) []string {
	if strings.Contains(line, "$(") || strings.Contains(line, "`") {
		l.log.Warn().Str("file", source).Int("line", lineNo).
			Msg("dropping flag line containing command substitution")
		return nil
	}
	words, err := shellquote.Split(line)
	if err != nil {
		l.log.Warn().Err(err).Str("file", source).Int("line", lineNo).
			Msg("dropping unparsable flag line")
		return nil
	}
	return words
}
