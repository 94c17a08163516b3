// Package extract pulls candidate fully-qualified domain names out of
// free-form text, one token per comma-separated field per line, so that
// the check subcommand can accept a line-oriented input file in addition
// to domains given directly on the command line.
package extract

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

var domainPattern = regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*)+\.[a-z]{2,}$`)

// FromLine returns the first comma-separated field in line that looks like
// a domain name, or "" if none does.
func FromLine(line string) string {
	for _, field := range strings.Split(line, ",") {
		field = strings.TrimSpace(field)
		if domainPattern.MatchString(field) {
			return field
		}
	}
	return ""
}

// FromReader scans r line by line and returns every domain-shaped token
// found, in file order, skipping lines that contain none.
func FromReader(r io.Reader) ([]string, error) {
	var domains []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if d := FromLine(scanner.Text()); d != "" {
			domains = append(domains, d)
		}
	}
	if err := scanner.Err(); err != nil {
		return domains, err
	}
	return domains, nil
}
