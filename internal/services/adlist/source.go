package adlist

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ParseBlob splits a fetched blob into a deduplicated set of addresses.
// Empty lines are dropped; ordering in the input is irrelevant and the
// result is returned sorted so callers see a stable sequence.
func ParseBlob(blob string) []string {
	seen := make(map[string]struct{})
	for _, line := range strings.Split(blob, "\n") {
		if line == "" {
			continue
		}
		seen[line] = struct{}{}
	}

	addresses := make([]string, 0, len(seen))
	for address := range seen {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)
	return addresses
}

// ReadSourceFile reads an operator-supplied file into an ordered sequence of
// addresses. Only trailing newline characters are stripped, fully empty
// lines are dropped, and duplicates are kept: the store-level insert is
// idempotent, so duplicate lines cost nothing and the operator's ordering
// survives for diagnostics.
func ReadSourceFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ad-list source %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var addresses []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		addresses = append(addresses, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ad-list source %s: %w", path, err)
	}
	return addresses, nil
}
