// Package collect implements the interactive ticker and share-count
// collector used by the console companion tool.
package collect

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// sentinel ends the input loop, matched case-insensitively.
const sentinel = "done"

// Run reads ticker and share-count pairs from r until the sentinel word,
// prompting on w, and returns the accumulated counts. Tickers are
// upper-cased; repeated tickers accumulate. A non-numeric share count
// re-prompts for the number without re-reading the ticker.
func Run(r io.Reader, w io.Writer) map[string]int {
	scanner := bufio.NewScanner(r)
	counts := make(map[string]int)

	for {
		fmt.Fprint(w, "Enter stock ticker (or 'done' to finish): ")
		if !scanner.Scan() {
			break
		}
		ticker := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(ticker, sentinel) {
			break
		}
		if ticker == "" {
			continue
		}
		ticker = strings.ToUpper(ticker)

		shares, ok := readShares(scanner, w, ticker)
		if !ok {
			break
		}
		counts[ticker] += shares
	}

	fmt.Fprintf(w, "Portfolio: %v\n", counts)
	return counts
}

// readShares prompts until a valid integer is entered. Returns false only
// when the input stream ends.
func readShares(scanner *bufio.Scanner, w io.Writer, ticker string) (int, bool) {
	for {
		fmt.Fprintf(w, "Enter number of shares for %s: ", ticker)
		if !scanner.Scan() {
			return 0, false
		}
		shares, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(w, "Invalid number, please enter a whole number of shares.")
			continue
		}
		return shares, true
	}
}
