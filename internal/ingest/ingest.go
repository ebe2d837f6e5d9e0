// Package ingest reads the plain-text inputs of a run: transfer requests
// ("<tx> <from> <to> <amount>") and account seeds ("<id> <balance>").
package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hance08/bankcore/internal/model"
)

var ErrMalformedLine = errors.New("malformed line")

// ParseFields splits a whitespace separated line into exactly n integers.
func ParseFields(line string, n int) ([]int64, error) {
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d fields, got %d: %w", n, len(fields), ErrMalformedLine)
	}

	out := make([]int64, n)
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("field %d %q is not an integer: %w", i+1, f, ErrMalformedLine)
		}
		out[i] = v
	}
	return out, nil
}

// skippable reports blank lines and '#' comments.
func skippable(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "#")
}

// ParseRequests reads one request per line. Every request starts Pending.
func ParseRequests(r io.Reader) ([]*model.Request, error) {
	var requests []*model.Request
	seen := make(map[int64]int)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if skippable(line) {
			continue
		}

		vals, err := ParseFields(line, 4)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		req := model.NewRequest(vals[0], vals[1], vals[2], vals[3])
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if prev, ok := seen[req.TransactionID]; ok {
			return nil, fmt.Errorf("line %d: transaction %d already defined on line %d: %w",
				lineNo, req.TransactionID, prev, model.ErrInvalidRequest)
		}
		seen[req.TransactionID] = lineNo

		requests = append(requests, req)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requests: %w", err)
	}
	return requests, nil
}

func LoadRequests(path string) ([]*model.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open request file: %w", err)
	}
	defer f.Close()

	requests, err := ParseRequests(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return requests, nil
}

// ParseAccounts reads "<id> <balance>" seed lines.
func ParseAccounts(r io.Reader) ([]model.Account, error) {
	var accounts []model.Account
	seen := make(map[int64]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if skippable(line) {
			continue
		}

		vals, err := ParseFields(line, 2)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if vals[1] < 0 {
			return nil, fmt.Errorf("line %d: account %d: %w", lineNo, vals[0], model.ErrNegativeBalance)
		}
		if seen[vals[0]] {
			return nil, fmt.Errorf("line %d: account %d listed twice: %w", lineNo, vals[0], ErrMalformedLine)
		}
		seen[vals[0]] = true

		accounts = append(accounts, model.Account{ID: vals[0], Balance: vals[1]})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

func LoadAccounts(path string) ([]model.Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open account file: %w", err)
	}
	defer f.Close()

	accounts, err := ParseAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return accounts, nil
}
