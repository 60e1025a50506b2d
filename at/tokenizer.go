package at

import (
	"bufio"
	"bytes"
	"strings"
)

// Splitter is used for tokenizing HC-05 AT command responses. It uses
// the signature of bufio.SplitFunc so it can be directly used with bufio.Scanner.
//
// It splits the input by CRLF line endings. Some firmware revisions answer
// with a bare LF, which is accepted as well.
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final token.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[0:i], []byte("\r")), nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter

// Classify identifies the nature of the module output
func Classify(line string) ResponseType {
	switch {
	case line == OK, line == ERROR, line == FAIL:
		return TypeFinal
	case strings.HasPrefix(line, ErrorPrefix):
		return TypeFinal
	default:
		return TypeData
	}
}

// ErrorCode extracts the hex code of an "ERROR:(n)" result.
func ErrorCode(line string) (string, bool) {
	if !strings.HasPrefix(line, ErrorPrefix) {
		return "", false
	}
	code := strings.TrimPrefix(line, ErrorPrefix)
	code = strings.TrimSuffix(strings.TrimPrefix(code, "("), ")")
	return code, true
}

// Final scans a raw response and returns the first final result code.
// Only complete lines are considered, so a result still being received
// is not reported.
func Final(resp []byte) (string, bool) {
	end := bytes.LastIndexByte(resp, '\n')
	if end < 0 {
		return "", false
	}
	for _, line := range Lines(string(resp[:end+1])) {
		if Classify(line) == TypeFinal {
			return line, true
		}
	}
	return "", false
}

// Lines returns the non-empty lines of a raw response.
func Lines(resp string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(resp))
	scanner.Split(Splitter)
	for scanner.Scan() {
		if token := scanner.Text(); token != "" {
			lines = append(lines, token)
		}
	}
	return lines
}

// Value returns the text after prefix on the first line starting with it.
func Value(resp, prefix string) (string, bool) {
	for _, line := range Lines(resp) {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	return "", false
}
