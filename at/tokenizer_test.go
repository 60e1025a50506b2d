package at_test

import (
	"bufio"
	"strings"
	"testing"

	"i4.energy/across/btgw/at"
)

func TestSplitter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Plain OK",
			input:    "OK\r\n",
			expected: []string{"OK"},
		},
		{
			name:     "Version query",
			input:    "+VERSION:2.0-20100601\r\nOK\r\n",
			expected: []string{"+VERSION:2.0-20100601", "OK"},
		},
		{
			name:     "Error with code",
			input:    "ERROR:(1D)\r\n",
			expected: []string{"ERROR:(1D)"},
		},
		{
			name:     "Bare LF terminators",
			input:    "+NAME:HC-05\nOK\n",
			expected: []string{"+NAME:HC-05", "OK"},
		},
		{
			name:     "Empty lines handling",
			input:    "\r\n\r\nOK\r\n",
			expected: []string{"", "", "OK"},
		},
		// EOF scenarios - testing atEOF functionality
		{
			name:     "Response cut off mid-stream at EOF",
			input:    "+VERSION:2.0\r\nO",
			expected: []string{"+VERSION:2.0", "O"},
		},
		{
			name:     "Command without CRLF at EOF",
			input:    "OK",
			expected: []string{"OK"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tokens []string
			scanner := bufio.NewScanner(strings.NewReader(tt.input))
			scanner.Split(at.Splitter)

			for scanner.Scan() {
				tokens = append(tokens, scanner.Text())
			}

			if err := scanner.Err(); err != nil {
				t.Fatalf("Scanner error: %v", err)
			}

			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d.\nExpected: %v\nGot: %v",
					len(tt.expected), len(tokens), tt.expected, tokens)
			}

			for i, expected := range tt.expected {
				if tokens[i] != expected {
					t.Errorf("Token %d: expected %q, got %q", i, expected, tokens[i])
				}
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected at.ResponseType
	}{
		{name: "OK response", input: "OK", expected: at.TypeFinal},
		{name: "ERROR response", input: "ERROR", expected: at.TypeFinal},
		{name: "FAIL response", input: "FAIL", expected: at.TypeFinal},
		{name: "Coded error", input: "ERROR:(1D)", expected: at.TypeFinal},

		{name: "Version", input: "+VERSION:2.0-20100601", expected: at.TypeData},
		{name: "Name", input: "+NAME:HC-05", expected: at.TypeData},
		{name: "Lowercase ok is data", input: "ok", expected: at.TypeData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := at.Classify(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v for input %q", tt.expected, result, tt.input)
			}
		})
	}
}

func TestFinal(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		final  string
		exists bool
	}{
		{name: "Complete OK", input: "OK\r\n", final: "OK", exists: true},
		{name: "Data then OK", input: "+VERSION:3.0\r\nOK\r\n", final: "OK", exists: true},
		{name: "Error code", input: "ERROR:(0)\r\n", final: "ERROR:(0)", exists: true},
		{name: "Unterminated OK", input: "OK", exists: false},
		{name: "Data only", input: "+VERSION:3.0\r\n", exists: false},
		{name: "Empty", input: "", exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			final, ok := at.Final([]byte(tt.input))
			if ok != tt.exists {
				t.Fatalf("expected found=%v, got %v (%q)", tt.exists, ok, final)
			}
			if final != tt.final {
				t.Errorf("expected %q, got %q", tt.final, final)
			}
		})
	}
}

func TestErrorCode(t *testing.T) {
	code, ok := at.ErrorCode("ERROR:(1D)")
	if !ok || code != "1D" {
		t.Errorf("expected code 1D, got %q (%v)", code, ok)
	}
	if _, ok := at.ErrorCode("OK"); ok {
		t.Error("OK must not carry an error code")
	}
}

func TestValue(t *testing.T) {
	v, ok := at.Value("+VERSION:2.0-20100601\r\nOK\r\n", at.RespVersion)
	if !ok || v != "2.0-20100601" {
		t.Errorf("unexpected version %q (%v)", v, ok)
	}
	if _, ok := at.Value("OK\r\n", at.RespName); ok {
		t.Error("expected no name value")
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{at.SetName("STM32_HC05"), "AT+NAME=STM32_HC05"},
		{at.SetPassword("1234"), "AT+PSWD=1234"},
		{at.SetUART(115200), "AT+UART=115200,0,0"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, tt.got)
		}
	}
}
