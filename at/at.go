package at

import "fmt"

const (
	// Terminal Control
	CRLF = "\r\n"

	// Response Codes
	OK    = "OK"
	ERROR = "ERROR"
	FAIL  = "FAIL"

	// ErrorPrefix starts an error result carrying a hex code, e.g. "ERROR:(1D)".
	ErrorPrefix = "ERROR:"

	// Query responses
	RespVersion  = "+VERSION:"
	RespName     = "+NAME:"
	RespPassword = "+PSWD:"
	RespUART     = "+UART:"

	// Commands
	CmdAt      = "AT"
	CmdVersion = "AT+VERSION?"
	CmdReset   = "AT+RESET"
)

type ResponseType int

const (
	TypeFinal ResponseType = iota // OK, ERROR:(n), FAIL
	TypeData                      // Intermediate command output (+VERSION:...)
)

// SetName builds the command that changes the advertised device name.
func SetName(name string) string {
	return "AT+NAME=" + name
}

// SetPassword builds the command that changes the pairing code.
func SetPassword(pin string) string {
	return "AT+PSWD=" + pin
}

// SetUART builds the command that changes the data-mode serial parameters.
// Stop bit and parity are always 1 stop bit, no parity.
func SetUART(baudRate uint32) string {
	return fmt.Sprintf("AT+UART=%d,0,0", baudRate)
}
