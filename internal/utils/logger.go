package utils

import (
	"fmt"
	"log"
	"strings"
)

var logLineBreaks = strings.NewReplacer("\r", `\r`, "\n", `\n`)

// LogEvent writes one line as [MODULE] action=... request_id=... msg=...
// Line breaks in msg are escaped so webhook input cannot forge log lines.
// Keep payloads out of msg; summarize instead.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, logLineBreaks.Replace(message))
}

func LogEventf(requestID, module, action, format string, args ...any) {
	LogEvent(requestID, module, action, fmt.Sprintf(format, args...))
}
