package audit

import (
	"fmt"
	"os"
	"sync"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// LoginLog appends every authentication attempt to a plain-text activity
// file, one line per attempt:
//
//	2024-06-10 09:15:02 - User: admin - SUCCESS
type LoginLog struct {
	mu   sync.Mutex
	path string
}

func NewLoginLog(path string) *LoginLog {
	return &LoginLog{path: path}
}

// Record writes one attempt. Failures to write are returned so the caller
// can log them, but authentication itself never depends on the outcome.
func (l *LoginLog) Record(username string, success bool) error {
	status := "FAILURE"
	if success {
		status = "SUCCESS"
	}
	line := fmt.Sprintf("%s - User: %s - %s\n",
		time.Now().Format(timestampLayout), username, status)

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(line)
	return err
}
